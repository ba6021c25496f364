package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует имя пользователя"
	msgNotFound           = "бронирование не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/cancel
// Отменённое бронирование освобождает место в слоте
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	actor, ok := middleware.GetUserName(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/cancel - Missing user name")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CancelBookingRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /bookings/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.service.QuickEdit(r.Context(), bookingID, req.ToServiceRequest(actor))
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not found: id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("POST /bookings/{id}/cancel - Failed to cancel booking: id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled successfully: id=%s, by=%s", bookingID, actor)
	handlers.RespondJSON(w, http.StatusOK, result)
}
