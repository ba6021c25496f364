package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует имя пользователя"
	msgInvalidData        = "некорректные данные бронирования"
	msgInvalidStatus      = "некорректный статус бронирования"
	msgDuplicateID        = "бронирование с таким номером уже существует"
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

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserName(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user name")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req models.CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Actor = actor

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("POST /bookings - Invalid status: %q", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, bookings.ErrDuplicateID):
			h.logger.Warn("POST /bookings - Duplicate id: %s", req.ID)
			handlers.RespondConflict(w, msgDuplicateID)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client=%q, error=%v", req.ClientName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: id=%s, by=%s", result.ID, actor)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
