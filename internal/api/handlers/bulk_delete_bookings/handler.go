package bulk_delete_bookings

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
	msgInvalidIDs         = "некорректный список номеров"
	msgForbidden          = "удалять бронирования может только администратор"
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

// Handle POST /api/v1/bookings/bulk-delete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.BulkDeleteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/bulk-delete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Role = middleware.GetRole(r.Context())

	result, err := h.service.BulkDelete(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/bulk-delete - Access denied: role=%s", req.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/bulk-delete - Invalid ids: count=%d", len(req.IDs))
			handlers.RespondBadRequest(w, msgInvalidIDs)

		default:
			h.logger.Error("POST /bookings/bulk-delete - Failed to delete bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/bulk-delete - Bookings deleted: deleted=%d, requested=%d", result.Deleted, len(req.IDs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
