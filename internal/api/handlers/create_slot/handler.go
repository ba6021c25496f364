package create_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/slots"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные слота"
	msgForbidden          = "управлять слотами может только администратор"
	msgSlotExists         = "слот на это время уже существует"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Role = middleware.GetRole(r.Context())

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("POST /slots - Access denied: role=%s", req.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, slots.ErrSlotExists):
			h.logger.Warn("POST /slots - Slot exists: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotExists)

		default:
			h.logger.Error("POST /slots - Failed to create slot: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Slot created successfully: id=%s, date=%s, time=%s", result.ID, result.Date, result.Time)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
