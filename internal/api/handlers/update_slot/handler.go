package update_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/slots"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные слота"
	msgForbidden          = "управлять слотами может только администратор"
	msgNotFound           = "слот не найден"
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

// Handle PATCH /api/v1/slots/{date}/{slotId}
// Изменение виртуального слота сначала сохраняет все слоты даты по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, slotID := vars["date"], vars["slotId"]

	var req models.UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/{date}/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Role = middleware.GetRole(r.Context())

	result, err := h.service.Update(r.Context(), date, slotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("PATCH /slots/{date}/{id} - Access denied: role=%s", req.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/{date}/{id} - Slot not found: date=%s, id=%s", date, slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrSlotExists):
			h.logger.Warn("PATCH /slots/{date}/{id} - Time taken: date=%s, id=%s", date, slotID)
			handlers.RespondConflict(w, msgSlotExists)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PATCH /slots/{date}/{id} - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /slots/{date}/{id} - Failed to update slot: date=%s, id=%s, error=%v", date, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/{date}/{id} - Slot updated successfully: date=%s, id=%s", date, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
