package delete_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/slots"
)

const (
	msgForbidden   = "управлять слотами может только администратор"
	msgNotFound    = "слот не найден"
	msgVirtualSlot = "слот по умолчанию нельзя удалить, задайте слоты даты"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle DELETE /api/v1/slots/{date}/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, slotID := vars["date"], vars["slotId"]
	role := middleware.GetRole(r.Context())

	if err := h.service.Delete(r.Context(), role, date, slotID); err != nil {
		switch {
		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("DELETE /slots/{date}/{id} - Access denied: role=%s", role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrVirtualSlot):
			h.logger.Warn("DELETE /slots/{date}/{id} - Virtual slot: id=%s", slotID)
			handlers.RespondBadRequest(w, msgVirtualSlot)

		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /slots/{date}/{id} - Slot not found: date=%s, id=%s", date, slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("DELETE /slots/{date}/{id} - Invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("DELETE /slots/{date}/{id} - Failed to delete slot: date=%s, id=%s, error=%v", date, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /slots/{date}/{id} - Slot deleted successfully: date=%s, id=%s", date, slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
