package replace_day_slots

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
	msgInvalidData        = "некорректные данные слотов"
	msgForbidden          = "управлять слотами может только администратор"
	msgSlotExists         = "время слотов повторяется"
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

// Handle PUT /api/v1/slots/{date}
// Пустой список возвращает дату к слотам по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	var req models.ReplaceSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Role = middleware.GetRole(r.Context())

	result, err := h.service.ReplaceForDate(r.Context(), date, &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("PUT /slots/{date} - Access denied: role=%s", req.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PUT /slots/{date} - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, slots.ErrSlotExists):
			h.logger.Warn("PUT /slots/{date} - Duplicate times: date=%s", date)
			handlers.RespondConflict(w, msgSlotExists)

		default:
			h.logger.Error("PUT /slots/{date} - Failed to replace slots: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slots/{date} - Slots replaced successfully: date=%s, count=%d", date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
