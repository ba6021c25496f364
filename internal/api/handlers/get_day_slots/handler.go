package get_day_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/slots"
)

const (
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

// Handle GET /api/v1/slots/{date}
// Слоты даты вместе с виртуальными слотами по умолчанию и занятостью
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	result, err := h.service.ListForDate(r.Context(), date)
	if err != nil {
		if errors.Is(err, slots.ErrInvalidInput) {
			h.logger.Warn("GET /slots/{date} - Invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}

		h.logger.Error("GET /slots/{date} - Failed to get slots: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slots/{date} - Slots retrieved successfully: date=%s, count=%d", date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
