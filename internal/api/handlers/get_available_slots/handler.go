package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-TrainingDesk/internal/usecase/get_available_slots"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast  = "нельзя выбрать прошедшую дату"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /public/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(date))
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /public/slots - Invalid date: date=%s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrDateInPast):
			h.logger.Warn("GET /public/slots - Date in past: date=%s", date)
			handlers.RespondBadRequest(w, msgDateInPast)

		default:
			h.logger.Error("GET /public/slots - Failed to get slots: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /public/slots - Slots retrieved successfully: date=%s, slots_count=%d, defaults=%t",
		date, len(result.Slots), result.UsesDefaults)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
