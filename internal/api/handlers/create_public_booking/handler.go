package create_public_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
	createPublicBooking "github.com/m04kA/SMC-TrainingDesk/internal/usecase/create_public_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "заполните слот, название компании и номер телефона"
	msgInvalidDate        = "некорректная дата, ожидается YYYY-MM-DD не раньше сегодняшней"
	msgSlotNotFound       = "временной слот не найден"
	msgSlotNotAvailable   = "выбранный временной слот недоступен, выберите другой"
	msgSubmitFailed       = "не удалось отправить заявку, попробуйте ещё раз"
)

type Handler struct {
	useCase CreatePublicBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreatePublicBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/public/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreatePublicBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createPublicBooking.ErrInvalidInput):
			h.logger.Warn("POST /public/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createPublicBooking.ErrInvalidDate):
			h.logger.Warn("POST /public/bookings - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createPublicBooking.ErrSlotNotFound):
			h.logger.Warn("POST /public/bookings - Slot not found: date=%s, slot_id=%s", req.Date, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createPublicBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /public/bookings - Slot not available: date=%s, slot_id=%s", req.Date, req.SlotID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /public/bookings - Failed to submit request: date=%s, slot_id=%s, error=%v",
				req.Date, req.SlotID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgSubmitFailed)
		}
		return
	}

	h.logger.Info("POST /public/bookings - Request submitted: id=%s, date=%s, degraded=%t",
		result.ID, result.Date, result.Degraded)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
