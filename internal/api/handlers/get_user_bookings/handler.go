package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/list_bookings"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings"
)

const (
	msgMissingUser   = "отсутствует имя пользователя"
	msgInvalidParams = "некорректные параметры запроса"
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

// Handle GET /api/v1/me/bookings
// Тренинги, назначенные текущему пользователю. Фильтры как у списка, кроме assignedPerson.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userName, ok := middleware.GetUserName(r.Context())
	if !ok {
		h.logger.Warn("GET /me/bookings - Missing user name")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	serviceReq, err := list_bookings.ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /me/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	serviceReq.AssignedPerson = userName

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /me/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}

		h.logger.Error("GET /me/bookings - Failed to get bookings: user=%s, error=%v", userName, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /me/bookings - Bookings retrieved successfully: user=%s, count=%d", userName, len(result.Items))
	handlers.RespondJSON(w, http.StatusOK, result)
}
