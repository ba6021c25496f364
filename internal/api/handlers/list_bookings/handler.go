package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings/models"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service    BookingService
	publicOnly bool
	logger     Logger
}

// NewHandler список внутренних бронирований
func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// NewPublicRequestsHandler отчёт по заявкам с публичной страницы
func NewPublicRequestsHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service:    service,
		publicOnly: true,
		logger:     logger,
	}
}

// Handle GET /api/v1/bookings, GET /api/v1/bookings/public-requests
// Query params: status, kam, assignedPerson, date, dateFrom, dateTo, search,
// includeCancelled, page, pageSize (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := h.route()

	serviceReq, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET %s - Invalid parameters: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	var result *models.BookingListResponse
	if h.publicOnly {
		result, err = h.service.PublicRequests(r.Context(), serviceReq)
	} else {
		result, err = h.service.List(r.Context(), serviceReq)
	}
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET %s - Invalid filter: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET %s - Failed to list bookings: error=%v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET %s - Bookings retrieved successfully: page=%d, count=%d, total=%d",
		route, result.Page, len(result.Items), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) route() string {
	if h.publicOnly {
		return "/bookings/public-requests"
	}
	return "/bookings"
}
