package get_dashboard

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service SnapshotService
	logger  Logger
}

func NewHandler(service SnapshotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dashboard
// Query params: refresh (опционально) - собрать снимок сейчас, не дожидаясь опроса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if s := r.URL.Query().Get("refresh"); s != "" {
		refresh, err := strconv.ParseBool(s)
		if err != nil {
			h.logger.Warn("GET /dashboard - Invalid refresh: %q", s)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		if refresh {
			h.service.Refresh(r.Context())
		}
	}

	result := h.service.Dashboard()
	if len(result.Errors) > 0 {
		h.logger.Warn("GET /dashboard - Serving stale collections: %v", result.Errors)
	}

	h.logger.Info("GET /dashboard - Snapshot served: bookings=%d, refreshed_at=%s",
		len(result.Bookings), result.RefreshedAt.Format("15:04:05"))
	handlers.RespondJSON(w, http.StatusOK, result)
}
