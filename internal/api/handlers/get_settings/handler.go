package get_settings

import (
	"net/http"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/settings
// Отдаёт закэшированный снимок, БД не читается
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result := h.service.Get()

	h.logger.Info("GET /settings - Settings retrieved: panel=%q, capacity=%d", result.PanelName, result.SlotCapacity)
	handlers.RespondJSON(w, http.StatusOK, result)
}
