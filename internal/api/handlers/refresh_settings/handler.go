package refresh_settings

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

// Handle POST /api/v1/settings/refresh
// Перечитывает настройки из БД. При ошибке остаётся прежний снимок.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		h.logger.Error("POST /settings/refresh - Failed to refresh settings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	result := h.service.Get()
	h.logger.Info("POST /settings/refresh - Settings refreshed: panel=%q", result.PanelName)
	handlers.RespondJSON(w, http.StatusOK, result)
}
