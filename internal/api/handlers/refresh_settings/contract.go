package refresh_settings

import (
	"context"

	"github.com/m04kA/SMC-TrainingDesk/internal/service/settings/models"
)

type SettingsService interface {
	Refresh(ctx context.Context) error
	Get() *models.SettingsResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
