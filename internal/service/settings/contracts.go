package settings

import (
	"context"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	ProbeTutorialsShape(ctx context.Context) (domain.TutorialsShape, error)
	Get(ctx context.Context, shape domain.TutorialsShape) (*domain.SystemSettings, error)
	Upsert(ctx context.Context, settings *domain.SystemSettings, shape domain.TutorialsShape) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
