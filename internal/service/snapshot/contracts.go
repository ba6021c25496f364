package snapshot

import (
	"context"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.TrainingBooking, error)
}

// UserRepository интерфейс репозитория сотрудников
type UserRepository interface {
	GetAll(ctx context.Context) ([]*domain.User, error)
}

// KAMRepository интерфейс репозитория KAM
type KAMRepository interface {
	GetAll(ctx context.Context) ([]*domain.KAM, error)
}

// PackageRepository интерфейс репозитория пакетов
type PackageRepository interface {
	GetAll(ctx context.Context) ([]*domain.TrainingPackage, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetAll(ctx context.Context) ([]*domain.TrainingSlot, error)
}

// SettingsService явное перечитывание настроек и текущий снимок
type SettingsService interface {
	Refresh(ctx context.Context) error
	Current() domain.SystemSettings
	TutorialsShape() domain.TutorialsShape
}

// Metrics учёт неудачных загрузок коллекций
type Metrics interface {
	ObserveSnapshotFailure(collection string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
