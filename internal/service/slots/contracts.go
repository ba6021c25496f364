package slots

import (
	"context"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByDate(ctx context.Context, date string) ([]*domain.TrainingSlot, error)
	Create(ctx context.Context, slot *domain.TrainingSlot) error
	CreateMany(ctx context.Context, slots []*domain.TrainingSlot) error
	Update(ctx context.Context, slot *domain.TrainingSlot) error
	Delete(ctx context.Context, date, id string) error
	DeleteByDate(ctx context.Context, date string) (int64, error)
}

// BookingRepository нужен только для подсчёта занятых мест
type BookingRepository interface {
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.TrainingBooking, error)
}

// SettingsProvider источник вместимости по умолчанию
type SettingsProvider interface {
	Current() domain.SystemSettings
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
