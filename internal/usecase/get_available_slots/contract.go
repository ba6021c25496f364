package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	// GetByDate настроенные слоты даты в порядке создания
	GetByDate(ctx context.Context, date string) ([]*domain.TrainingSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.TrainingBooking, error)
}

// SettingsProvider закэшированный снимок настроек
type SettingsProvider interface {
	Current() domain.SystemSettings
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
