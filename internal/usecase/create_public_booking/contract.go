package create_public_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// Capabilities какие необязательные колонки есть в таблице (по результатам проверки схемы)
	Capabilities() domain.BookingSchema
	// Create stripOptional=true - вставка без необязательных колонок
	Create(ctx context.Context, booking *domain.TrainingBooking, stripOptional bool) (*domain.TrainingBooking, error)
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.TrainingBooking, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByDate(ctx context.Context, date string) ([]*domain.TrainingSlot, error)
}

// SettingsProvider закэшированный снимок настроек
type SettingsProvider interface {
	Current() domain.SystemSettings
}

// Metrics учёт итоговых состояний отправки
type Metrics interface {
	ObserveSubmission(state string)
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
