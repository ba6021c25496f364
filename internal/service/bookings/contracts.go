package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Capabilities() domain.BookingSchema
	Create(ctx context.Context, booking *domain.TrainingBooking, stripOptional bool) (*domain.TrainingBooking, error)
	GetByID(ctx context.Context, id string) (*domain.TrainingBooking, error)
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.TrainingBooking, error)
	CountByFilter(ctx context.Context, filter domain.BookingsFilter) (int, error)
	Update(ctx context.Context, booking *domain.TrainingBooking) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
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

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
