package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings/models"
)

type BookingService interface {
	QuickEdit(ctx context.Context, id string, req *models.QuickEditRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
