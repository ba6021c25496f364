package bulk_delete_bookings

import (
	"context"

	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings/models"
)

type BookingService interface {
	BulkDelete(ctx context.Context, req *models.BulkDeleteRequest) (*models.BulkDeleteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
