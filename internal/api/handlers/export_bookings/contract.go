package export_bookings

import (
	"context"

	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings/models"
)

type BookingService interface {
	ExportXLSX(ctx context.Context, req *models.ListBookingsRequest, publicOnly bool) (*bookings.ExportFile, error)
	ExportICS(ctx context.Context, req *models.ListBookingsRequest, publicOnly bool) (*bookings.ExportFile, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
