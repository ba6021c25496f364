package get_day_slots

import (
	"context"

	"github.com/m04kA/SMC-TrainingDesk/internal/service/slots/models"
)

type SlotService interface {
	ListForDate(ctx context.Context, date string) (*models.DaySlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
