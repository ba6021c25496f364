package replace_day_slots

import (
	"context"

	"github.com/m04kA/SMC-TrainingDesk/internal/service/slots/models"
)

type SlotService interface {
	ReplaceForDate(ctx context.Context, date string, req *models.ReplaceSlotsRequest) (*models.DaySlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
