package get_dashboard

import (
	"context"

	"github.com/m04kA/SMC-TrainingDesk/internal/service/snapshot"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/snapshot/models"
)

type SnapshotService interface {
	Refresh(ctx context.Context) snapshot.Snapshot
	Dashboard() *models.DashboardResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
