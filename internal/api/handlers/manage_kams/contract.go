package manage_kams

import (
	"context"

	"github.com/m04kA/SMC-TrainingDesk/internal/service/directory/models"
)

type DirectoryService interface {
	ListKAMs(ctx context.Context) ([]*models.KAMResponse, error)
	CreateKAM(ctx context.Context, req *models.KAMRequest) (*models.KAMResponse, error)
	RenameKAM(ctx context.Context, id string, req *models.KAMRequest) error
	DeleteKAM(ctx context.Context, actorRole, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
