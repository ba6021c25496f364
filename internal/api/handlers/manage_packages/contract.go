package manage_packages

import (
	"context"

	"github.com/m04kA/SMC-TrainingDesk/internal/service/directory/models"
)

type DirectoryService interface {
	ListPackages(ctx context.Context) ([]*models.PackageResponse, error)
	CreatePackage(ctx context.Context, req *models.PackageRequest) (*models.PackageResponse, error)
	UpdatePackage(ctx context.Context, id string, req *models.PackageRequest) (*models.PackageResponse, error)
	DeletePackage(ctx context.Context, actorRole, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
