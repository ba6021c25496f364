package manage_users

import (
	"context"

	"github.com/m04kA/SMC-TrainingDesk/internal/service/directory/models"
)

type DirectoryService interface {
	ListUsers(ctx context.Context) ([]*models.UserResponse, error)
	GetUser(ctx context.Context, id string) (*models.UserResponse, error)
	CreateUser(ctx context.Context, req *models.UserRequest) (*models.UserResponse, error)
	UpdateUser(ctx context.Context, id string, req *models.UserRequest) (*models.UserResponse, error)
	DeleteUser(ctx context.Context, actorRole, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
