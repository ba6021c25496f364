package directory

import (
	"context"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

// UserRepository интерфейс репозитория сотрудников
type UserRepository interface {
	GetAll(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

// KAMRepository интерфейс репозитория KAM
type KAMRepository interface {
	GetAll(ctx context.Context) ([]*domain.KAM, error)
	Create(ctx context.Context, k *domain.KAM) (*domain.KAM, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

// PackageRepository интерфейс репозитория пакетов тренингов
type PackageRepository interface {
	GetAll(ctx context.Context) ([]*domain.TrainingPackage, error)
	Create(ctx context.Context, p *domain.TrainingPackage) (*domain.TrainingPackage, error)
	Update(ctx context.Context, p *domain.TrainingPackage) error
	Delete(ctx context.Context, id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
