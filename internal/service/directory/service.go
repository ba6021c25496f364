package directory

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	kamRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/kam"
	packageRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/trainingpackage"
	userRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/user"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/directory/models"
)

const maxNameLength = 120

// Service справочники панели: сотрудники, KAM и пакеты тренингов.
// Читать может любой сотрудник, изменять только администратор.
type Service struct {
	users    UserRepository
	kams     KAMRepository
	packages PackageRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса справочников
func NewService(users UserRepository, kams KAMRepository, packages PackageRepository, logger Logger) *Service {
	return &Service{
		users:    users,
		kams:     kams,
		packages: packages,
		logger:   logger,
	}
}

// Users

func (s *Service) ListUsers(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, s.repoError("ListUsers", err)
	}
	return models.FromDomainUsers(users), nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*models.UserResponse, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError("GetUser", err)
	}
	return models.FromDomainUser(u), nil
}

func (s *Service) CreateUser(ctx context.Context, req *models.UserRequest) (*models.UserResponse, error) {
	s.logger.Info("CreateUser: creating user email=%s", req.Email)

	u := &domain.User{ID: uuid.NewString()}
	if err := s.applyUser(u, req); err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, s.repoError("CreateUser", err)
	}

	s.logger.Info("CreateUser: user id=%s created", created.ID)
	return models.FromDomainUser(created), nil
}

func (s *Service) UpdateUser(ctx context.Context, id string, req *models.UserRequest) (*models.UserResponse, error) {
	s.logger.Info("UpdateUser: updating user id=%s", id)

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError("UpdateUser", err)
	}
	if err := s.applyUser(u, req); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, s.repoError("UpdateUser", err)
	}

	return models.FromDomainUser(u), nil
}

func (s *Service) DeleteUser(ctx context.Context, actorRole, id string) error {
	if actorRole != domain.RoleAdmin {
		s.logger.Warn("DeleteUser: role=%s is not allowed", actorRole)
		return ErrAccessDenied
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return s.repoError("DeleteUser", err)
	}
	s.logger.Info("DeleteUser: user id=%s deleted", id)
	return nil
}

func (s *Service) applyUser(u *domain.User, req *models.UserRequest) error {
	if req.ActorRole != domain.RoleAdmin {
		s.logger.Warn("applyUser: role=%s is not allowed to manage users", req.ActorRole)
		return ErrAccessDenied
	}

	name := strings.TrimSpace(req.Name)
	if err := validateName(name); err != nil {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidInput, req.Email)
	}
	role := req.Role
	if role == "" {
		role = domain.RoleStaff
	}
	if role != domain.RoleAdmin && role != domain.RoleStaff {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}

	u.Name = name
	u.Email = email
	u.Role = role
	u.Permissions = dedupe(req.Permissions)
	return nil
}

// KAMs

func (s *Service) ListKAMs(ctx context.Context) ([]*models.KAMResponse, error) {
	kams, err := s.kams.GetAll(ctx)
	if err != nil {
		return nil, s.repoError("ListKAMs", err)
	}
	return models.FromDomainKAMs(kams), nil
}

func (s *Service) CreateKAM(ctx context.Context, req *models.KAMRequest) (*models.KAMResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.checkMutation("CreateKAM", req.ActorRole, name); err != nil {
		return nil, err
	}

	created, err := s.kams.Create(ctx, &domain.KAM{ID: uuid.NewString(), Name: name})
	if err != nil {
		return nil, s.repoError("CreateKAM", err)
	}

	s.logger.Info("CreateKAM: kam id=%s created", created.ID)
	return models.FromDomainKAM(created), nil
}

func (s *Service) RenameKAM(ctx context.Context, id string, req *models.KAMRequest) error {
	name := strings.TrimSpace(req.Name)
	if err := s.checkMutation("RenameKAM", req.ActorRole, name); err != nil {
		return err
	}
	if err := s.kams.Rename(ctx, id, name); err != nil {
		return s.repoError("RenameKAM", err)
	}
	return nil
}

func (s *Service) DeleteKAM(ctx context.Context, actorRole, id string) error {
	if actorRole != domain.RoleAdmin {
		return ErrAccessDenied
	}
	if err := s.kams.Delete(ctx, id); err != nil {
		return s.repoError("DeleteKAM", err)
	}
	return nil
}

// Packages

func (s *Service) ListPackages(ctx context.Context) ([]*models.PackageResponse, error) {
	packages, err := s.packages.GetAll(ctx)
	if err != nil {
		return nil, s.repoError("ListPackages", err)
	}
	return models.FromDomainPackages(packages), nil
}

func (s *Service) CreatePackage(ctx context.Context, req *models.PackageRequest) (*models.PackageResponse, error) {
	p, err := s.packageFromRequest("CreatePackage", uuid.NewString(), req)
	if err != nil {
		return nil, err
	}

	created, err := s.packages.Create(ctx, p)
	if err != nil {
		return nil, s.repoError("CreatePackage", err)
	}
	return models.FromDomainPackage(created), nil
}

func (s *Service) UpdatePackage(ctx context.Context, id string, req *models.PackageRequest) (*models.PackageResponse, error) {
	p, err := s.packageFromRequest("UpdatePackage", id, req)
	if err != nil {
		return nil, err
	}
	if err := s.packages.Update(ctx, p); err != nil {
		return nil, s.repoError("UpdatePackage", err)
	}
	return models.FromDomainPackage(p), nil
}

func (s *Service) DeletePackage(ctx context.Context, actorRole, id string) error {
	if actorRole != domain.RoleAdmin {
		return ErrAccessDenied
	}
	if err := s.packages.Delete(ctx, id); err != nil {
		return s.repoError("DeletePackage", err)
	}
	return nil
}

func (s *Service) packageFromRequest(op, id string, req *models.PackageRequest) (*domain.TrainingPackage, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.checkMutation(op, req.ActorRole, name); err != nil {
		return nil, err
	}
	if req.Hours < 0 || req.Hours > 1000 {
		return nil, fmt.Errorf("%w: hours must be between 0 and 1000", ErrInvalidInput)
	}
	return &domain.TrainingPackage{ID: id, Name: name, Hours: req.Hours}, nil
}

func (s *Service) checkMutation(op, actorRole, name string) error {
	if actorRole != domain.RoleAdmin {
		s.logger.Warn("%s: role=%s is not allowed", op, actorRole)
		return ErrAccessDenied
	}
	return validateName(name)
}

// repoError приводит ошибки репозиториев к ошибкам сервиса
func (s *Service) repoError(op string, err error) error {
	switch {
	case errors.Is(err, userRepo.ErrUserNotFound),
		errors.Is(err, kamRepo.ErrKAMNotFound),
		errors.Is(err, packageRepo.ErrPackageNotFound):
		s.logger.Warn("%s: not found", op)
		return ErrNotFound
	case errors.Is(err, userRepo.ErrEmailTaken),
		errors.Is(err, kamRepo.ErrNameTaken),
		errors.Is(err, packageRepo.ErrNameTaken):
		s.logger.Warn("%s: %v", op, err)
		return ErrAlreadyExists
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func validateName(name string) error {
	if name == "" || len(name) > maxNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, maxNameLength)
	}
	return nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
