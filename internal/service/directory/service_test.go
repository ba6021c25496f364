package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	kamRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/kam"
	packageRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/trainingpackage"
	userRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/user"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/directory/models"
	"github.com/m04kA/SMC-TrainingDesk/pkg/logger"
)

type memUsers struct {
	rows map[string]*domain.User
	err  error
}

func (m *memUsers) GetAll(ctx context.Context) ([]*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]*domain.User, 0, len(m.rows))
	for _, u := range m.rows {
		result = append(result, u)
	}
	return result, nil
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := m.rows[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memUsers) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range m.rows {
		if existing.Email == u.Email {
			return nil, userRepo.ErrEmailTaken
		}
	}
	m.rows[u.ID] = u
	return u, nil
}

func (m *memUsers) Update(ctx context.Context, u *domain.User) error {
	m.rows[u.ID] = u
	return nil
}

func (m *memUsers) Delete(ctx context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return userRepo.ErrUserNotFound
	}
	delete(m.rows, id)
	return nil
}

type memKAMs struct {
	names map[string]string
}

func (m *memKAMs) GetAll(ctx context.Context) ([]*domain.KAM, error) {
	result := make([]*domain.KAM, 0, len(m.names))
	for id, name := range m.names {
		result = append(result, &domain.KAM{ID: id, Name: name})
	}
	return result, nil
}

func (m *memKAMs) Create(ctx context.Context, k *domain.KAM) (*domain.KAM, error) {
	for _, name := range m.names {
		if name == k.Name {
			return nil, kamRepo.ErrNameTaken
		}
	}
	m.names[k.ID] = k.Name
	return k, nil
}

func (m *memKAMs) Rename(ctx context.Context, id, name string) error {
	if _, ok := m.names[id]; !ok {
		return kamRepo.ErrKAMNotFound
	}
	m.names[id] = name
	return nil
}

func (m *memKAMs) Delete(ctx context.Context, id string) error {
	if _, ok := m.names[id]; !ok {
		return kamRepo.ErrKAMNotFound
	}
	delete(m.names, id)
	return nil
}

type memPackages struct {
	rows map[string]*domain.TrainingPackage
}

func (m *memPackages) GetAll(ctx context.Context) ([]*domain.TrainingPackage, error) {
	result := make([]*domain.TrainingPackage, 0, len(m.rows))
	for _, p := range m.rows {
		result = append(result, p)
	}
	return result, nil
}

func (m *memPackages) Create(ctx context.Context, p *domain.TrainingPackage) (*domain.TrainingPackage, error) {
	m.rows[p.ID] = p
	return p, nil
}

func (m *memPackages) Update(ctx context.Context, p *domain.TrainingPackage) error {
	if _, ok := m.rows[p.ID]; !ok {
		return packageRepo.ErrPackageNotFound
	}
	m.rows[p.ID] = p
	return nil
}

func (m *memPackages) Delete(ctx context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func newTestService() (*Service, *memUsers, *memKAMs, *memPackages) {
	users := &memUsers{rows: map[string]*domain.User{}}
	kams := &memKAMs{names: map[string]string{}}
	packages := &memPackages{rows: map[string]*domain.TrainingPackage{}}
	return NewService(users, kams, packages, logger.NewNop()), users, kams, packages
}

func TestCreateUser(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.CreateUser(ctx, &models.UserRequest{
		ActorRole:   domain.RoleAdmin,
		Name:        " Dewi ",
		Email:       "Dewi@Example.com",
		Permissions: []string{"bookings", "bookings", " export "},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Dewi", resp.Name)
	assert.Equal(t, "dewi@example.com", resp.Email)
	assert.Equal(t, domain.RoleStaff, resp.Role)
	assert.Equal(t, []string{"bookings", "export"}, resp.Permissions)
	assert.Len(t, users.rows, 1)

	_, err = svc.CreateUser(ctx, &models.UserRequest{ActorRole: domain.RoleAdmin, Name: "Other", Email: "dewi@example.com"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateUser_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &models.UserRequest{ActorRole: domain.RoleStaff, Name: "A", Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.CreateUser(ctx, &models.UserRequest{ActorRole: domain.RoleAdmin, Name: "A", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateUser(ctx, &models.UserRequest{ActorRole: domain.RoleAdmin, Name: "A", Email: "a@example.com", Role: "root"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateUser(ctx, &models.UserRequest{ActorRole: domain.RoleAdmin, Name: "  ", Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateAndDeleteUser(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()
	users.rows["u1"] = &domain.User{ID: "u1", Name: "Dewi", Email: "dewi@example.com", Role: domain.RoleStaff}

	resp, err := svc.UpdateUser(ctx, "u1", &models.UserRequest{ActorRole: domain.RoleAdmin, Name: "Dewi", Email: "dewi@example.com", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, resp.Role)

	_, err = svc.UpdateUser(ctx, "u404", &models.UserRequest{ActorRole: domain.RoleAdmin, Name: "X", Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.DeleteUser(ctx, domain.RoleStaff, "u1"), ErrAccessDenied)
	require.NoError(t, svc.DeleteUser(ctx, domain.RoleAdmin, "u1"))
	assert.ErrorIs(t, svc.DeleteUser(ctx, domain.RoleAdmin, "u1"), ErrNotFound)
}

func TestListUsers_RepositoryError(t *testing.T) {
	svc, users, _, _ := newTestService()
	users.err = errors.New("connection refused")

	_, err := svc.ListUsers(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
}

func TestKAMs(t *testing.T) {
	svc, _, kams, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateKAM(ctx, &models.KAMRequest{ActorRole: domain.RoleAdmin, Name: "Budi"})
	require.NoError(t, err)

	_, err = svc.CreateKAM(ctx, &models.KAMRequest{ActorRole: domain.RoleAdmin, Name: "Budi"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	require.NoError(t, svc.RenameKAM(ctx, created.ID, &models.KAMRequest{ActorRole: domain.RoleAdmin, Name: "Budi S."}))
	assert.Equal(t, "Budi S.", kams.names[created.ID])

	assert.ErrorIs(t, svc.RenameKAM(ctx, "missing", &models.KAMRequest{ActorRole: domain.RoleAdmin, Name: "X"}), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteKAM(ctx, domain.RoleStaff, created.ID), ErrAccessDenied)
	require.NoError(t, svc.DeleteKAM(ctx, domain.RoleAdmin, created.ID))

	list, err := svc.ListKAMs(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPackages(t *testing.T) {
	svc, _, _, packages := newTestService()
	ctx := context.Background()

	created, err := svc.CreatePackage(ctx, &models.PackageRequest{ActorRole: domain.RoleAdmin, Name: "Starter", Hours: 8})
	require.NoError(t, err)
	assert.Equal(t, 8.0, created.Hours)

	_, err = svc.CreatePackage(ctx, &models.PackageRequest{ActorRole: domain.RoleAdmin, Name: "Bad", Hours: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	updated, err := svc.UpdatePackage(ctx, created.ID, &models.PackageRequest{ActorRole: domain.RoleAdmin, Name: "Starter+", Hours: 12})
	require.NoError(t, err)
	assert.Equal(t, "Starter+", updated.Name)
	assert.Equal(t, 12.0, packages.rows[created.ID].Hours)

	_, err = svc.UpdatePackage(ctx, "missing", &models.PackageRequest{ActorRole: domain.RoleAdmin, Name: "X"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.DeletePackage(ctx, domain.RoleAdmin, created.ID))
	assert.Empty(t, packages.rows)
}
