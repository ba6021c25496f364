package settings

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	settingsRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/settings"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/settings/models"
	"github.com/m04kA/SMC-TrainingDesk/pkg/logger"
)

type fakeRepo struct {
	probeShape domain.TutorialsShape
	stored     *domain.SystemSettings
	getErr     error
	upsertErrs map[domain.TutorialsShape]error
	upserts    []domain.TutorialsShape
	gets       int
}

func (f *fakeRepo) ProbeTutorialsShape(ctx context.Context) (domain.TutorialsShape, error) {
	return f.probeShape, nil
}

func (f *fakeRepo) Get(ctx context.Context, shape domain.TutorialsShape) (*domain.SystemSettings, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.stored == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	copied := *f.stored
	return &copied, nil
}

func (f *fakeRepo) Upsert(ctx context.Context, s *domain.SystemSettings, shape domain.TutorialsShape) error {
	f.upserts = append(f.upserts, shape)
	if err := f.upsertErrs[shape]; err != nil {
		return err
	}
	copied := *s
	if shape == domain.TutorialsOmitted {
		copied.Tutorials = nil
	}
	f.stored = &copied
	return nil
}

func schemaErr() error {
	return fmt.Errorf("%w: column type", settingsRepo.ErrSchemaMismatch)
}

func intPtr(v int) *int { return &v }

func TestLoad_MissingRowUsesDefaults(t *testing.T) {
	repo := &fakeRepo{probeShape: domain.TutorialsJSON}
	svc := NewService(repo, logger.NewNop())

	require.NoError(t, svc.Load(context.Background()))

	current := svc.Current()
	assert.Equal(t, domain.DefaultPanelName, current.PanelName)
	assert.Equal(t, 2, current.SlotCapacity)
}

func TestCurrent_NoImplicitResync(t *testing.T) {
	repo := &fakeRepo{stored: &domain.SystemSettings{PanelName: "A", SlotCapacity: 3}}
	svc := NewService(repo, logger.NewNop())
	require.NoError(t, svc.Load(context.Background()))

	taken := svc.Current()
	repo.stored = &domain.SystemSettings{PanelName: "A", SlotCapacity: 7}

	assert.Equal(t, 3, svc.Current().SlotCapacity, "no reload without Refresh")
	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, 7, svc.Current().SlotCapacity)
	assert.Equal(t, 3, taken.SlotCapacity, "snapshots already handed out stay stale")
}

func TestRefresh_FailureKeepsPreviousSnapshot(t *testing.T) {
	repo := &fakeRepo{stored: &domain.SystemSettings{PanelName: "A", SlotCapacity: 4}}
	svc := NewService(repo, logger.NewNop())
	require.NoError(t, svc.Load(context.Background()))

	repo.getErr = errors.New("connection refused")

	err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 4, svc.Current().SlotCapacity)
}

func TestUpdate_DegradesThroughShapes(t *testing.T) {
	repo := &fakeRepo{
		probeShape: domain.TutorialsJSON,
		upsertErrs: map[domain.TutorialsShape]error{
			domain.TutorialsJSON: schemaErr(),
			domain.TutorialsText: schemaErr(),
		},
	}
	svc := NewService(repo, logger.NewNop())
	require.NoError(t, svc.Load(context.Background()))

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		Role:         domain.RoleAdmin,
		SlotCapacity: intPtr(5),
		Tutorials:    &[]models.Tutorial{{Title: "Intro"}},
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.TutorialsShape{domain.TutorialsJSON, domain.TutorialsText, domain.TutorialsOmitted}, repo.upserts)
	assert.Equal(t, 5, resp.SlotCapacity)
	assert.Equal(t, "omitted", resp.TutorialsShape)
	assert.Equal(t, domain.TutorialsOmitted, svc.TutorialsShape())
}

func TestUpdate_StartsAtProbedShape(t *testing.T) {
	repo := &fakeRepo{probeShape: domain.TutorialsText}
	svc := NewService(repo, logger.NewNop())
	require.NoError(t, svc.Load(context.Background()))

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{Role: domain.RoleAdmin, SlotCapacity: intPtr(3)})

	require.NoError(t, err)
	assert.Equal(t, []domain.TutorialsShape{domain.TutorialsText}, repo.upserts)
}

func TestUpdate_GenericErrorDoesNotDegrade(t *testing.T) {
	repo := &fakeRepo{upsertErrs: map[domain.TutorialsShape]error{
		domain.TutorialsJSON: fmt.Errorf("%w: timeout", settingsRepo.ErrExecQuery),
	}}
	svc := NewService(repo, logger.NewNop())
	require.NoError(t, svc.Load(context.Background()))

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{Role: domain.RoleAdmin, SlotCapacity: intPtr(3)})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Len(t, repo.upserts, 1)
	assert.Equal(t, 2, svc.Current().SlotCapacity)
}

func TestUpdate_Validation(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, logger.NewNop())

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{Role: domain.RoleAdmin, SlotCapacity: intPtr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), &models.UpdateSettingsRequest{Role: domain.RoleStaff, SlotCapacity: intPtr(3)})
	assert.ErrorIs(t, err, ErrAccessDenied)

	assert.Empty(t, repo.upserts)
}
