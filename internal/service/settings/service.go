package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	settingsRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/settings"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/settings/models"
)

// Service настройки системы.
// Жизненный цикл явный: Load при старте, Refresh по запросу, Update сохраняет и перечитывает.
// Между вызовами Refresh все читают закэшированный снимок.
type Service struct {
	repo   SettingsRepository
	logger Logger

	mu      sync.RWMutex
	current domain.SystemSettings
	shape   domain.TutorialsShape
}

// NewService создает сервис с настройками по умолчанию
func NewService(repo SettingsRepository, logger Logger) *Service {
	return &Service{
		repo:    repo,
		logger:  logger,
		current: domain.DefaultSettings(),
		shape:   domain.TutorialsJSON,
	}
}

// Load определяет форму колонки tutorials и читает настройки. Вызывается один раз при старте.
func (s *Service) Load(ctx context.Context) error {
	shape, err := s.repo.ProbeTutorialsShape(ctx)
	if err != nil {
		s.logger.Warn("Load: tutorials probe failed, assuming json: %v", err)
		shape = domain.TutorialsJSON
	}

	s.mu.Lock()
	s.shape = shape
	s.mu.Unlock()

	s.logger.Info("Load: tutorials stored as %s", shape)
	return s.Refresh(ctx)
}

// Refresh перечитывает настройки из БД. При ошибке остаётся предыдущий снимок.
func (s *Service) Refresh(ctx context.Context) error {
	shape := s.TutorialsShape()

	loaded, err := s.repo.Get(ctx, shape)
	if errors.Is(err, settingsRepo.ErrSchemaMismatch) && shape != domain.TutorialsOmitted {
		s.logger.Warn("Refresh: tutorials column unreadable as %s, reading without it: %v", shape, err)
		shape = domain.TutorialsOmitted
		loaded, err = s.repo.Get(ctx, shape)
	}

	switch {
	case errors.Is(err, settingsRepo.ErrSettingsNotFound):
		s.logger.Info("Refresh: settings row not found, using defaults")
		defaults := domain.DefaultSettings()
		loaded = &defaults
	case err != nil:
		s.logger.Error("Refresh: failed to read settings: %v", err)
		return fmt.Errorf("%w: Refresh - repository error: %v", ErrInternal, err)
	}

	if loaded.SlotCapacity <= 0 {
		loaded.SlotCapacity = domain.DefaultSlotCapacity
	}
	if loaded.Tutorials == nil {
		loaded.Tutorials = []domain.Tutorial{}
	}

	s.mu.Lock()
	s.current = *loaded
	s.shape = shape
	s.mu.Unlock()

	return nil
}

// Current снимок настроек. Изменения после Refresh на уже выданные снимки не влияют.
func (s *Service) Current() domain.SystemSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.current
	snapshot.Tutorials = append([]domain.Tutorial(nil), s.current.Tutorials...)
	return snapshot
}

// TutorialsShape текущая форма хранения tutorials
func (s *Service) TutorialsShape() domain.TutorialsShape {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shape
}

// Get текущие настройки в виде ответа
func (s *Service) Get() *models.SettingsResponse {
	return models.FromDomainSettings(s.Current(), s.TutorialsShape())
}

// Update сохраняет настройки. Форма tutorials деградирует json -> text -> без колонки,
// но только на ошибках схемы; любая другая ошибка прерывает сохранение.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings by role=%s", req.Role)

	if req.Role != domain.RoleAdmin {
		s.logger.Warn("Update: role=%s is not allowed to change settings", req.Role)
		return nil, ErrAccessDenied
	}

	next := req.Apply(s.Current())
	if err := validateSettings(next); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	var lastErr error
	for shape := s.TutorialsShape(); shape <= domain.TutorialsOmitted; shape++ {
		err := s.repo.Upsert(ctx, &next, shape)
		if err == nil {
			if shape != domain.TutorialsJSON {
				s.logger.Warn("Update: settings saved with tutorials as %s", shape)
			}
			s.mu.Lock()
			s.shape = shape
			s.mu.Unlock()

			if err := s.Refresh(ctx); err != nil {
				return nil, err
			}
			s.logger.Info("Update: settings saved")
			return s.Get(), nil
		}

		if !errors.Is(err, settingsRepo.ErrSchemaMismatch) {
			s.logger.Error("Update: failed to save settings: %v", err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		s.logger.Warn("Update: tutorials rejected as %s, degrading: %v", shape, err)
		lastErr = err
	}

	s.logger.Error("Update: every payload shape was rejected: %v", lastErr)
	return nil, fmt.Errorf("%w: Update - all payload shapes rejected: %v", ErrInternal, lastErr)
}

func validateSettings(s domain.SystemSettings) error {
	name := strings.TrimSpace(s.PanelName)
	if name == "" || len(name) > domain.MaxPanelNameLength {
		return fmt.Errorf("%w: panel name must be 1-%d characters", ErrInvalidInput, domain.MaxPanelNameLength)
	}
	if s.SlotCapacity < domain.MinSlotCapacity || s.SlotCapacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: slot capacity must be between %d and %d", ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}
	if len(s.Tutorials) > domain.MaxTutorialsCount {
		return fmt.Errorf("%w: too many tutorials", ErrInvalidInput)
	}
	for i, t := range s.Tutorials {
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("%w: tutorial #%d has no title", ErrInvalidInput, i+1)
		}
	}
	return nil
}
