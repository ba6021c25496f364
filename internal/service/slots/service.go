package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	slotRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/slots/models"
	"github.com/m04kA/SMC-TrainingDesk/pkg/types"
)

// Service администрирование слотов.
// Дата без явных слотов показывает виртуальные слоты по умолчанию; в БД они попадают
// только при первом изменении любого из них.
type Service struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	settings    SettingsProvider
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		settings:    settings,
		txManager:   txManager,
		logger:      logger,
	}
}

// ListForDate слоты даты (включая виртуальные) с занятостью
func (s *Service) ListForDate(ctx context.Context, date string) (*models.DaySlotsResponse, error) {
	s.logger.Info("ListForDate: fetching slots for date=%s", date)

	if err := validateDate(date); err != nil {
		return nil, err
	}

	defaultCapacity := s.settings.Current().EffectiveSlotCapacity()

	resolved, err := s.resolve(ctx, date, defaultCapacity)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{Date: date, ActiveOnly: true, Scope: domain.ScopeAll})
	if err != nil {
		s.logger.Error("ListForDate: failed to get bookings for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: ListForDate - booking repository error: %v", ErrInternal, err)
	}

	resp := &models.DaySlotsResponse{
		Date:  date,
		Slots: make([]*models.SlotResponse, 0, len(resolved)),
	}
	for _, slot := range resolved {
		if slot.IsVirtual {
			resp.UsesDefaults = true
		}
		av := domain.CalculateAvailability(slot, date, bookings, defaultCapacity)
		resp.Slots = append(resp.Slots, models.FromDomainSlot(slot, av))
	}

	return resp, nil
}

// Create добавляет явный слот. После этого слоты по умолчанию для даты больше не показываются.
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot date=%s time=%s", req.Date, req.Time)

	if req.Role != domain.RoleAdmin {
		s.logger.Warn("Create: role=%s is not allowed to manage slots", req.Role)
		return nil, ErrAccessDenied
	}
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}

	slot, err := slotFromInput(req.Date, req.SlotInput)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if err := s.slotRepo.Create(ctx, slot); err != nil {
		if errors.Is(err, slotRepo.ErrSlotExists) {
			return nil, ErrSlotExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created slot id=%s for date=%s", slot.ID, slot.Date)
	return models.FromDomainSlot(slot, domain.Availability{Count: slot.Capacity, Capacity: slot.Capacity, IsFull: !slot.IsActive, IsDeactivated: !slot.IsActive}), nil
}

// Update меняет время, вместимость или активность слота.
// Если слот виртуальный, сначала сохраняются ВСЕ виртуальные слоты даты с теми же id,
// иначе остальные слоты по умолчанию пропали бы из расписания.
func (s *Service) Update(ctx context.Context, date, id string, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Update: updating slot id=%s date=%s", id, date)

	if req.Role != domain.RoleAdmin {
		s.logger.Warn("Update: role=%s is not allowed to manage slots", req.Role)
		return nil, ErrAccessDenied
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	var updated *domain.TrainingSlot

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		resolved, err := s.resolve(ctx, date, s.settings.Current().EffectiveSlotCapacity())
		if err != nil {
			return err
		}

		target, ok := domain.FindSlot(resolved, id)
		if !ok {
			return ErrSlotNotFound
		}

		if target.IsVirtual {
			materialized := domain.Materialize(resolved)
			s.logger.Info("Update: materializing %d default slots for date=%s", len(materialized), date)
			if err := s.slotRepo.CreateMany(ctx, materialized); err != nil {
				return fmt.Errorf("%w: Update - materialize: %v", ErrInternal, err)
			}
		}

		patched := *target
		patched.IsVirtual = false
		if err := applyPatch(&patched, req); err != nil {
			return err
		}

		if err := s.slotRepo.Update(ctx, &patched); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		updated = &patched
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Update: failed to update slot id=%s: %v", id, err)
		} else {
			s.logger.Warn("Update: slot id=%s not updated: %v", id, err)
		}
		return nil, wrapTxError(err)
	}

	s.logger.Info("Update: slot id=%s updated", id)
	return models.FromDomainSlot(updated, domain.Availability{Capacity: updated.Capacity, IsDeactivated: !updated.IsActive}), nil
}

// Delete удаляет сохраненный слот.
// Слоты по умолчанию, сохраненные при Update, хранятся с виртуальными id и удаляются как обычные.
func (s *Service) Delete(ctx context.Context, role, date, id string) error {
	s.logger.Info("Delete: deleting slot id=%s date=%s", id, date)

	if role != domain.RoleAdmin {
		s.logger.Warn("Delete: role=%s is not allowed to manage slots", role)
		return ErrAccessDenied
	}

	if err := s.slotRepo.Delete(ctx, date, id); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			if strings.HasPrefix(id, "virtual-") {
				s.logger.Warn("Delete: slot id=%s is a default slot, it can only be deactivated", id)
				return ErrVirtualSlot
			}
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

// ReplaceForDate удаляет слоты даты и вставляет новые одной транзакцией
func (s *Service) ReplaceForDate(ctx context.Context, date string, req *models.ReplaceSlotsRequest) (*models.DaySlotsResponse, error) {
	s.logger.Info("ReplaceForDate: replacing slots for date=%s with %d slots", date, len(req.Slots))

	if req.Role != domain.RoleAdmin {
		s.logger.Warn("ReplaceForDate: role=%s is not allowed to manage slots", req.Role)
		return nil, ErrAccessDenied
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	slots := make([]*domain.TrainingSlot, 0, len(req.Slots))
	for _, input := range req.Slots {
		slot, err := slotFromInput(date, input)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.slotRepo.DeleteByDate(ctx, date); err != nil {
			return fmt.Errorf("%w: ReplaceForDate - delete: %v", ErrInternal, err)
		}
		if err := s.slotRepo.CreateMany(ctx, slots); err != nil {
			return fmt.Errorf("%w: ReplaceForDate - insert: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ReplaceForDate: failed for date=%s: %v", date, err)
		return nil, wrapTxError(err)
	}

	return s.ListForDate(ctx, date)
}

func (s *Service) resolve(ctx context.Context, date string, defaultCapacity int) ([]*domain.TrainingSlot, error) {
	configured, err := s.slotRepo.GetByDate(ctx, date)
	if err != nil {
		s.logger.Error("resolve: failed to get slots for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: resolve - slot repository error: %v", ErrInternal, err)
	}
	return domain.ResolveSlots(date, configured, defaultCapacity), nil
}

func applyPatch(slot *domain.TrainingSlot, req *models.UpdateSlotRequest) error {
	if req.Time != nil {
		display, err := displayTime(*req.Time)
		if err != nil {
			return err
		}
		slot.Time = display
	}
	if req.Capacity != nil {
		if err := validateCapacity(*req.Capacity); err != nil {
			return err
		}
		slot.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}
	return nil
}

func slotFromInput(date string, input models.SlotInput) (*domain.TrainingSlot, error) {
	display, err := displayTime(input.Time)
	if err != nil {
		return nil, err
	}
	if err := validateCapacity(input.Capacity); err != nil {
		return nil, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	return &domain.TrainingSlot{
		ID:       uuid.NewString(),
		Date:     date,
		Time:     display,
		IsActive: active,
		Capacity: input.Capacity,
	}, nil
}

// displayTime приводит время к виду "03:00 PM"
func displayTime(raw string) (string, error) {
	ts, err := types.NewTimeStringFromString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid time %q", ErrInvalidInput, raw)
	}
	return ts.Display(), nil
}

func validateCapacity(capacity int) error {
	if capacity < domain.MinSlotCapacity || capacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d", ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}

// wrapTxError ошибки сервиса возвращаются как есть, остальное (begin/commit) - внутренняя ошибка
func wrapTxError(err error) error {
	switch {
	case errors.Is(err, ErrSlotNotFound),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInternal):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
