package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

// UseCase use case для получения слотов даты на публичной странице
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	settings     SettingsProvider
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	settings SettingsProvider,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date)

	// 1. Валидация даты
	now := uc.timeProvider.Now().In(uc.location)
	day, err := validateRequest(req, now, uc.location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Вместимость по умолчанию из закэшированных настроек
	defaultCapacity := uc.settings.Current().EffectiveSlotCapacity()

	// 3. Настроенные слоты даты, иначе слоты по умолчанию
	configured, err := uc.slotRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}
	resolved := domain.ResolveSlots(req.Date, configured, defaultCapacity)

	// 4. Все неотменённые бронирования даты, включая заявки с публичной страницы
	bookings, err := uc.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{
		Date:       req.Date,
		Scope:      domain.ScopeAll,
		ActiveOnly: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Подсчёт мест
	slots := buildSlots(resolved, req.Date, day, now, bookings, defaultCapacity)

	usesDefaults := len(resolved) > 0 && resolved[0].IsVirtual
	uc.logger.Info("GetAvailableSlots: %d slots for date=%s (defaults=%t)", len(slots), req.Date, usesDefaults)

	return &Response{
		Date:         req.Date,
		UsesDefaults: usesDefaults,
		Slots:        slots,
	}, nil
}
