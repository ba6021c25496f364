package create_public_booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TrainingDesk/pkg/types"
)

const notesPrefix = "Customer requested via public portal. Phone: "

// UseCase use case для заявки на тренинг с публичной страницы
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	settings     SettingsProvider
	metrics      Metrics
	timeProvider TimeProvider
	location     *time.Location
	randIntn     func(n int) int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	settings SettingsProvider,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		settings:     settings,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		location:     location,
		randIntn:     rand.Intn,
		logger:       logger,
	}
}

// Execute выполняет одну попытку отправки заявки:
// validating -> submitting -> success | retrying-degraded -> success | failed.
// Места считаются на момент чтения, без блокировок: две одновременные заявки
// на последнее место могут пройти обе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	state := StateValidating
	uc.logger.Info("CreatePublicBooking: %s date=%s slot=%s company=%q", state, req.Date, req.SlotID, req.CompanyName)

	// 1. Проверка полей, до любых обращений к БД
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreatePublicBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)
	day, err := validateDate(req.Date, now)
	if err != nil {
		uc.logger.Warn("CreatePublicBooking: date validation failed: %v", err)
		return nil, err
	}

	// 2. Слот должен существовать и быть открыт
	slot, err := uc.checkSlot(ctx, req, day, now)
	if err != nil {
		uc.fail(err)
		return nil, err
	}

	// 3. Отправка полной записи
	state = StateSubmitting
	booking := uc.buildBooking(req, slot, now)
	strip := !uc.bookingRepo.Capabilities().PhoneNumber
	uc.logger.Info("CreatePublicBooking: %s id=%s (strip optional=%t)", state, booking.ID, strip)

	created, err := uc.bookingRepo.Create(ctx, booking, strip)

	// 4. Одна повторная попытка без необязательных колонок, только при ошибке схемы
	if err != nil && !strip && errors.Is(err, bookingRepo.ErrUndefinedColumn) {
		state = StateRetryingDegraded
		strip = true
		uc.metrics.ObserveSubmission(string(state))
		uc.logger.Warn("CreatePublicBooking: %s id=%s: %v", state, booking.ID, err)

		created, err = uc.bookingRepo.Create(ctx, booking, true)
	}

	if err != nil {
		uc.logger.Error("CreatePublicBooking: failed to create booking id=%s: %v", booking.ID, err)
		err = fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		uc.fail(err)
		return nil, err
	}

	state = StateSuccess
	uc.metrics.ObserveSubmission(string(state))

	id := booking.ID
	if created != nil && created.ID != "" {
		id = created.ID
	}
	uc.logger.Info("CreatePublicBooking: %s id=%s degraded=%t", state, id, strip)

	return &Response{
		ID:        id,
		Date:      booking.Date,
		StartTime: booking.StartTime,
		Status:    string(booking.Status),
		State:     state,
		Degraded:  strip,
	}, nil
}

// checkSlot находит слот среди настроенных или слотов по умолчанию и проверяет свободные места
func (uc *UseCase) checkSlot(ctx context.Context, req *Request, day, now time.Time) (*domain.TrainingSlot, error) {
	defaultCapacity := uc.settings.Current().EffectiveSlotCapacity()

	configured, err := uc.slotRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CreatePublicBooking: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	slot, ok := domain.FindSlot(domain.ResolveSlots(req.Date, configured, defaultCapacity), req.SlotID)
	if !ok {
		uc.logger.Warn("CreatePublicBooking: slot id=%s not found for date=%s", req.SlotID, req.Date)
		return nil, ErrSlotNotFound
	}

	if isSameDay(day, now) {
		if ts, err := types.NewTimeStringFromString(slot.Time); err == nil && ts.IsBefore(types.NewTimeString(now)) {
			uc.logger.Warn("CreatePublicBooking: slot %s on %s has already started", slot.Time, req.Date)
			return nil, fmt.Errorf("%w: slot has already started", ErrSlotNotAvailable)
		}
	}

	bookings, err := uc.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{
		Date:       req.Date,
		Scope:      domain.ScopeAll,
		ActiveOnly: true,
	})
	if err != nil {
		uc.logger.Error("CreatePublicBooking: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	av := domain.CalculateAvailability(slot, req.Date, bookings, defaultCapacity)
	if av.IsDeactivated {
		uc.logger.Warn("CreatePublicBooking: slot id=%s is deactivated", slot.ID)
		return nil, fmt.Errorf("%w: slot is deactivated", ErrSlotNotAvailable)
	}
	if av.IsFull {
		uc.logger.Warn("CreatePublicBooking: slot id=%s is full, capacity=%d", slot.ID, av.Capacity)
		return nil, fmt.Errorf("%w: slot is full", ErrSlotNotAvailable)
	}

	uc.logger.Info("CreatePublicBooking: slot id=%s has %d/%d seats left", slot.ID, av.Count, av.Capacity)
	return slot, nil
}

// buildBooking заявка с заглушками для внутренних полей и телефоном в notes
func (uc *UseCase) buildBooking(req *Request, slot *domain.TrainingSlot, now time.Time) *domain.TrainingBooking {
	phone := req.PhoneNumber

	notes := []string{notesPrefix + phone}
	if req.ContactName != "" {
		notes = append(notes, "Contact: "+req.ContactName)
	}
	if req.Notes != "" {
		notes = append(notes, req.Notes)
	}

	title := req.Title
	if title == "" {
		title = domain.PublicRequestTitle
	}

	booking := &domain.TrainingBooking{
		ID:             uc.newRequestID(now),
		ClientName:     req.CompanyName,
		AssignedPerson: domain.PlaceholderTBD,
		KAMName:        domain.PlaceholderTBD,
		Title:          title,
		Category:       domain.CategoryPublicRequest,
		Date:           req.Date,
		StartTime:      slot.Time,
		Duration:       domain.DefaultDurationHours,
		Notes:          strings.Join(notes, "\n"),
		PhoneNumber:    &phone,
		Status:         domain.StatusPending,
	}
	booking.AppendHistory(now, domain.PublicPortalUser, "Created", "")

	return booking
}

// newRequestID REQ-<последние 8 цифр unix ms>-<3 случайные цифры>
func (uc *UseCase) newRequestID(now time.Time) string {
	return fmt.Sprintf("%s-%08d-%03d", domain.PublicRequestIDPrefix, now.UnixMilli()%100000000, uc.randIntn(1000))
}

func (uc *UseCase) fail(err error) {
	uc.metrics.ObserveSubmission(string(StateFailed))
	uc.logger.Warn("CreatePublicBooking: %s: %v", StateFailed, err)
}
