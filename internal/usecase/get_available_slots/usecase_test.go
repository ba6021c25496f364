package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	"github.com/m04kA/SMC-TrainingDesk/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubSlots struct {
	slots []*domain.TrainingSlot
	err   error
}

func (s *stubSlots) GetByDate(ctx context.Context, date string) ([]*domain.TrainingSlot, error) {
	return s.slots, s.err
}

type stubBookings struct {
	bookings []*domain.TrainingBooking
	filter   domain.BookingsFilter
	err      error
}

func (s *stubBookings) GetByFilter(ctx context.Context, f domain.BookingsFilter) ([]*domain.TrainingBooking, error) {
	s.filter = f
	return s.bookings, s.err
}

type stubSettings struct{ capacity int }

func (s stubSettings) Current() domain.SystemSettings {
	settings := domain.DefaultSettings()
	settings.SlotCapacity = s.capacity
	return settings
}

func newUseCase(slots *stubSlots, bookings *stubBookings, capacity int, now time.Time) *UseCase {
	uc := NewUseCase(slots, bookings, stubSettings{capacity: capacity}, time.UTC, logger.NewNop())
	uc.timeProvider = fixedClock{now: now}
	return uc
}

func TestExecute_DefaultSlots(t *testing.T) {
	bookings := &stubBookings{bookings: []*domain.TrainingBooking{
		{ID: "TKT-1", Date: "2024-06-10", StartTime: "15:00", Status: domain.StatusToDo},
		{ID: "REQ-1", Date: "2024-06-10", StartTime: "3:00 pm", Status: domain.StatusPending, Category: domain.CategoryPublicRequest},
	}}
	uc := newUseCase(&stubSlots{}, bookings, 2, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{Date: "2024-06-10"})

	require.NoError(t, err)
	assert.True(t, resp.UsesDefaults)
	require.Len(t, resp.Slots, 4)
	assert.Equal(t, "virtual-2024-06-10-0", resp.Slots[0].ID)
	assert.Equal(t, "10:00 AM", resp.Slots[0].Time)
	assert.Equal(t, 2, resp.Slots[0].Remaining)
	assert.True(t, resp.Slots[0].Bookable())

	assert.Equal(t, "03:00 PM", resp.Slots[2].Time)
	assert.Equal(t, 0, resp.Slots[2].Remaining)
	assert.True(t, resp.Slots[2].IsFull)
	assert.False(t, resp.Slots[2].Bookable())

	assert.Equal(t, "2024-06-10", bookings.filter.Date)
	assert.Equal(t, domain.ScopeAll, bookings.filter.Scope)
	assert.True(t, bookings.filter.ActiveOnly)
}

func TestExecute_ConfiguredSlots(t *testing.T) {
	slots := &stubSlots{slots: []*domain.TrainingSlot{
		{ID: "s1", Date: "2024-06-10", Time: "09:00", IsActive: true, Capacity: 5},
		{ID: "s2", Date: "2024-06-10", Time: "13:00", IsActive: false, Capacity: 5},
	}}
	uc := newUseCase(slots, &stubBookings{}, 2, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{Date: "2024-06-10"})

	require.NoError(t, err)
	assert.False(t, resp.UsesDefaults)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, 5, resp.Slots[0].Remaining)
	assert.Equal(t, "01:00 PM", resp.Slots[1].Time)
	assert.True(t, resp.Slots[1].IsDeactivated)
	assert.False(t, resp.Slots[1].Bookable())
}

func TestExecute_TodayMarksPassedSlots(t *testing.T) {
	uc := newUseCase(&stubSlots{}, &stubBookings{}, 2, time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{Date: "2024-06-10"})

	require.NoError(t, err)
	assert.True(t, resp.Slots[0].IsPast)
	assert.True(t, resp.Slots[1].IsPast)
	assert.False(t, resp.Slots[2].IsPast)
	assert.False(t, resp.Slots[3].IsPast)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(&stubSlots{}, &stubBookings{}, 2, time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{Date: ""})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(context.Background(), &Request{Date: "10-06-2024"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(context.Background(), &Request{Date: "2024-06-09"})
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_RepositoryErrors(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	_, err := newUseCase(&stubSlots{err: errors.New("boom")}, &stubBookings{}, 2, now).
		Execute(context.Background(), &Request{Date: "2024-06-10"})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = newUseCase(&stubSlots{}, &stubBookings{err: errors.New("boom")}, 2, now).
		Execute(context.Background(), &Request{Date: "2024-06-10"})
	assert.ErrorIs(t, err, ErrInternal)
}
