package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(date, start string, status BookingStatus) *TrainingBooking {
	return &TrainingBooking{Date: date, StartTime: start, Status: status}
}

func TestResolveSlots_DefaultsWhenNothingConfigured(t *testing.T) {
	other := &TrainingSlot{ID: "s1", Date: "2024-06-11", Time: "09:00 AM", IsActive: true, Capacity: 5}

	slots := ResolveSlots("2024-06-10", []*TrainingSlot{other}, 3)

	require.Len(t, slots, 4)
	for i, slot := range slots {
		assert.Equal(t, DefaultSlotTimes[i], slot.Time)
		assert.Equal(t, 3, slot.Capacity)
		assert.True(t, slot.IsActive)
		assert.True(t, slot.IsVirtual)
		assert.Equal(t, "2024-06-10", slot.Date)
		assert.Equal(t, VirtualSlotID("2024-06-10", i), slot.ID)
	}
}

func TestResolveSlots_ConfiguredReplaceDefaults(t *testing.T) {
	configured := []*TrainingSlot{
		{ID: "b", Date: "2024-06-10", Time: "02:00 PM", IsActive: true, Capacity: 1},
		{ID: "x", Date: "2024-06-12", Time: "08:00 AM", IsActive: true, Capacity: 1},
		{ID: "a", Date: "2024-06-10", Time: "09:00 AM", IsActive: false, Capacity: 4},
	}

	slots := ResolveSlots("2024-06-10", configured, 2)

	require.Len(t, slots, 2)
	assert.Equal(t, "a", slots[0].ID, "ordered by start time")
	assert.Equal(t, "b", slots[1].ID)
	assert.False(t, slots[0].IsVirtual)
}

func TestResolveSlots_OrdersTwelveHourTimes(t *testing.T) {
	configured := []*TrainingSlot{
		{ID: "pm3", Date: "2024-06-10", Time: "03:00 PM", IsActive: true, Capacity: 2},
		{ID: "noon", Date: "2024-06-10", Time: "12:00 PM", IsActive: true, Capacity: 2},
		{ID: "am10", Date: "2024-06-10", Time: "10:00 AM", IsActive: true, Capacity: 2},
		{ID: "pm5", Date: "2024-06-10", Time: "05:00 PM", IsActive: true, Capacity: 2},
	}

	slots := ResolveSlots("2024-06-10", configured, 2)

	ids := make([]string, 0, len(slots))
	for _, slot := range slots {
		ids = append(ids, slot.ID)
	}
	assert.Equal(t, []string{"am10", "noon", "pm3", "pm5"}, ids)
}

func TestSortBookingsByStartTime(t *testing.T) {
	bookings := []*TrainingBooking{
		booking("2024-06-10", "3:00 pm", StatusToDo),
		booking("2024-06-10", "10:00", StatusToDo),
		booking("2024-06-09", "05:00 PM", StatusToDo),
		booking("2024-06-10", "12:00 PM", StatusToDo),
	}

	SortBookingsByStartTime(bookings)

	assert.Equal(t, "05:00 PM", bookings[0].StartTime)
	assert.Equal(t, "10:00", bookings[1].StartTime)
	assert.Equal(t, "12:00 PM", bookings[2].StartTime)
	assert.Equal(t, "3:00 pm", bookings[3].StartTime)
}

func TestResolveSlots_Deterministic(t *testing.T) {
	first := ResolveSlots("2024-06-10", nil, 2)
	second := ResolveSlots("2024-06-10", nil, 2)
	assert.Equal(t, first, second)
}

func TestMaterialize(t *testing.T) {
	slots := ResolveSlots("2024-06-10", nil, 2)

	persisted := Materialize(slots)

	require.Len(t, persisted, 4)
	for i := range persisted {
		assert.False(t, persisted[i].IsVirtual)
		assert.Equal(t, slots[i].ID, persisted[i].ID)
		assert.True(t, slots[i].IsVirtual, "source slots stay untouched")
	}
}

func TestCalculateAvailability_FullAndCancelFlipsBack(t *testing.T) {
	slot := &TrainingSlot{ID: "s", Date: "2024-06-10", Time: "10:00 AM", IsActive: true, Capacity: 2}
	bookings := []*TrainingBooking{
		booking("2024-06-10", "10:00", StatusPending),
		booking("2024-06-10", "10:00 am", StatusToDo),
	}

	av := CalculateAvailability(slot, "2024-06-10", bookings, 2)
	assert.True(t, av.IsFull)
	assert.Equal(t, 0, av.Count)

	bookings[1].Status = StatusCancelled
	av = CalculateAvailability(slot, "2024-06-10", bookings, 2)
	assert.False(t, av.IsFull)
	assert.Equal(t, 1, av.Count)
}

func TestCalculateAvailability_IgnoresCancelledAndOtherSlots(t *testing.T) {
	slot := &TrainingSlot{ID: "s", Date: "2024-06-10", Time: "03:00 PM", IsActive: true, Capacity: 1}
	bookings := []*TrainingBooking{
		booking("2024-06-10", "15:00", StatusCancelled),
		booking("2024-06-10", "03:00 PM", StatusCancelled),
		booking("2024-06-11", "15:00", StatusPending),
		booking("2024-06-10", "05:00 PM", StatusPending),
	}

	av := CalculateAvailability(slot, "2024-06-10", bookings, 2)

	assert.False(t, av.IsFull)
	assert.Equal(t, 1, av.Count)
	assert.Equal(t, 1, av.Capacity)
}

func TestCalculateAvailability_Deactivated(t *testing.T) {
	slot := &TrainingSlot{ID: "s", Date: "2024-06-10", Time: "10:00 AM", IsActive: false, Capacity: 5}

	av := CalculateAvailability(slot, "2024-06-10", nil, 2)

	assert.True(t, av.IsDeactivated)
	assert.True(t, av.IsFull)
	assert.Equal(t, 0, av.Count)
}

func TestCalculateAvailability_ZeroCapacityFallsBackToDefault(t *testing.T) {
	slot := &TrainingSlot{ID: "s", Date: "2024-06-10", Time: "10:00 AM", IsActive: true}

	av := CalculateAvailability(slot, "2024-06-10", []*TrainingBooking{booking("2024-06-10", "10:00", StatusPending)}, 3)

	assert.Equal(t, 3, av.Capacity)
	assert.Equal(t, 2, av.Count)
}

func TestCalculateAvailability_OverbookedClampsToZero(t *testing.T) {
	slot := &TrainingSlot{ID: "s", Date: "2024-06-10", Time: "10:00 AM", IsActive: true, Capacity: 1}
	bookings := []*TrainingBooking{
		booking("2024-06-10", "10:00", StatusPending),
		booking("2024-06-10", "10:00", StatusPending),
	}

	av := CalculateAvailability(slot, "2024-06-10", bookings, 2)

	assert.Equal(t, 0, av.Count)
	assert.True(t, av.IsFull)
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("To Do")
	require.NoError(t, err)
	assert.Equal(t, StatusToDo, status)

	_, err = ParseBookingStatus("todo")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
