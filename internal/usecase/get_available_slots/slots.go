package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	"github.com/m04kA/SMC-TrainingDesk/pkg/types"
)

// buildSlots считает места для каждого слота и отмечает уже прошедшие сегодня
func buildSlots(
	resolved []*domain.TrainingSlot,
	date string,
	day time.Time,
	now time.Time,
	bookings []*domain.TrainingBooking,
	defaultCapacity int,
) []Slot {
	today := isSameDay(day, now)
	current := types.NewTimeString(now)

	result := make([]Slot, 0, len(resolved))
	for _, slot := range resolved {
		av := domain.CalculateAvailability(slot, date, bookings, defaultCapacity)

		display := slot.Time
		past := false
		if ts, err := types.NewTimeStringFromString(slot.Time); err == nil {
			display = ts.Display()
			past = today && ts.IsBefore(current)
		}

		result = append(result, Slot{
			ID:            slot.ID,
			Time:          display,
			Capacity:      av.Capacity,
			Remaining:     av.Count,
			IsFull:        av.IsFull,
			IsDeactivated: av.IsDeactivated,
			IsPast:        past,
		})
	}

	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
