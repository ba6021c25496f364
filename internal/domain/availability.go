package domain

import "github.com/m04kA/SMC-TrainingDesk/pkg/types"

// CalculateAvailability считает свободные места слота на дату.
// Подсчёт без блокировок: два одновременных запроса на последнее место могут пройти оба.
func CalculateAvailability(slot *TrainingSlot, date string, bookings []*TrainingBooking, defaultCapacity int) Availability {
	if !slot.IsActive {
		return Availability{
			Count:         0,
			Capacity:      slot.Capacity,
			IsFull:        true,
			IsDeactivated: true,
		}
	}

	capacity := slot.Capacity
	if capacity <= 0 {
		capacity = defaultCapacity
	}

	slotTime := types.NormalizeTime(slot.Time)
	matches := 0
	for _, booking := range bookings {
		if booking.Date != date || booking.IsCancelled() {
			continue
		}
		if types.NormalizeTime(booking.StartTime) == slotTime {
			matches++
		}
	}

	remaining := capacity - matches
	if remaining < 0 {
		remaining = 0
	}

	return Availability{
		Count:    remaining,
		Capacity: capacity,
		IsFull:   remaining <= 0,
	}
}
