package domain

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-TrainingDesk/pkg/types"
)

// TrainingSlot время на конкретную дату, на которое можно записаться.
// Виртуальные слоты (IsVirtual) строятся из настроек по умолчанию и не хранятся в БД.
type TrainingSlot struct {
	ID        string
	Date      string // YYYY-MM-DD
	Time      string // "10:00 AM"
	IsActive  bool
	Capacity  int
	IsVirtual bool
}

// Availability состояние слота на момент чтения
type Availability struct {
	Count         int // оставшиеся места
	Capacity      int
	IsFull        bool
	IsDeactivated bool
}

// VirtualSlotID идентификатор виртуального слота, стабильный для даты
func VirtualSlotID(date string, index int) string {
	return fmt.Sprintf("virtual-%s-%d", date, index)
}

// ResolveSlots возвращает слоты даты: настроенные явно, а если их нет -
// виртуальные из DefaultSlotTimes. Явные слоты не смешиваются с дефолтными
// и идут по времени начала.
func ResolveSlots(date string, configured []*TrainingSlot, defaultCapacity int) []*TrainingSlot {
	result := make([]*TrainingSlot, 0, len(DefaultSlotTimes))

	for _, slot := range configured {
		if slot != nil && slot.Date == date {
			result = append(result, slot)
		}
	}
	if len(result) > 0 {
		sort.SliceStable(result, func(i, j int) bool {
			return types.NormalizeTime(result[i].Time) < types.NormalizeTime(result[j].Time)
		})
		return result
	}

	for i, t := range DefaultSlotTimes {
		result = append(result, &TrainingSlot{
			ID:        VirtualSlotID(date, i),
			Date:      date,
			Time:      t,
			IsActive:  true,
			Capacity:  defaultCapacity,
			IsVirtual: true,
		})
	}

	return result
}

// Materialize копии виртуальных слотов, готовые к сохранению
func Materialize(slots []*TrainingSlot) []*TrainingSlot {
	result := make([]*TrainingSlot, 0, len(slots))
	for _, slot := range slots {
		if !slot.IsVirtual {
			continue
		}
		persisted := *slot
		persisted.IsVirtual = false
		result = append(result, &persisted)
	}
	return result
}

// FindSlot ищет слот по ID
func FindSlot(slots []*TrainingSlot, id string) (*TrainingSlot, bool) {
	for _, slot := range slots {
		if slot.ID == id {
			return slot, true
		}
	}
	return nil, false
}

// SortBookingsByStartTime упорядочивает бронирования по дате и времени начала.
// Время сравнивается в нормализованном виде, "03:00 PM" идёт после "10:00".
func SortBookingsByStartTime(bookings []*TrainingBooking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		return types.NormalizeTime(bookings[i].StartTime) < types.NormalizeTime(bookings[j].StartTime)
	})
}
