package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-TrainingDesk/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	ID            string `json:"id"`
	Time          string `json:"time"` // "03:00 PM"
	Capacity      int    `json:"capacity"`
	Remaining     int    `json:"remaining"`
	IsFull        bool   `json:"isFull"`
	IsDeactivated bool   `json:"isDeactivated"`
	IsPast        bool   `json:"isPast"`
	Bookable      bool   `json:"bookable"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date         string         `json:"date"`
	UsesDefaults bool           `json:"usesDefaults"`
	Slots        []SlotResponse `json:"slots"`
}

// ToUseCaseRequest формирует запрос к use case
func ToUseCaseRequest(date string) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{Date: date}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			ID:            s.ID,
			Time:          s.Time,
			Capacity:      s.Capacity,
			Remaining:     s.Remaining,
			IsFull:        s.IsFull,
			IsDeactivated: s.IsDeactivated,
			IsPast:        s.IsPast,
			Bookable:      s.Bookable(),
		})
	}

	return &AvailableSlotsResponse{
		Date:         resp.Date,
		UsesDefaults: resp.UsesDefaults,
		Slots:        slots,
	}
}
