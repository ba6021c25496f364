package models

import "github.com/m04kA/SMC-TrainingDesk/internal/domain"

// SlotInput слот из формы администратора
type SlotInput struct {
	Time     string `json:"time"`
	Capacity int    `json:"capacity"`
	IsActive *bool  `json:"isActive,omitempty"` // по умолчанию true
}

// CreateSlotRequest запрос на создание слота
type CreateSlotRequest struct {
	Role string `json:"-"`
	Date string `json:"date"`
	SlotInput
}

// UpdateSlotRequest частичное изменение слота
type UpdateSlotRequest struct {
	Role     string  `json:"-"`
	Time     *string `json:"time,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ReplaceSlotsRequest полная замена слотов даты. Пустой список возвращает дату к слотам по умолчанию.
type ReplaceSlotsRequest struct {
	Role  string      `json:"-"`
	Slots []SlotInput `json:"slots"`
}

// SlotResponse слот с занятостью
type SlotResponse struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	IsActive      bool   `json:"isActive"`
	Capacity      int    `json:"capacity"`
	IsVirtual     bool   `json:"isVirtual"`
	Remaining     int    `json:"remaining"`
	IsFull        bool   `json:"isFull"`
	IsDeactivated bool   `json:"isDeactivated"`
}

// DaySlotsResponse слоты даты
type DaySlotsResponse struct {
	Date         string          `json:"date"`
	UsesDefaults bool            `json:"usesDefaults"`
	Slots        []*SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует слот и его занятость в ответ
func FromDomainSlot(slot *domain.TrainingSlot, av domain.Availability) *SlotResponse {
	return &SlotResponse{
		ID:            slot.ID,
		Date:          slot.Date,
		Time:          slot.Time,
		IsActive:      slot.IsActive,
		Capacity:      slot.Capacity,
		IsVirtual:     slot.IsVirtual,
		Remaining:     av.Count,
		IsFull:        av.IsFull,
		IsDeactivated: av.IsDeactivated,
	}
}
