package create_public_booking

import (
	createPublicBooking "github.com/m04kA/SMC-TrainingDesk/internal/usecase/create_public_booking"
)

// CreatePublicBookingRequest HTTP request model
type CreatePublicBookingRequest struct {
	Date        string `json:"date"` // "2024-06-10"
	SlotID      string `json:"slotId"`
	CompanyName string `json:"companyName"`
	PhoneNumber string `json:"phoneNumber"`
	ContactName string `json:"contactName,omitempty"`
	Title       string `json:"title,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// PublicBookingResponse HTTP response model
type PublicBookingResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Status    string `json:"status"`
	State     string `json:"state"`
	Degraded  bool   `json:"degraded"`
	// Клиент должен перечитать слоты: число свободных мест изменилось
	RefreshSlots bool `json:"refreshSlots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreatePublicBookingRequest) ToUseCaseRequest() *createPublicBooking.Request {
	return &createPublicBooking.Request{
		Date:        r.Date,
		SlotID:      r.SlotID,
		CompanyName: r.CompanyName,
		PhoneNumber: r.PhoneNumber,
		ContactName: r.ContactName,
		Title:       r.Title,
		Notes:       r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createPublicBooking.Response) *PublicBookingResponse {
	return &PublicBookingResponse{
		ID:           resp.ID,
		Date:         resp.Date,
		StartTime:    resp.StartTime,
		Status:       resp.Status,
		State:        string(resp.State),
		Degraded:     resp.Degraded,
		RefreshSlots: true,
	}
}
