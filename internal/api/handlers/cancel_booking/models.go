package cancel_booking

import (
	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model, тело необязательно
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ToServiceRequest отмена это быстрая правка статуса
func (r *CancelBookingRequest) ToServiceRequest(actor string) *models.QuickEditRequest {
	status := string(domain.StatusCancelled)
	return &models.QuickEditRequest{
		Actor:   actor,
		Status:  &status,
		Comment: r.Reason,
	}
}
