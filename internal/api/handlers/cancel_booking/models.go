package cancel_booking

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest() *models.CancelBookingRequest {
	reason := ""
	if r.Reason != nil {
		reason = *r.Reason
	}

	return &models.CancelBookingRequest{Reason: reason}
}
