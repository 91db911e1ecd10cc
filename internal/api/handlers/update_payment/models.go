package update_payment

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
)

// UpdatePaymentRequest HTTP request model
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus"` // unpaid | pending | paid | refunded
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

func (r *UpdatePaymentRequest) ToServiceRequest() *models.UpdatePaymentRequest {
	return &models.UpdatePaymentRequest{
		PaymentStatus: r.PaymentStatus,
		PaymentMethod: r.PaymentMethod,
	}
}
