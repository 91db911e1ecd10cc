package update_status

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Action string  `json:"action"` // confirm | start | complete
	Note   *string `json:"note,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest() *models.TransitionRequest {
	return &models.TransitionRequest{
		Action: r.Action,
		Note:   r.Note,
	}
}
