package force_status

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
)

// ForceStatusRequest HTTP request model
type ForceStatusRequest struct {
	Status string `json:"status"`
}

func (r *ForceStatusRequest) ToServiceRequest() *models.ForceStatusRequest {
	return &models.ForceStatusRequest{Status: r.Status}
}
