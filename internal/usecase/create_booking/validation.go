package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.Date.Validate(); err != nil {
		return fmt.Errorf("%w: invalid date format: %v", ErrInvalidInput, err)
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.Status != nil && !domain.BookingStatus(*req.Status).IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}

	return nil
}
