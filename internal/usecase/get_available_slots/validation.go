package get_available_slots

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.Date.Validate(); err != nil {
		return fmt.Errorf("%w: invalid date format: %v", ErrInvalidInput, err)
	}
	return nil
}
