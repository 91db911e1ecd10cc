package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_available_slots: invalid input data", domain.ErrValidation)
)
