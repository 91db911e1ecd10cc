package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrValidation)

	// ErrUnauthorized возвращается, если личность вызывающего не определена
	ErrUnauthorized = fmt.Errorf("%w: create_booking: identity required", domain.ErrUnauthorized)

	// ErrServiceInactive возвращается, когда услуга снята с продажи
	ErrServiceInactive = fmt.Errorf("%w: create_booking: service is not available", domain.ErrNotFound)
)
