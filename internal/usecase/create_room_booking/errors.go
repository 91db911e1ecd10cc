package create_room_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_room_booking: invalid input data", domain.ErrValidation)

	// ErrUnauthorized возвращается, если личность вызывающего не определена
	ErrUnauthorized = fmt.Errorf("%w: create_room_booking: identity required", domain.ErrUnauthorized)

	// ErrRoomTypeInactive возвращается, когда тип номера снят с продажи
	ErrRoomTypeInactive = fmt.Errorf("%w: create_room_booking: room type is not available", domain.ErrNotFound)

	// ErrTooManyGuests гостей больше, чем вмещают номера
	ErrTooManyGuests = fmt.Errorf("%w: create_room_booking: too many guests", domain.ErrValidation)
)
