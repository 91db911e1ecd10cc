package bookings

import (
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на действие
	ErrAccessDenied = fmt.Errorf("%w: access denied", domain.ErrUnauthorized)

	// ErrInvalidAction возвращается при неизвестном действии над статусом
	ErrInvalidAction = fmt.Errorf("%w: unknown status action", domain.ErrValidation)

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = fmt.Errorf("%w: invalid booking status", domain.ErrValidation)

	// ErrInvalidPaymentStatus возвращается при недопустимом статусе оплаты
	ErrInvalidPaymentStatus = fmt.Errorf("%w: invalid payment status", domain.ErrValidation)

	// ErrNoteTooLong возвращается, если комментарий превышает допустимую длину
	ErrNoteTooLong = fmt.Errorf("%w: note is too long", domain.ErrValidation)

	// ErrBookingModified возвращается, если бронирование изменили параллельно
	ErrBookingModified = fmt.Errorf("%w: reload and retry", domain.ErrConflict)
)
