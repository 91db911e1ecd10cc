package create_room_booking

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Request модель запроса на бронирование номера
type Request struct {
	Principal    *domain.Principal
	RoomTypeID   string
	CheckInDate  types.DateString
	CheckOutDate types.DateString // не включается в период
	Rooms        int              // 0 трактуется как 1
	Guests       int

	CustomerName   string
	CustomerPhone  string
	CustomerUserID *string // только для администратора

	// Суммы с экрана бронирования, учитываются только значения > 0
	Totals pricing.CallerTotals

	CouponID     *string
	Status       *string
	PaymentDueAt *time.Time
	Notes        *string
}
