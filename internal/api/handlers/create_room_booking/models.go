package create_room_booking

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/pricing"
	createRoomBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_room_booking"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// CreateRoomBookingRequest HTTP request model
type CreateRoomBookingRequest struct {
	RoomTypeID     string     `json:"roomTypeId"`
	CheckInDate    string     `json:"checkInDate"`  // "2024-05-01"
	CheckOutDate   string     `json:"checkOutDate"` // "2024-05-03"
	Rooms          int        `json:"rooms"`
	Guests         int        `json:"guests"`
	CustomerName   string     `json:"customerName"`
	CustomerPhone  string     `json:"customerPhone"`
	CustomerUserID *string    `json:"customerUserId,omitempty"`
	OriginalPrice  int64      `json:"originalPrice,omitempty"`
	Discount       int64      `json:"discount,omitempty"`
	TotalPrice     int64      `json:"totalPrice,omitempty"`
	CouponID       *string    `json:"couponId,omitempty"`
	Status         *string    `json:"status,omitempty"`
	PaymentDueAt   *time.Time `json:"paymentDueAt,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRoomBookingRequest) ToUseCaseRequest(principal *domain.Principal) *createRoomBooking.Request {
	return &createRoomBooking.Request{
		Principal:      principal,
		RoomTypeID:     r.RoomTypeID,
		CheckInDate:    types.DateString(r.CheckInDate),
		CheckOutDate:   types.DateString(r.CheckOutDate),
		Rooms:          r.Rooms,
		Guests:         r.Guests,
		CustomerName:   r.CustomerName,
		CustomerPhone:  r.CustomerPhone,
		CustomerUserID: r.CustomerUserID,
		Totals: pricing.CallerTotals{
			OriginalPrice: r.OriginalPrice,
			Discount:      r.Discount,
			TotalPrice:    r.TotalPrice,
		},
		CouponID:     r.CouponID,
		Status:       r.Status,
		PaymentDueAt: r.PaymentDueAt,
		Notes:        r.Notes,
	}
}
