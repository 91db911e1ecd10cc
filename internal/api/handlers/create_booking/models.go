package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/pricing"
	createBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
// Цены и длительность клиент не передает: они считаются по каталогу
type CreateBookingRequest struct {
	ServiceID      string                   `json:"serviceId"`
	Date           string                   `json:"date"` // "2024-05-01"
	Time           string                   `json:"time"` // "10:00"
	TechnicianID   *string                  `json:"technicianId,omitempty"`
	CustomerName   string                   `json:"customerName"`
	CustomerPhone  string                   `json:"customerPhone"`
	CustomerUserID *string                  `json:"customerUserId,omitempty"`
	AreaIndex      *int                     `json:"areaIndex,omitempty"`
	PackageIndex   *int                     `json:"packageIndex,omitempty"`
	Options        []domain.OptionSelection `json:"selectedOptions,omitempty"`
	AddOns         []string                 `json:"addOns,omitempty"`
	CouponID       *string                  `json:"couponId,omitempty"`
	Status         *string                  `json:"status,omitempty"`
	PaymentDueAt   *time.Time               `json:"paymentDueAt,omitempty"`
	Notes          *string                  `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(principal *domain.Principal) *createBooking.Request {
	return &createBooking.Request{
		Principal:      principal,
		ServiceID:      r.ServiceID,
		Date:           types.DateString(r.Date),
		Time:           types.TimeString(r.Time),
		TechnicianID:   r.TechnicianID,
		CustomerName:   r.CustomerName,
		CustomerPhone:  r.CustomerPhone,
		CustomerUserID: r.CustomerUserID,
		Selection: pricing.ServiceSelection{
			AreaIndex:    r.AreaIndex,
			PackageIndex: r.PackageIndex,
			Options:      r.Options,
			AddOns:       r.AddOns,
		},
		CouponID:     r.CouponID,
		Status:       r.Status,
		PaymentDueAt: r.PaymentDueAt,
		Notes:        r.Notes,
	}
}
