package domain

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// BookingType тип бронирования
type BookingType string

const (
	BookingTypeService BookingType = "service"
	BookingTypeRoom    BookingType = "room"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending              BookingStatus = "pending"
	StatusAwaitingConfirmation BookingStatus = "awaiting_confirmation"
	StatusConfirmed            BookingStatus = "confirmed"
	StatusInProgress           BookingStatus = "in_progress"
	StatusCompleted            BookingStatus = "completed"
	StatusCancelled            BookingStatus = "cancelled"
	StatusBlocked              BookingStatus = "blocked"
)

// IsValid проверяет, что статус входит в известный набор
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAwaitingConfirmation, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusBlocked:
		return true
	}
	return false
}

// IsTerminal returns true for statuses no transition can leave
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// PaymentStatus статус оплаты
type PaymentStatus string

const (
	PaymentUnpaid              PaymentStatus = "unpaid"
	PaymentPendingVerification PaymentStatus = "pending_verification"
	PaymentInvoiced            PaymentStatus = "invoiced"
	PaymentPaid                PaymentStatus = "paid"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentUnpaid, PaymentPendingVerification, PaymentInvoiced, PaymentPaid:
		return true
	}
	return false
}

// ActorKind кто выполнил действие над бронированием
type ActorKind string

const (
	ActorAdmin    ActorKind = "admin"
	ActorEmployee ActorKind = "employee"
	ActorUser     ActorKind = "user"
)

// CustomerInfo данные клиента на момент бронирования
type CustomerInfo struct {
	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	UserID *string `json:"userId,omitempty"` // идентификатор пользователя чат-приложения
}

// PaymentInfo расчёт стоимости бронирования
// TotalPrice = max(0, OriginalPrice - Discount), Discount <= OriginalPrice
type PaymentInfo struct {
	OriginalPrice int64         `json:"originalPrice"`
	Discount      int64         `json:"discount"`
	TotalPrice    int64         `json:"totalPrice"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaymentMethod string        `json:"paymentMethod,omitempty"`
	PaymentDueAt  *time.Time    `json:"paymentDueAt,omitempty"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
}

// RoomBookingInfo параметры проживания (только для room)
type RoomBookingInfo struct {
	RoomTypeID   string           `json:"roomTypeId"`
	RoomID       string           `json:"roomId"`
	RoomNumber   string           `json:"roomNumber"`
	CheckInDate  types.DateString `json:"checkInDate"`
	CheckOutDate types.DateString `json:"checkOutDate"`
	Nights       int              `json:"nights"`
	Rooms        int              `json:"rooms"`
	Guests       int              `json:"guests"`
}

// Booking бронирование услуги или номера
type Booking struct {
	ID     string
	Type   BookingType
	Status BookingStatus

	// Только для service
	Date         types.DateString
	Time         types.TimeString
	TechnicianID *string

	// Только для room
	RoomInfo *RoomBookingInfo

	Customer CustomerInfo

	// Snapshot-данные каталога на момент создания, после создания не перечитываются
	ServiceInfo  *ServiceSnapshot
	RoomTypeInfo *RoomTypeSnapshot

	Payment  PaymentInfo
	CouponID *string
	Notes    *string

	ConfirmedAt        *time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
	CompletionNote     *string
	CancelledAt        *time.Time
	CancelledBy        *ActorKind
	CancellationReason *string

	PurchasePointsAwardedAt *time.Time
	VisitPointsAwardedAt    *time.Time

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive true, если бронирование занимает номер (для room-подсчёта)
func (b *Booking) IsActive() bool {
	for _, s := range ActiveRoomStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsPaid returns true if payment was confirmed
func (b *Booking) IsPaid() bool {
	return b.Payment.PaymentStatus == PaymentPaid
}

// IsOwnedBy проверяет, что бронирование создано указанным пользователем
func (b *Booking) IsOwnedBy(userID string) bool {
	return userID != "" && b.Customer.UserID != nil && *b.Customer.UserID == userID
}

// NewPaymentInfo считает итоговую стоимость из подытога и скидки
// Скидка ограничивается диапазоном [0, originalPrice]
func NewPaymentInfo(originalPrice, discount int64) PaymentInfo {
	if originalPrice < 0 {
		originalPrice = 0
	}
	if discount < 0 {
		discount = 0
	}
	if discount > originalPrice {
		discount = originalPrice
	}
	return PaymentInfo{
		OriginalPrice: originalPrice,
		Discount:      discount,
		TotalPrice:    originalPrice - discount,
		PaymentStatus: PaymentUnpaid,
	}
}

// BookingEvent событие жизненного цикла бронирования для внешних потребителей
type BookingEvent struct {
	Type       string        `json:"type"`
	BookingID  string        `json:"bookingId"`
	Kind       BookingType   `json:"bookingType"`
	Status     BookingStatus `json:"status"`
	PrevStatus BookingStatus `json:"prevStatus,omitempty"`
	Actor      ActorKind     `json:"actor,omitempty"`
	TotalPrice int64         `json:"totalPrice"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// InitialStatus статус нового бронирования
// Явно указанный статус принимается только от администратора, awaiting_confirmation
// не считается переопределением. Клиентские бронирования всегда начинаются с pending.
func InitialStatus(p *Principal, requested BookingStatus) BookingStatus {
	if !p.IsAdmin() || requested == "" || requested == StatusAwaitingConfirmation {
		return StatusPending
	}
	return requested
}

// EndOfBusinessDay 23:59:59 текущего дня в часовом поясе бизнеса
func EndOfBusinessDay(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 0, loc)
}
