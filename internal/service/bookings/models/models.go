package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPaymentStatus возвращается при некорректном статусе оплаты
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Request модели

// TransitionRequest запрос на действие над статусом (confirm, start, complete)
type TransitionRequest struct {
	Action string  `json:"action"`
	Note   *string `json:"note,omitempty"` // комментарий к завершению
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// UpdatePaymentRequest запрос на изменение статуса оплаты
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

// ForceStatusRequest принудительная установка статуса администратором
type ForceStatusRequest struct {
	Status string `json:"status"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	Status *string `json:"status,omitempty"`
}

// Response модели

// RoomInfoResponse параметры проживания
type RoomInfoResponse struct {
	RoomTypeID   string `json:"roomTypeId"`
	RoomID       string `json:"roomId"`
	RoomNumber   string `json:"roomNumber"`
	CheckInDate  string `json:"checkInDate"`  // "2024-05-01"
	CheckOutDate string `json:"checkOutDate"` // выезд не включается в период
	Nights       int    `json:"nights"`
	Rooms        int    `json:"rooms"`
	Guests       int    `json:"guests,omitempty"`
}

// PaymentResponse расчёт и статус оплаты
type PaymentResponse struct {
	OriginalPrice int64   `json:"originalPrice"`
	Discount      int64   `json:"discount"`
	TotalPrice    int64   `json:"totalPrice"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	PaymentDueAt  *string `json:"paymentDueAt,omitempty"` // ISO 8601 format
	PaidAt        *string `json:"paidAt,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           string  `json:"id"`
	BookingType  string  `json:"bookingType"`
	Status       string  `json:"status"`
	Date         string  `json:"date,omitempty"` // "2024-05-01"
	Time         string  `json:"time,omitempty"` // "10:00"
	TechnicianID *string `json:"technicianId,omitempty"`

	RoomInfo *RoomInfoResponse `json:"bookingInfo,omitempty"`

	CustomerInfo domain.CustomerInfo `json:"customerInfo"`

	// Snapshot-данные каталога
	ServiceInfo  *domain.ServiceSnapshot  `json:"serviceInfo,omitempty"`
	RoomTypeInfo *domain.RoomTypeSnapshot `json:"roomTypeInfo,omitempty"`

	PaymentInfo PaymentResponse `json:"paymentInfo"`
	CouponID    *string         `json:"couponId,omitempty"`
	Notes       *string         `json:"notes,omitempty"`

	ConfirmedAt        *string `json:"confirmedAt,omitempty"`
	StartedAt          *string `json:"startedAt,omitempty"`
	CompletedAt        *string `json:"completedAt,omitempty"`
	CompletionNote     *string `json:"completionNote,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           b.ID,
		BookingType:  string(b.Type),
		Status:       string(b.Status),
		Date:         b.Date.String(),
		Time:         b.Time.String(),
		TechnicianID: b.TechnicianID,
		CustomerInfo: b.Customer,
		ServiceInfo:  b.ServiceInfo,
		RoomTypeInfo: b.RoomTypeInfo,
		PaymentInfo: PaymentResponse{
			OriginalPrice: b.Payment.OriginalPrice,
			Discount:      b.Payment.Discount,
			TotalPrice:    b.Payment.TotalPrice,
			PaymentStatus: string(b.Payment.PaymentStatus),
			PaymentMethod: b.Payment.PaymentMethod,
			PaymentDueAt:  formatTime(b.Payment.PaymentDueAt),
			PaidAt:        formatTime(b.Payment.PaidAt),
		},
		CouponID:           b.CouponID,
		Notes:              b.Notes,
		ConfirmedAt:        formatTime(b.ConfirmedAt),
		StartedAt:          formatTime(b.StartedAt),
		CompletedAt:        formatTime(b.CompletedAt),
		CompletionNote:     b.CompletionNote,
		CancelledAt:        formatTime(b.CancelledAt),
		CancellationReason: b.CancellationReason,
		Version:            b.Version,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.RoomInfo != nil {
		resp.RoomInfo = &RoomInfoResponse{
			RoomTypeID:   b.RoomInfo.RoomTypeID,
			RoomID:       b.RoomInfo.RoomID,
			RoomNumber:   b.RoomInfo.RoomNumber,
			CheckInDate:  b.RoomInfo.CheckInDate.String(),
			CheckOutDate: b.RoomInfo.CheckOutDate.String(),
			Nights:       b.RoomInfo.Nights,
			Rooms:        b.RoomInfo.Rooms,
			Guests:       b.RoomInfo.Guests,
		}
	}

	if b.CancelledBy != nil {
		actor := string(*b.CancelledBy)
		resp.CancelledBy = &actor
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus с валидацией
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	s := domain.PaymentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidPaymentStatus
	}
	return s, nil
}

// formatTime конвертирует время в строку ISO 8601
func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
