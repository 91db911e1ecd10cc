package booking

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// bookingColumns порядок колонок для select и scanBooking
var bookingColumns = []string{
	"id",
	"booking_type",
	"status",
	"date",
	"time",
	"technician_id",
	"room_type_id",
	"room_id",
	"room_number",
	"check_in_date",
	"check_out_date",
	"nights",
	"rooms",
	"guests",
	"customer_name",
	"customer_phone",
	"customer_user_id",
	"service_info",
	"room_type_info",
	"original_price",
	"discount",
	"total_price",
	"payment_status",
	"payment_method",
	"payment_due_at",
	"paid_at",
	"coupon_id",
	"notes",
	"confirmed_at",
	"started_at",
	"completed_at",
	"completion_note",
	"cancelled_at",
	"cancelled_by",
	"cancellation_reason",
	"points_purchase_awarded_at",
	"points_visit_awarded_at",
	"version",
	"created_at",
	"updated_at",
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку в domain.Booking
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b             domain.Booking
		date, tm      sql.NullString
		technicianID  sql.NullString
		roomTypeID    sql.NullString
		roomID        sql.NullString
		roomNumber    sql.NullString
		checkIn       sql.NullString
		checkOut      sql.NullString
		nights        sql.NullInt64
		rooms         sql.NullInt64
		guests        sql.NullInt64
		customerUser  sql.NullString
		serviceInfo   []byte
		roomTypeInfo  []byte
		paymentMethod sql.NullString
		paymentDueAt  sql.NullTime
		paidAt        sql.NullTime
		couponID      sql.NullString
		notes         sql.NullString
		confirmedAt   sql.NullTime
		startedAt     sql.NullTime
		completedAt   sql.NullTime
		completion    sql.NullString
		cancelledAt   sql.NullTime
		cancelledBy   sql.NullString
		cancelReason  sql.NullString
		purchaseAt    sql.NullTime
		visitAt       sql.NullTime
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.Type,
		&b.Status,
		&date,
		&tm,
		&technicianID,
		&roomTypeID,
		&roomID,
		&roomNumber,
		&checkIn,
		&checkOut,
		&nights,
		&rooms,
		&guests,
		&b.Customer.Name,
		&b.Customer.Phone,
		&customerUser,
		&serviceInfo,
		&roomTypeInfo,
		&b.Payment.OriginalPrice,
		&b.Payment.Discount,
		&b.Payment.TotalPrice,
		&b.Payment.PaymentStatus,
		&paymentMethod,
		&paymentDueAt,
		&paidAt,
		&couponID,
		&notes,
		&confirmedAt,
		&startedAt,
		&completedAt,
		&completion,
		&cancelledAt,
		&cancelledBy,
		&cancelReason,
		&purchaseAt,
		&visitAt,
		&b.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Date = types.DateString(date.String)
	b.Time = types.TimeString(tm.String)
	b.TechnicianID = nullStringPtr(technicianID)
	b.Customer.UserID = nullStringPtr(customerUser)
	b.Payment.PaymentMethod = paymentMethod.String
	b.Payment.PaymentDueAt = nullTimePtr(paymentDueAt)
	b.Payment.PaidAt = nullTimePtr(paidAt)
	b.CouponID = nullStringPtr(couponID)
	b.Notes = nullStringPtr(notes)
	b.ConfirmedAt = nullTimePtr(confirmedAt)
	b.StartedAt = nullTimePtr(startedAt)
	b.CompletedAt = nullTimePtr(completedAt)
	b.CompletionNote = nullStringPtr(completion)
	b.CancelledAt = nullTimePtr(cancelledAt)
	b.CancellationReason = nullStringPtr(cancelReason)
	b.PurchasePointsAwardedAt = nullTimePtr(purchaseAt)
	b.VisitPointsAwardedAt = nullTimePtr(visitAt)
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	if cancelledBy.Valid {
		actor := domain.ActorKind(cancelledBy.String)
		b.CancelledBy = &actor
	}

	if roomTypeID.Valid {
		b.RoomInfo = &domain.RoomBookingInfo{
			RoomTypeID:   roomTypeID.String,
			RoomID:       roomID.String,
			RoomNumber:   roomNumber.String,
			CheckInDate:  types.DateString(checkIn.String),
			CheckOutDate: types.DateString(checkOut.String),
			Nights:       int(nights.Int64),
			Rooms:        int(rooms.Int64),
			Guests:       int(guests.Int64),
		}
	}

	if len(serviceInfo) > 0 {
		var snap domain.ServiceSnapshot
		if err := json.Unmarshal(serviceInfo, &snap); err != nil {
			return nil, fmt.Errorf("unmarshal service_info: %w", err)
		}
		b.ServiceInfo = &snap
	}
	if len(roomTypeInfo) > 0 {
		var snap domain.RoomTypeSnapshot
		if err := json.Unmarshal(roomTypeInfo, &snap); err != nil {
			return nil, fmt.Errorf("unmarshal room_type_info: %w", err)
		}
		b.RoomTypeInfo = &snap
	}

	return &b, nil
}

// marshalSnapshot сериализует snapshot в JSONB, nil -> NULL
func marshalSnapshot(v interface{}, isNil bool) (interface{}, error) {
	if isNil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	// lib/pq передаёт []byte как bytea, поэтому для JSONB отдаём строку
	return string(data), nil
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// optString пустая строка -> NULL
func optString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func actorValue(a *domain.ActorKind) interface{} {
	if a == nil {
		return nil
	}
	return string(*a)
}
