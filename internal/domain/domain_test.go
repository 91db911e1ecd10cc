package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
)

func TestNewPaymentInfo(t *testing.T) {
	tests := []struct {
		name     string
		original int64
		discount int64
		want     PaymentInfo
	}{
		{name: "percentage coupon", original: 600, discount: 60, want: PaymentInfo{OriginalPrice: 600, Discount: 60, TotalPrice: 540}},
		{name: "no discount", original: 500, discount: 0, want: PaymentInfo{OriginalPrice: 500, TotalPrice: 500}},
		{name: "discount above subtotal clamped", original: 300, discount: 500, want: PaymentInfo{OriginalPrice: 300, Discount: 300}},
		{name: "negative discount ignored", original: 300, discount: -20, want: PaymentInfo{OriginalPrice: 300, TotalPrice: 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPaymentInfo(tt.original, tt.discount)
			assert.Equal(t, tt.want.OriginalPrice, got.OriginalPrice)
			assert.Equal(t, tt.want.Discount, got.Discount)
			assert.Equal(t, tt.want.TotalPrice, got.TotalPrice)
			assert.LessOrEqual(t, got.Discount, got.OriginalPrice)
			assert.Equal(t, PaymentUnpaid, got.PaymentStatus)
		})
	}
}

func TestTransition_CanApply(t *testing.T) {
	tests := []struct {
		transition Transition
		from       BookingStatus
		want       bool
	}{
		{TransitionConfirm, StatusPending, true},
		{TransitionConfirm, StatusAwaitingConfirmation, true},
		{TransitionConfirm, StatusConfirmed, false},
		{TransitionStart, StatusPending, true},
		{TransitionStart, StatusConfirmed, true},
		{TransitionStart, StatusInProgress, false},
		{TransitionComplete, StatusConfirmed, true},
		{TransitionComplete, StatusInProgress, true},
		{TransitionComplete, StatusPending, false},
		{TransitionCancel, StatusBlocked, true},
		{TransitionCancel, StatusInProgress, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.transition)+"_from_"+string(tt.from), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transition.CanApply(tt.from))
		})
	}
}

func TestTransition_TerminalStatusesAreFinal(t *testing.T) {
	for _, terminal := range []BookingStatus{StatusCompleted, StatusCancelled} {
		for _, tr := range []Transition{TransitionConfirm, TransitionStart, TransitionComplete, TransitionCancel} {
			assert.False(t, tr.CanApply(terminal), "%s must not leave %s", tr, terminal)
		}
	}
}

func TestBookingSettings_CapacityFor(t *testing.T) {
	s := &BookingSettings{
		MaxBookingsPerSlot: 3,
		TimeOverrides:      []SlotOverride{{Time: "18:00", Count: 5}},
	}

	assert.Equal(t, 3, s.CapacityFor("10:00"))
	assert.Equal(t, 5, s.CapacityFor("18:00"))
	assert.Equal(t, DefaultMaxBookingsPerSlot, (&BookingSettings{}).CapacityFor("10:00"))
}

func TestBookingSettings_CapacityFor_NormalizesTime(t *testing.T) {
	s := &BookingSettings{
		MaxBookingsPerSlot: 2,
		TimeOverrides:      []SlotOverride{{Time: "9:00", Count: 4}, {Time: " 14:30 ", Count: 6}},
	}

	assert.Equal(t, 4, s.CapacityFor("09:00"))
	assert.Equal(t, 4, s.CapacityFor("9:00"))
	assert.Equal(t, 6, s.CapacityFor("14:30"))
	assert.Equal(t, 2, s.CapacityFor("10:00"))
}

func TestBooking_PaymentAndCancellationFlags(t *testing.T) {
	b := &Booking{Status: StatusCancelled, Payment: PaymentInfo{PaymentStatus: PaymentPaid}}
	assert.True(t, b.IsCancelled())
	assert.True(t, b.IsPaid())

	b = &Booking{Status: StatusPending, Payment: PaymentInfo{PaymentStatus: PaymentInvoiced}}
	assert.False(t, b.IsCancelled())
	assert.False(t, b.IsPaid())
}

func TestNotificationSettings_IsEnabled(t *testing.T) {
	var empty *NotificationSettings
	assert.True(t, empty.IsEnabled(NotifyCustomerConfirmed))

	s := &NotificationSettings{Toggles: map[NotificationType]bool{NotifyReviewRequest: false}}
	assert.False(t, s.IsEnabled(NotifyReviewRequest))
	assert.True(t, s.IsEnabled(NotifyCustomerCompleted))
}

func TestPointSettings_PurchasePoints(t *testing.T) {
	s := DefaultPointSettings()
	assert.Equal(t, int64(5), s.PurchasePoints(540))
	assert.Equal(t, int64(0), s.PurchasePoints(99))

	s.Enabled = false
	assert.Equal(t, int64(0), s.PurchasePoints(1000))
}

func TestBooking_IsOwnedBy(t *testing.T) {
	b := &Booking{Customer: CustomerInfo{UserID: ptr.Ptr("U123")}}
	assert.True(t, b.IsOwnedBy("U123"))
	assert.False(t, b.IsOwnedBy("U999"))
	assert.False(t, b.IsOwnedBy(""))
	assert.False(t, (&Booking{}).IsOwnedBy("U123"))
}

func TestInitialStatus(t *testing.T) {
	admin := &Principal{Kind: PrincipalAdmin}
	user := &Principal{Kind: PrincipalUser, UserID: "U1"}

	assert.Equal(t, StatusConfirmed, InitialStatus(admin, StatusConfirmed))
	assert.Equal(t, StatusBlocked, InitialStatus(admin, StatusBlocked))
	assert.Equal(t, StatusPending, InitialStatus(admin, ""))
	assert.Equal(t, StatusPending, InitialStatus(admin, StatusAwaitingConfirmation))
	assert.Equal(t, StatusPending, InitialStatus(user, StatusConfirmed))
	assert.Equal(t, StatusPending, InitialStatus(nil, StatusConfirmed))
}

func TestEndOfBusinessDay(t *testing.T) {
	bangkok := time.FixedZone("ICT", 7*60*60)

	// 20:00 UTC 1 мая - уже 2 мая в Бангкоке
	now := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	due := EndOfBusinessDay(now, bangkok)

	assert.Equal(t, time.Date(2024, 5, 2, 23, 59, 59, 0, bangkok), due)
	assert.True(t, due.After(now))
}
