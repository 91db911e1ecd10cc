package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
)

/* ==================== MOCKS ==================== */

type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) Push(ctx context.Context, userID, text string) error {
	args := m.Called(ctx, userID, text)
	return args.Error(0)
}

func (m *MockMessenger) Multicast(ctx context.Context, userIDs []string, text string) error {
	args := m.Called(ctx, userIDs, text)
	return args.Error(0)
}

type MockFallback struct {
	mock.Mock
}

func (m *MockFallback) SendAdminMessage(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

type MockSettings struct {
	mock.Mock
}

func (m *MockSettings) NotificationSettings(ctx context.Context) (*domain.NotificationSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationSettings), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func allEnabled() *MockSettings {
	s := new(MockSettings)
	s.On("NotificationSettings", mock.Anything).Return(&domain.NotificationSettings{}, nil)
	return s
}

func serviceBooking() *domain.Booking {
	return &domain.Booking{
		ID:          "B1",
		Type:        domain.BookingTypeService,
		Date:        "2024-05-01",
		Time:        "10:00",
		Customer:    domain.CustomerInfo{Name: "Anna", Phone: "+66800000000", UserID: ptr.Ptr("U1")},
		ServiceInfo: &domain.ServiceSnapshot{Name: "Thai massage"},
		Payment:     domain.PaymentInfo{TotalPrice: 540},
	}
}

/* ==================== TESTS ==================== */

func TestDispatcher_NotifyCustomer(t *testing.T) {
	ctx := context.Background()
	messenger := new(MockMessenger)
	messenger.On("Push", ctx, "U1", "Бронирование отменено: Thai massage, 2024-05-01 10:00. Причина: sick").Return(nil)

	d := NewDispatcher(messenger, nil, nil, allEnabled(), nopLogger{})
	d.NotifyCustomer(ctx, domain.NotifyCustomerCancelled, serviceBooking(), "sick")

	messenger.AssertExpectations(t)
}

func TestDispatcher_NotifyCustomer_Disabled(t *testing.T) {
	ctx := context.Background()
	messenger := new(MockMessenger)
	settings := new(MockSettings)
	settings.On("NotificationSettings", ctx).Return(&domain.NotificationSettings{
		Toggles: map[domain.NotificationType]bool{domain.NotifyReviewRequest: false},
	}, nil)

	d := NewDispatcher(messenger, nil, nil, settings, nopLogger{})
	d.NotifyCustomer(ctx, domain.NotifyReviewRequest, serviceBooking(), "")

	messenger.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_NotifyCustomer_GuestSkipped(t *testing.T) {
	messenger := new(MockMessenger)
	b := serviceBooking()
	b.Customer.UserID = nil

	d := NewDispatcher(messenger, nil, nil, allEnabled(), nopLogger{})
	d.NotifyCustomer(context.Background(), domain.NotifyCustomerConfirmed, b, "")

	messenger.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_NotifyCustomer_PushErrorSwallowed(t *testing.T) {
	messenger := new(MockMessenger)
	messenger.On("Push", mock.Anything, "U1", mock.Anything).Return(errors.New("503"))

	d := NewDispatcher(messenger, nil, nil, allEnabled(), nopLogger{})

	assert.NotPanics(t, func() {
		d.NotifyCustomer(context.Background(), domain.NotifyCustomerConfirmed, serviceBooking(), "")
	})
}

func TestDispatcher_NotifyAdmins_Multicast(t *testing.T) {
	messenger := new(MockMessenger)
	fallback := new(MockFallback)
	messenger.On("Multicast", mock.Anything, []string{"A1", "A2"}, mock.Anything).Return(nil)

	d := NewDispatcher(messenger, []string{"A1", "A2"}, fallback, allEnabled(), nopLogger{})
	d.NotifyAdmins(context.Background(), domain.NotifyAdminNewBooking, serviceBooking())

	messenger.AssertExpectations(t)
	fallback.AssertNotCalled(t, "SendAdminMessage", mock.Anything, mock.Anything)
}

func TestDispatcher_NotifyAdmins_FallbackOnFailure(t *testing.T) {
	messenger := new(MockMessenger)
	fallback := new(MockFallback)
	messenger.On("Multicast", mock.Anything, []string{"A1"}, mock.Anything).Return(errors.New("quota exceeded"))
	fallback.On("SendAdminMessage", mock.Anything, mock.Anything).Return(nil)

	d := NewDispatcher(messenger, []string{"A1"}, fallback, allEnabled(), nopLogger{})
	d.NotifyAdmins(context.Background(), domain.NotifyAdminNewBooking, serviceBooking())

	fallback.AssertExpectations(t)
}

func TestDispatcher_NotifyAdmins_FallbackWithoutMessenger(t *testing.T) {
	fallback := new(MockFallback)
	fallback.On("SendAdminMessage", mock.Anything, mock.Anything).Return(nil)

	d := NewDispatcher(nil, nil, fallback, allEnabled(), nopLogger{})
	d.NotifyAdmins(context.Background(), domain.NotifyAdminNewBooking, serviceBooking())

	fallback.AssertExpectations(t)
}

func TestDispatcher_SettingsErrorTreatedAsEnabled(t *testing.T) {
	messenger := new(MockMessenger)
	settings := new(MockSettings)
	settings.On("NotificationSettings", mock.Anything).Return(nil, errors.New("db down"))
	messenger.On("Push", mock.Anything, "U1", mock.Anything).Return(nil)

	d := NewDispatcher(messenger, nil, nil, settings, nopLogger{})
	d.NotifyCustomer(context.Background(), domain.NotifyCustomerConfirmed, serviceBooking(), "")

	messenger.AssertExpectations(t)
}

func TestRender_RoomBooking(t *testing.T) {
	b := &domain.Booking{
		Type:         domain.BookingTypeRoom,
		RoomInfo:     &domain.RoomBookingInfo{RoomNumber: "101", CheckInDate: "2024-05-01", CheckOutDate: "2024-05-03"},
		RoomTypeInfo: &domain.RoomTypeSnapshot{Name: "Deluxe"},
	}

	assert.Equal(t, "Бронирование подтверждено: Deluxe 101, 2024-05-01 - 2024-05-03",
		render(domain.NotifyCustomerConfirmed, b, ""))
}
