package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/availability"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

/* ==================== MOCKS ==================== */

type MockBookingRepository struct {
	mock.Mock
}

// Create возвращает переданное бронирование, как после RETURNING
func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	booking.Version = 1
	return booking, nil
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetService(ctx context.Context, id string) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

type MockSettings struct {
	mock.Mock
}

func (m *MockSettings) BookingSettings(ctx context.Context) (*domain.BookingSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingSettings), args.Error(1)
}

type MockAvailability struct {
	mock.Mock
}

func (m *MockAvailability) LockSlot(ctx context.Context, date types.DateString, tm types.TimeString) error {
	args := m.Called(ctx, date, tm)
	return args.Error(0)
}

func (m *MockAvailability) CheckSlot(ctx context.Context, req availability.SlotRequest, settings *domain.BookingSettings) error {
	args := m.Called(ctx, req, settings)
	return args.Error(0)
}

type MockCoupons struct {
	mock.Mock
}

func (m *MockCoupons) Validate(ctx context.Context, userID, couponID string, subtotal int64) (*domain.Coupon, int64, error) {
	args := m.Called(ctx, userID, couponID, subtotal)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.Coupon), args.Get(1).(int64), args.Error(2)
}

func (m *MockCoupons) Consume(ctx context.Context, couponID, bookingID string) error {
	args := m.Called(ctx, couponID, bookingID)
	return args.Error(0)
}

type MockCustomers struct {
	mock.Mock
}

func (m *MockCustomers) UpsertOnBooking(ctx context.Context, info domain.CustomerInfo) error {
	args := m.Called(ctx, info)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyCustomer(ctx context.Context, kind domain.NotificationType, booking *domain.Booking, reason string) {
	m.Called(ctx, kind, booking, reason)
}

func (m *MockNotifier) NotifyAdmins(ctx context.Context, kind domain.NotificationType, booking *domain.Booking) {
	m.Called(ctx, kind, booking)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type syncEffects struct{}

func (syncEffects) Go(ctx context.Context, _ string, fn func(ctx context.Context) error) {
	_ = fn(ctx)
}

type recordingMetrics struct {
	outcomes []string
}

func (r *recordingMetrics) RecordAdmission(_, outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	t time.Time
}

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

/* ==================== HELPERS ==================== */

var (
	bangkok = time.FixedZone("ICT", 7*60*60)
	now     = time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)

	admin    = &domain.Principal{Kind: domain.PrincipalAdmin}
	customer = &domain.Principal{Kind: domain.PrincipalUser, UserID: "U1"}
)

type fixture struct {
	repo         *MockBookingRepository
	catalog      *MockCatalog
	settings     *MockSettings
	availability *MockAvailability
	coupons      *MockCoupons
	customers    *MockCustomers
	notifier     *MockNotifier
	publisher    *MockPublisher
	metrics      *recordingMetrics
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		repo:         new(MockBookingRepository),
		catalog:      new(MockCatalog),
		settings:     new(MockSettings),
		availability: new(MockAvailability),
		coupons:      new(MockCoupons),
		customers:    new(MockCustomers),
		notifier:     new(MockNotifier),
		publisher:    new(MockPublisher),
		metrics:      &recordingMetrics{},
	}
	f.uc = NewUseCase(f.repo, f.catalog, f.settings, f.availability, f.coupons, f.customers,
		f.notifier, f.publisher, syncEffects{}, f.metrics, passthroughTx{}, bangkok, nopLogger{})
	f.uc.timeProvider = fixedTime{t: now}

	f.catalog.On("GetService", mock.Anything, "svc-1").Return(&domain.Service{
		ID: "svc-1", Name: "Thai massage", Price: 500, Duration: 60, Active: true,
		AddOns: []domain.AddOn{{Name: "Hot stones", Price: 100, Duration: 15}},
	}, nil).Maybe()
	f.settings.On("BookingSettings", mock.Anything).Return(domain.DefaultBookingSettings(), nil).Maybe()
	f.availability.On("LockSlot", mock.Anything, types.DateString("2024-05-02"), types.TimeString("10:00")).Return(nil).Maybe()
	f.customers.On("UpsertOnBooking", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.notifier.On("NotifyCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	f.notifier.On("NotifyAdmins", mock.Anything, mock.Anything, mock.Anything).Maybe()
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func (f *fixture) slotFree() {
	f.availability.On("CheckSlot", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil, nil)
}

func request(principal *domain.Principal) *Request {
	return &Request{
		Principal:     principal,
		ServiceID:     "svc-1",
		Date:          "2024-05-02",
		Time:          "10:00",
		CustomerName:  "Anna",
		CustomerPhone: "+66800000000",
	}
}

/* ==================== TESTS ==================== */

func TestExecute_ServiceBookingWithAddOnAndCoupon(t *testing.T) {
	f := newFixture()
	f.slotFree()
	f.coupons.On("Validate", mock.Anything, "U1", "C1", int64(600)).
		Return(&domain.Coupon{ID: "C1"}, int64(60), nil)
	f.coupons.On("Consume", mock.Anything, "C1", mock.AnythingOfType("string")).Return(nil).Once()

	req := request(customer)
	req.Selection = pricing.ServiceSelection{AddOns: []string{"Hot stones"}}
	req.CouponID = ptr.Ptr("C1")

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(600), resp.PaymentInfo.OriginalPrice)
	assert.Equal(t, int64(60), resp.PaymentInfo.Discount)
	assert.Equal(t, int64(540), resp.PaymentInfo.TotalPrice)
	assert.Equal(t, "unpaid", resp.PaymentInfo.PaymentStatus)
	require.NotNil(t, resp.ServiceInfo)
	assert.Equal(t, 75, resp.ServiceInfo.Duration)
	assert.Equal(t, int64(500), resp.ServiceInfo.Price)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	require.NotNil(t, resp.CustomerInfo.UserID)
	assert.Equal(t, "U1", *resp.CustomerInfo.UserID)
	assert.NotEmpty(t, resp.ID)

	f.coupons.AssertCalled(t, "Consume", mock.Anything, "C1", resp.ID)
	f.notifier.AssertCalled(t, "NotifyAdmins", mock.Anything, domain.NotifyAdminNewBooking, mock.Anything)
	f.customers.AssertCalled(t, "UpsertOnBooking", mock.Anything, mock.Anything)
	assert.Equal(t, []string{"admitted"}, f.metrics.outcomes)
}

func TestExecute_ClientPriceIgnored(t *testing.T) {
	f := newFixture()
	f.slotFree()

	req := request(customer)
	req.Selection = pricing.ServiceSelection{AreaIndex: ptr.Ptr(5)}

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(500), resp.PaymentInfo.TotalPrice)
	assert.Equal(t, 60, resp.ServiceInfo.Duration)
}

func TestExecute_AdminExplicitStatus(t *testing.T) {
	f := newFixture()
	f.slotFree()

	req := request(admin)
	req.Status = ptr.Ptr("confirmed")
	req.CustomerUserID = ptr.Ptr("U7")

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "U7", *resp.CustomerInfo.UserID)
}

func TestExecute_CustomerCannotChooseStatus(t *testing.T) {
	f := newFixture()
	f.slotFree()

	req := request(customer)
	req.Status = ptr.Ptr("confirmed")
	req.CustomerUserID = ptr.Ptr("U7")

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "U1", *resp.CustomerInfo.UserID)
}

func TestExecute_PaymentDueAtDefaultsToEndOfBusinessDay(t *testing.T) {
	f := newFixture()
	f.slotFree()

	resp, err := f.uc.Execute(context.Background(), request(customer))

	require.NoError(t, err)
	require.NotNil(t, resp.PaymentInfo.PaymentDueAt)
	assert.Equal(t, "2024-05-01T23:59:59+07:00", *resp.PaymentInfo.PaymentDueAt)
}

func TestExecute_SlotFullWritesNothing(t *testing.T) {
	f := newFixture()
	f.coupons.On("Validate", mock.Anything, "U1", "C1", int64(500)).
		Return(&domain.Coupon{ID: "C1"}, int64(50), nil)
	f.availability.On("CheckSlot", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrSlotFull)

	req := request(customer)
	req.CouponID = ptr.Ptr("C1")

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrSlotFull)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.coupons.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifyCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []string{"slot_full"}, f.metrics.outcomes)
}

func TestExecute_TechnicianPassedToCapacityCheck(t *testing.T) {
	f := newFixture()
	f.availability.On("CheckSlot", mock.Anything, availability.SlotRequest{
		Date: "2024-05-02", Time: "10:00", TechnicianID: ptr.Ptr("T1"),
	}, mock.Anything).Return(availability.ErrTechnicianBusy)

	req := request(customer)
	req.TechnicianID = ptr.Ptr("T1")

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrSlotFull)
}

func TestExecute_CouponRaceLoser(t *testing.T) {
	f := newFixture()
	f.slotFree()
	f.coupons.On("Validate", mock.Anything, "U1", "C1", int64(500)).
		Return(&domain.Coupon{ID: "C1"}, int64(50), nil)
	f.coupons.On("Consume", mock.Anything, "C1", mock.Anything).Return(domain.ErrCouponAlreadyUsed)

	req := request(customer)
	req.CouponID = ptr.Ptr("C1")

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrCouponAlreadyUsed)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	assert.Equal(t, []string{"coupon_used"}, f.metrics.outcomes)
}

func TestExecute_UsedCouponRejectedBeforeAdmission(t *testing.T) {
	f := newFixture()
	f.coupons.On("Validate", mock.Anything, "U1", "C1", int64(500)).Return(nil, int64(0), domain.ErrCouponAlreadyUsed)

	req := request(customer)
	req.CouponID = ptr.Ptr("C1")

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrCouponAlreadyUsed)
	f.availability.AssertNotCalled(t, "LockSlot", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_DiscountNeverExceedsSubtotal(t *testing.T) {
	f := newFixture()
	f.slotFree()
	// validator уже ограничил скидку, use case не делает итог отрицательным
	f.coupons.On("Validate", mock.Anything, "U1", "C1", int64(500)).
		Return(&domain.Coupon{ID: "C1"}, int64(900), nil)
	f.coupons.On("Consume", mock.Anything, "C1", mock.Anything).Return(nil)

	req := request(customer)
	req.CouponID = ptr.Ptr("C1")

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(500), resp.PaymentInfo.Discount)
	assert.Equal(t, int64(0), resp.PaymentInfo.TotalPrice)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "anonymous", mutate: func(r *Request) { r.Principal = nil }, wantErr: domain.ErrUnauthorized},
		{name: "user without id", mutate: func(r *Request) { r.Principal = &domain.Principal{Kind: domain.PrincipalUser} }, wantErr: domain.ErrUnauthorized},
		{name: "missing date", mutate: func(r *Request) { r.Date = "" }, wantErr: domain.ErrValidation},
		{name: "bad time", mutate: func(r *Request) { r.Time = "25:99" }, wantErr: domain.ErrValidation},
		{name: "missing service", mutate: func(r *Request) { r.ServiceID = " " }, wantErr: domain.ErrValidation},
		{name: "missing phone", mutate: func(r *Request) { r.CustomerPhone = "" }, wantErr: domain.ErrValidation},
		{name: "unknown status", mutate: func(r *Request) { r.Status = ptr.Ptr("done") }, wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := request(customer)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			f.catalog.AssertNotCalled(t, "GetService", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_ServiceNotFoundOrInactive(t *testing.T) {
	f := newFixture()
	f.catalog.On("GetService", mock.Anything, "gone").Return(nil, domain.ErrNotFound)
	f.catalog.On("GetService", mock.Anything, "old").Return(&domain.Service{ID: "old", Active: false}, nil)

	req := request(customer)
	req.ServiceID = "gone"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req.ServiceID = "old"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
