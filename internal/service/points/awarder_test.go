package points

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
)

/* ==================== MOCKS ==================== */

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ClaimPointsAward(ctx context.Context, id string, kind domain.PointKind) (bool, error) {
	args := m.Called(ctx, id, kind)
	return args.Bool(0), args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Award(ctx context.Context, userID, bookingID string, kind domain.PointKind, amount int64) error {
	args := m.Called(ctx, userID, bookingID, kind, amount)
	return args.Error(0)
}

type MockSettings struct {
	mock.Mock
}

func (m *MockSettings) PointSettings(ctx context.Context) (*domain.PointSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointSettings), args.Error(1)
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func paidBooking() *domain.Booking {
	return &domain.Booking{
		ID:       "B1",
		Customer: domain.CustomerInfo{UserID: ptr.Ptr("U1")},
		Payment:  domain.PaymentInfo{TotalPrice: 540, PaymentStatus: domain.PaymentPaid},
	}
}

func defaults() *MockSettings {
	s := new(MockSettings)
	s.On("PointSettings", mock.Anything).Return(domain.DefaultPointSettings(), nil)
	return s
}

/* ==================== TESTS ==================== */

func TestAwarder_AwardPurchase(t *testing.T) {
	ctx := context.Background()
	bookings := new(MockBookingRepository)
	ledger := new(MockLedger)
	bookings.On("ClaimPointsAward", ctx, "B1", domain.PointsPurchase).Return(true, nil)
	ledger.On("Award", ctx, "U1", "B1", domain.PointsPurchase, int64(5)).Return(nil)

	a := NewAwarder(bookings, ledger, defaults(), passthroughTx{}, nopLogger{})
	awarded, err := a.Award(ctx, paidBooking(), domain.PointsPurchase)

	require.NoError(t, err)
	assert.Equal(t, int64(5), awarded)
	ledger.AssertExpectations(t)
}

func TestAwarder_AwardsEachCategoryOnce(t *testing.T) {
	ctx := context.Background()
	bookings := new(MockBookingRepository)
	ledger := new(MockLedger)
	bookings.On("ClaimPointsAward", ctx, "B1", domain.PointsPurchase).Return(true, nil).Once()
	bookings.On("ClaimPointsAward", ctx, "B1", domain.PointsPurchase).Return(false, nil)
	ledger.On("Award", ctx, "U1", "B1", domain.PointsPurchase, int64(5)).Return(nil).Once()

	a := NewAwarder(bookings, ledger, defaults(), passthroughTx{}, nopLogger{})

	// оплата и завершение независимо запускают начисление
	first, err := a.Award(ctx, paidBooking(), domain.PointsPurchase)
	require.NoError(t, err)
	second, err := a.Award(ctx, paidBooking(), domain.PointsPurchase)
	require.NoError(t, err)

	assert.Equal(t, int64(5), first)
	assert.Equal(t, int64(0), second)
	ledger.AssertNumberOfCalls(t, "Award", 1)
}

func TestAwarder_AwardVisit(t *testing.T) {
	ctx := context.Background()
	bookings := new(MockBookingRepository)
	ledger := new(MockLedger)
	bookings.On("ClaimPointsAward", ctx, "B1", domain.PointsVisit).Return(true, nil)
	ledger.On("Award", ctx, "U1", "B1", domain.PointsVisit, int64(domain.DefaultVisitPoints)).Return(nil)

	a := NewAwarder(bookings, ledger, defaults(), passthroughTx{}, nopLogger{})
	awarded, err := a.Award(ctx, paidBooking(), domain.PointsVisit)

	require.NoError(t, err)
	assert.Equal(t, int64(domain.DefaultVisitPoints), awarded)
}

func TestAwarder_SkipsGuestAndZeroAmounts(t *testing.T) {
	ctx := context.Background()
	bookings := new(MockBookingRepository)
	ledger := new(MockLedger)

	a := NewAwarder(bookings, ledger, defaults(), passthroughTx{}, nopLogger{})

	guest := paidBooking()
	guest.Customer.UserID = nil
	awarded, err := a.Award(ctx, guest, domain.PointsPurchase)
	require.NoError(t, err)
	assert.Zero(t, awarded)

	cheap := paidBooking()
	cheap.Payment.TotalPrice = 50
	awarded, err = a.Award(ctx, cheap, domain.PointsPurchase)
	require.NoError(t, err)
	assert.Zero(t, awarded)

	bookings.AssertNotCalled(t, "ClaimPointsAward", mock.Anything, mock.Anything, mock.Anything)
}

func TestAwarder_LedgerError(t *testing.T) {
	ctx := context.Background()
	bookings := new(MockBookingRepository)
	ledger := new(MockLedger)
	bookings.On("ClaimPointsAward", ctx, "B1", domain.PointsVisit).Return(true, nil)
	ledger.On("Award", ctx, "U1", "B1", domain.PointsVisit, mock.Anything).Return(errors.New("insert failed"))

	a := NewAwarder(bookings, ledger, defaults(), passthroughTx{}, nopLogger{})
	awarded, err := a.Award(ctx, paidBooking(), domain.PointsVisit)

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Zero(t, awarded)
}
