package coupons

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	couponRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/coupon"
)

/* ==================== MOCKS ==================== */

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByUserAndID(ctx context.Context, userID, couponID string) (*domain.Coupon, error) {
	args := m.Called(ctx, userID, couponID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockRepository) MarkUsed(ctx context.Context, couponID, bookingID string) (bool, error) {
	args := m.Called(ctx, couponID, bookingID)
	return args.Bool(0), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

/* ==================== TESTS ==================== */

func TestDiscount(t *testing.T) {
	tests := []struct {
		name     string
		coupon   domain.Coupon
		subtotal int64
		want     int64
		wantErr  error
	}{
		{name: "percentage", coupon: domain.Coupon{DiscountType: domain.DiscountPercentage, DiscountValue: 10}, subtotal: 600, want: 60},
		{name: "percentage rounds half up", coupon: domain.Coupon{DiscountType: domain.DiscountPercentage, DiscountValue: 15}, subtotal: 333, want: 50},
		{name: "fixed", coupon: domain.Coupon{DiscountType: domain.DiscountFixed, DiscountValue: 200}, subtotal: 600, want: 200},
		{name: "fixed clamped to subtotal", coupon: domain.Coupon{DiscountType: domain.DiscountFixed, DiscountValue: 900}, subtotal: 600, want: 600},
		{name: "percentage over 100 clamped", coupon: domain.Coupon{DiscountType: domain.DiscountPercentage, DiscountValue: 150}, subtotal: 400, want: 400},
		{name: "negative fixed clamped to zero", coupon: domain.Coupon{DiscountType: domain.DiscountFixed, DiscountValue: -50}, subtotal: 400, want: 0},
		{name: "unknown type", coupon: domain.Coupon{DiscountType: "bogo", DiscountValue: 1}, subtotal: 400, wantErr: domain.ErrInvalidCouponType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Discount(&tt.coupon, tt.subtotal)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidator_Validate_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("GetByUserAndID", ctx, "U1", "C1").Return(&domain.Coupon{
		ID: "C1", UserID: "U1", DiscountType: domain.DiscountPercentage, DiscountValue: 10,
	}, nil)

	v := NewValidator(repo, nopLogger{})
	coupon, discount, err := v.Validate(ctx, "U1", "C1", 600)

	require.NoError(t, err)
	assert.Equal(t, "C1", coupon.ID)
	assert.Equal(t, int64(60), discount)
}

func TestValidator_Validate_RequiresUser(t *testing.T) {
	repo := new(MockRepository)
	v := NewValidator(repo, nopLogger{})

	_, _, err := v.Validate(context.Background(), "", "C1", 600)

	assert.ErrorIs(t, err, domain.ErrInvalidCoupon)
	repo.AssertNotCalled(t, "GetByUserAndID", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidator_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		coupon  *domain.Coupon
		repoErr error
		wantErr error
	}{
		{name: "not found", repoErr: couponRepo.ErrCouponNotFound, wantErr: domain.ErrInvalidCoupon},
		{name: "store failure", repoErr: errors.New("connection reset"), wantErr: domain.ErrPersistence},
		{name: "already used", coupon: &domain.Coupon{ID: "C1", Used: true, DiscountType: domain.DiscountFixed}, wantErr: domain.ErrCouponAlreadyUsed},
		{name: "bad type", coupon: &domain.Coupon{ID: "C1", DiscountType: "mystery"}, wantErr: domain.ErrInvalidCouponType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := new(MockRepository)
			if tt.coupon != nil {
				repo.On("GetByUserAndID", ctx, "U1", "C1").Return(tt.coupon, nil)
			} else {
				repo.On("GetByUserAndID", ctx, "U1", "C1").Return(nil, tt.repoErr)
			}

			v := NewValidator(repo, nopLogger{})
			_, _, err := v.Validate(ctx, "U1", "C1", 600)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidator_Consume(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("MarkUsed", ctx, "C1", "B1").Return(true, nil).Once()
	repo.On("MarkUsed", ctx, "C1", "B2").Return(false, nil).Once()

	v := NewValidator(repo, nopLogger{})

	require.NoError(t, v.Consume(ctx, "C1", "B1"))
	assert.ErrorIs(t, v.Consume(ctx, "C1", "B2"), domain.ErrCouponAlreadyUsed)
	repo.AssertExpectations(t)
}

func TestValidator_Consume_StoreError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("MarkUsed", ctx, "C1", "B1").Return(false, errors.New("timeout"))

	v := NewValidator(repo, nopLogger{})
	assert.ErrorIs(t, v.Consume(ctx, "C1", "B1"), domain.ErrPersistence)
}
