package coupons

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	couponRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/coupon"
)

// Validator проверка и погашение купонов пользователя
type Validator struct {
	repo   Repository
	logger Logger
}

// NewValidator создает новый экземпляр validator
func NewValidator(repo Repository, logger Logger) *Validator {
	return &Validator{
		repo:   repo,
		logger: logger,
	}
}

// Validate проверяет купон пользователя и считает скидку для подытога
// Купон применяется только при известном пользователе
func (v *Validator) Validate(ctx context.Context, userID, couponID string, subtotal int64) (*domain.Coupon, int64, error) {
	if userID == "" {
		return nil, 0, fmt.Errorf("%w: coupon requires a signed-in user", domain.ErrInvalidCoupon)
	}

	coupon, err := v.repo.GetByUserAndID(ctx, userID, couponID)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			v.logger.Warn("Validate: coupon=%s not found for user=%s", couponID, userID)
			return nil, 0, fmt.Errorf("%w: coupon=%s", domain.ErrInvalidCoupon, couponID)
		}
		v.logger.Error("Validate: failed to get coupon=%s: %v", couponID, err)
		return nil, 0, fmt.Errorf("%w: Validate - get coupon: %w", domain.ErrPersistence, err)
	}

	if coupon.Used {
		return nil, 0, fmt.Errorf("%w: coupon=%s", domain.ErrCouponAlreadyUsed, couponID)
	}

	discount, err := Discount(coupon, subtotal)
	if err != nil {
		v.logger.Warn("Validate: coupon=%s has unknown discount type=%s", couponID, coupon.DiscountType)
		return nil, 0, err
	}

	return coupon, discount, nil
}

// Consume помечает купон использованным бронированием
// Вызывается в транзакции создания бронирования после вставки записи
func (v *Validator) Consume(ctx context.Context, couponID, bookingID string) error {
	ok, err := v.repo.MarkUsed(ctx, couponID, bookingID)
	if err != nil {
		v.logger.Error("Consume: failed to mark coupon=%s used: %v", couponID, err)
		return fmt.Errorf("%w: Consume - mark used: %w", domain.ErrPersistence, err)
	}
	if !ok {
		v.logger.Warn("Consume: coupon=%s was consumed concurrently, booking=%s rejected", couponID, bookingID)
		return fmt.Errorf("%w: coupon=%s", domain.ErrCouponAlreadyUsed, couponID)
	}

	v.logger.Info("Consume: coupon=%s consumed by booking=%s", couponID, bookingID)
	return nil
}

// Discount скидка купона для подытога в диапазоне [0, subtotal]
func Discount(coupon *domain.Coupon, subtotal int64) (int64, error) {
	var discount int64
	switch coupon.DiscountType {
	case domain.DiscountPercentage:
		discount = int64(math.Round(float64(subtotal) * float64(coupon.DiscountValue) / 100))
	case domain.DiscountFixed:
		discount = coupon.DiscountValue
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidCouponType, coupon.DiscountType)
	}

	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount, nil
}
