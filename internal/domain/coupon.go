package domain

import "time"

// DiscountType тип скидки купона
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon купон пользователя
type Coupon struct {
	ID            string
	UserID        string
	Name          string
	DiscountType  DiscountType
	DiscountValue int64
	Used          bool
	UsedAt        *time.Time
	BookingID     *string
	CreatedAt     time.Time
}
