package coupons

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Repository интерфейс репозитория купонов
type Repository interface {
	GetByUserAndID(ctx context.Context, userID, couponID string) (*domain.Coupon, error)
	MarkUsed(ctx context.Context, couponID, bookingID string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
