package points

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// BookingRepository отметка о начислении баллов на бронировании
type BookingRepository interface {
	ClaimPointsAward(ctx context.Context, id string, kind domain.PointKind) (bool, error)
}

// Ledger журнал начислений баллов
type Ledger interface {
	Award(ctx context.Context, userID, bookingID string, kind domain.PointKind, amount int64) error
}

// SettingsReader правила начисления
type SettingsReader interface {
	PointSettings(ctx context.Context) (*domain.PointSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
