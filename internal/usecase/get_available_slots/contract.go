package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// SettingsReader настройки вместимости слотов
type SettingsReader interface {
	BookingSettings(ctx context.Context) (*domain.BookingSettings, error)
}

// SlotLister занятость слотов на дату
type SlotLister interface {
	ListSlots(ctx context.Context, date types.DateString, settings *domain.BookingSettings) ([]domain.AvailableSlot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
