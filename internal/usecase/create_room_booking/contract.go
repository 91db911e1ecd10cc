package create_room_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CatalogReader источник истины по типам номеров
type CatalogReader interface {
	GetRoomType(ctx context.Context, id string) (*domain.RoomType, error)
}

// AvailabilityChecker контроль инвентаря номеров
type AvailabilityChecker interface {
	LockRoomType(ctx context.Context, roomTypeID string) error
	AssignRoom(ctx context.Context, req availability.RoomRequest) (*domain.Room, error)
}

// CouponValidator проверка и погашение купона
type CouponValidator interface {
	Validate(ctx context.Context, userID, couponID string, subtotal int64) (*domain.Coupon, int64, error)
	Consume(ctx context.Context, couponID, bookingID string) error
}

// CustomerRepository карточки клиентов
type CustomerRepository interface {
	UpsertOnBooking(ctx context.Context, info domain.CustomerInfo) error
}

// Notifier уведомления о новом бронировании
type Notifier interface {
	NotifyCustomer(ctx context.Context, kind domain.NotificationType, booking *domain.Booking, reason string)
	NotifyAdmins(ctx context.Context, kind domain.NotificationType, booking *domain.Booking)
}

// EventPublisher публикация событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// Effects фоновые побочные эффекты
type Effects interface {
	Go(ctx context.Context, name string, fn func(ctx context.Context) error)
}

// AdmissionRecorder метрики исходов допуска
type AdmissionRecorder interface {
	RecordAdmission(kind, outcome string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
