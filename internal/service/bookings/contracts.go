package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByCustomerUserID(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id string) error
}

// EmployeeDirectory справочник сотрудников
type EmployeeDirectory interface {
	IsEmployee(ctx context.Context, userID string) (bool, error)
}

// Notifier уведомления клиенту и администраторам
type Notifier interface {
	NotifyCustomer(ctx context.Context, kind domain.NotificationType, booking *domain.Booking, reason string)
}

// PointsAwarder начисление баллов (не более одного раза на категорию)
type PointsAwarder interface {
	Award(ctx context.Context, booking *domain.Booking, kind domain.PointKind) (int64, error)
}

// CustomerRepository карточки клиентов
type CustomerRepository interface {
	RecordVisit(ctx context.Context, info domain.CustomerInfo, spent int64) error
}

// CalendarRepository записи календаря персонала
type CalendarRepository interface {
	Upsert(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, bookingID string) error
}

// EventPublisher публикация событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// Effects фоновые побочные эффекты
type Effects interface {
	Go(ctx context.Context, name string, fn func(ctx context.Context) error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
