package availability

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountSlotBookings(ctx context.Context, filter bookingRepo.SlotFilter) (int, error)
	CountByTimeOnDate(ctx context.Context, date types.DateString, statuses []domain.BookingStatus) (map[types.TimeString]int, error)
	GetOverlappingRoomBookings(
		ctx context.Context,
		roomTypeID string,
		checkIn, checkOut types.DateString,
		statuses []domain.BookingStatus,
	) ([]*domain.Booking, error)
	AcquireAdmissionLock(ctx context.Context, key string) error
}

// RoomInventory источник номеров типа
type RoomInventory interface {
	GetRooms(ctx context.Context, roomTypeID string) ([]*domain.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
