package create_room_booking

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
	createRoomBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_room_booking"
)

type CreateRoomBookingUseCase interface {
	Execute(ctx context.Context, req *createRoomBooking.Request) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
