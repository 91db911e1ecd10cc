package create_room_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// validateRequest валидирует входные данные и возвращает число ночей
func validateRequest(req *Request) (int, error) {
	if strings.TrimSpace(req.RoomTypeID) == "" {
		return 0, fmt.Errorf("%w: roomTypeId is required", ErrInvalidInput)
	}

	if req.CheckInDate.IsZero() || req.CheckOutDate.IsZero() {
		return 0, fmt.Errorf("%w: checkInDate and checkOutDate are required", ErrInvalidInput)
	}
	nights, err := req.CheckInDate.DaysUntil(req.CheckOutDate)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid date format: %v", ErrInvalidInput, err)
	}
	if nights <= 0 {
		return 0, fmt.Errorf("%w: checkOutDate must be after checkInDate", ErrInvalidInput)
	}
	if nights > domain.MaxNightsPerBooking {
		return 0, fmt.Errorf("%w: stay must be at most %d nights", ErrInvalidInput, domain.MaxNightsPerBooking)
	}

	if req.Rooms < 0 || req.Rooms > domain.MaxRoomsPerBooking {
		return 0, fmt.Errorf("%w: rooms must be between 1 and %d", ErrInvalidInput, domain.MaxRoomsPerBooking)
	}
	if req.Guests < 0 {
		return 0, fmt.Errorf("%w: guests must not be negative", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return 0, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return 0, fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return 0, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.Status != nil && !domain.BookingStatus(*req.Status).IsValid() {
		return 0, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}

	return nights, nil
}
