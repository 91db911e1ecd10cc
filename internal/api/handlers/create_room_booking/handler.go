package create_room_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	createRoomBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_room_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "требуется авторизация"
	msgInvalidInput       = "некорректные данные бронирования номера"
	msgTooManyGuests      = "количество гостей превышает вместимость номеров"
	msgRoomTypeNotFound   = "тип номера не найден"
	msgFullyBooked        = "на выбранные даты нет свободных номеров"
)

type Handler struct {
	useCase CreateRoomBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateRoomBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/room-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /room-bookings - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreateRoomBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /room-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(principal))
	if err != nil {
		switch {
		case errors.Is(err, createRoomBooking.ErrTooManyGuests):
			h.logger.Warn("POST /room-bookings - Too many guests: %v", err)
			handlers.RespondBadRequest(w, msgTooManyGuests)

		case errors.Is(err, createRoomBooking.ErrInvalidInput):
			h.logger.Warn("POST /room-bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /room-bookings - Room type not found: room_type_id=%s", req.RoomTypeID)
			handlers.RespondNotFound(w, msgRoomTypeNotFound)

		case errors.Is(err, domain.ErrRoomFullyBooked):
			h.logger.Warn("POST /room-bookings - Fully booked: room_type_id=%s, %s..%s",
				req.RoomTypeID, req.CheckInDate, req.CheckOutDate)
			handlers.RespondConflict(w, msgFullyBooked)

		default:
			status, message := handlers.StatusFor(err)
			if status == http.StatusInternalServerError {
				h.logger.Error("POST /room-bookings - Failed to create booking: room_type_id=%s, error=%v", req.RoomTypeID, err)
			} else {
				h.logger.Warn("POST /room-bookings - Rejected: room_type_id=%s, error=%v", req.RoomTypeID, err)
			}
			handlers.RespondError(w, status, message)
		}
		return
	}

	h.logger.Info("POST /room-bookings - Booking created successfully: booking_id=%s, room_type_id=%s",
		result.ID, req.RoomTypeID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
