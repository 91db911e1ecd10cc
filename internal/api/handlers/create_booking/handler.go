package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "требуется авторизация"
	msgInvalidInput       = "некорректные данные бронирования"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotFull           = "выбранный временной слот занят"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(principal))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, domain.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotFull)

		default:
			status, message := handlers.StatusFor(err)
			if status == http.StatusInternalServerError {
				h.logger.Error("POST /bookings - Failed to create booking: service_id=%s, error=%v", req.ServiceID, err)
			} else {
				h.logger.Warn("POST /bookings - Rejected: service_id=%s, error=%v", req.ServiceID, err)
			}
			handlers.RespondError(w, status, message)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, status=%s", result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
