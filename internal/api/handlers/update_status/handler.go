package update_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "требуется авторизация"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgInvalidAction      = "неизвестное действие, ожидается confirm, start или complete"
	msgNoteTooLong        = "комментарий слишком длинный"
	msgInvalidTransition  = "действие недоступно для текущего статуса бронирования"
	msgModified           = "бронирование было изменено, обновите данные и повторите"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing booking ID")
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ApplyTransition(r.Context(), principal, bookingID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidAction):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid action: %q", req.Action)
			handlers.RespondBadRequest(w, msgInvalidAction)

		case errors.Is(err, bookings.ErrNoteTooLong):
			handlers.RespondBadRequest(w, msgNoteTooLong)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/status - Access denied: booking_id=%s, action=%s", bookingID, req.Action)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid transition: booking_id=%s, %v", bookingID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("PATCH /bookings/{id}/status - Concurrent modification: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgModified)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to apply action: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Action applied: booking_id=%s, action=%s, status=%s",
		bookingID, req.Action, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
