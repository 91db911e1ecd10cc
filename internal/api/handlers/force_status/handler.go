package force_status

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
	msgAdminOnly          = "доступно только администратору"
	msgInvalidStatus      = "некорректный статус бронирования"
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

// Handle PUT /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req ForceStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ForceStatus(r.Context(), principal, bookingID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{id}/status - Not an admin: booking_id=%s, user_id=%s",
				bookingID, principal.UserID)
			handlers.RespondForbidden(w, msgAdminOnly)

		case errors.Is(err, domain.ErrConflict):
			handlers.RespondConflict(w, msgModified)

		default:
			h.logger.Error("PUT /bookings/{id}/status - Failed to set status: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id}/status - Status forced: booking_id=%s, status=%s", bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
