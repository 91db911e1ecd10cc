package update_payment

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
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingIdentity      = "требуется авторизация"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgInvalidPaymentStatus = "некорректный статус оплаты"
	msgModified             = "бронирование было изменено, обновите данные и повторите"
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

// Handle PATCH /api/v1/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/payment - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req UpdatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdatePayment(r.Context(), principal, bookingID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidPaymentStatus):
			h.logger.Warn("PATCH /bookings/{id}/payment - Invalid payment status: %q", req.PaymentStatus)
			handlers.RespondBadRequest(w, msgInvalidPaymentStatus)

		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/payment - Access denied: booking_id=%s, user_id=%s",
				bookingID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrConflict):
			handlers.RespondConflict(w, msgModified)

		default:
			h.logger.Error("PATCH /bookings/{id}/payment - Failed to update payment: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/payment - Payment updated: booking_id=%s, payment_status=%s",
		bookingID, result.PaymentInfo.PaymentStatus)
	handlers.RespondJSON(w, http.StatusOK, result)
}
