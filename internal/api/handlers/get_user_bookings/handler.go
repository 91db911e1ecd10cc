package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
)

const (
	msgMissingIdentity = "требуется авторизация"
	msgForbidden       = "история доступна только пользователю"
	msgInvalidStatus   = "некорректный статус бронирования"
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

// Handle GET /api/v1/users/me/bookings
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me/bookings - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var statusPtr *string
	if status := r.URL.Query().Get("status"); status != "" {
		statusPtr = &status
	}

	result, err := h.service.GetUserBookings(r.Context(), principal, &models.GetUserBookingsRequest{Status: statusPtr})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /users/me/bookings - Not an end user: kind=%s", principal.Kind)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("GET /users/me/bookings - Invalid status filter: %v", *statusPtr)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/me/bookings - Failed to get bookings: user_id=%s, error=%v", principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/me/bookings - Retrieved %d bookings for user_id=%s", len(result.Bookings), principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
