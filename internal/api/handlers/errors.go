package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

const (
	msgValidation        = "некорректные данные запроса"
	msgNotFound          = "не найдено"
	msgUnauthorized      = "требуется авторизация"
	msgSlotFull          = "выбранный временной слот занят"
	msgRoomFullyBooked   = "на выбранные даты нет свободных номеров"
	msgInvalidCoupon     = "купон не найден"
	msgCouponAlreadyUsed = "купон уже использован"
	msgInvalidCouponType = "неизвестный тип скидки купона"
	msgInvalidTransition = "недопустимое изменение статуса бронирования"
	msgConflict          = "бронирование было изменено, обновите данные и повторите"
)

// StatusFor сопоставляет ошибку таксономии домена HTTP-статусу и сообщению
// Неизвестные ошибки и ошибки хранилища -> 500
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, msgValidation
	case errors.Is(err, domain.ErrInvalidCoupon):
		return http.StatusBadRequest, msgInvalidCoupon
	case errors.Is(err, domain.ErrInvalidCouponType):
		return http.StatusBadRequest, msgInvalidCouponType
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, domain.ErrSlotFull):
		return http.StatusConflict, msgSlotFull
	case errors.Is(err, domain.ErrRoomFullyBooked):
		return http.StatusConflict, msgRoomFullyBooked
	case errors.Is(err, domain.ErrCouponAlreadyUsed):
		return http.StatusConflict, msgCouponAlreadyUsed
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, msgInvalidTransition
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, msgConflict
	}
	return http.StatusInternalServerError, msgInternalError
}

// RespondDomainError пишет ответ по StatusFor
func RespondDomainError(w http.ResponseWriter, err error) {
	status, message := StatusFor(err)
	RespondError(w, status, message)
}
