package domain

import "errors"

// Таксономия ошибок ядра бронирования
// Слои оборачивают их через fmt.Errorf("%w: ...", ErrX), обработчики сопоставляют через errors.Is
var (
	// ErrValidation не заполнены обязательные поля или неверный формат
	ErrValidation = errors.New("validation error")

	// ErrNotFound услуга, тип номера или бронирование не найдены
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized не удалось определить личность или нет прав
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSlotFull в слоте нет свободных мест
	ErrSlotFull = errors.New("slot is full")

	// ErrRoomFullyBooked нет свободных номеров на период
	ErrRoomFullyBooked = errors.New("room type is fully booked")

	// ErrInvalidCoupon купон не найден у пользователя
	ErrInvalidCoupon = errors.New("invalid coupon")

	// ErrCouponAlreadyUsed купон уже использован
	ErrCouponAlreadyUsed = errors.New("coupon already used")

	// ErrInvalidCouponType неизвестный тип скидки
	ErrInvalidCouponType = errors.New("invalid coupon type")

	// ErrInvalidTransition переход статуса недопустим
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict бронирование изменено параллельно (не совпала версия)
	ErrConflict = errors.New("booking was modified concurrently")

	// ErrPersistence ошибка хранилища
	ErrPersistence = errors.New("persistence error")
)
