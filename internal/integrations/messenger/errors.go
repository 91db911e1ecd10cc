package messenger

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("messenger client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("messenger client: invalid response")

	// ErrNoRecipients возвращается, если список получателей пуст
	ErrNoRecipients = errors.New("messenger client: no recipients")
)
