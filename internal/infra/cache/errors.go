package cache

import "errors"

var (
	// ErrConnect возвращается при ошибке подключения к Redis
	ErrConnect = errors.New("cache: failed to connect")

	// ErrMarshal возвращается при ошибке сериализации значения
	ErrMarshal = errors.New("cache: failed to marshal value")

	// ErrUnmarshal возвращается при ошибке десериализации значения
	ErrUnmarshal = errors.New("cache: failed to unmarshal value")

	// ErrCommand возвращается при ошибке выполнения команды Redis
	ErrCommand = errors.New("cache: redis command failed")
)
