package settings

import (
	"context"
	"time"
)

// Repository интерфейс репозитория документов настроек
type Repository interface {
	GetDocument(ctx context.Context, key string) ([]byte, error)
}

// Cache интерфейс read-through кэша
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
