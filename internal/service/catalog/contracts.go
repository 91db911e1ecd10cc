package catalog

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Repository интерфейс репозитория каталога
type Repository interface {
	GetService(ctx context.Context, id string) (*domain.Service, error)
	GetRoomType(ctx context.Context, id string) (*domain.RoomType, error)
	GetRoomsByType(ctx context.Context, roomTypeID string) ([]*domain.Room, error)
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
