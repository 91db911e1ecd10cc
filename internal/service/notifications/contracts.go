package notifications

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Messenger клиент Messaging API чат-приложения
type Messenger interface {
	Push(ctx context.Context, userID, text string) error
	Multicast(ctx context.Context, userIDs []string, text string) error
}

// AdminFallback резервный канал до администраторов (Telegram бот)
type AdminFallback interface {
	SendAdminMessage(ctx context.Context, text string) error
}

// SettingsReader источник переключателей уведомлений
type SettingsReader interface {
	NotificationSettings(ctx context.Context) (*domain.NotificationSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
