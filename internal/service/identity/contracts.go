package identity

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// EmployeeRepository интерфейс справочника сотрудников
type EmployeeRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Employee, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
