package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	employeeRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/employee"
)

// Directory проверяет, является ли пользователь действующим сотрудником
type Directory struct {
	repo   EmployeeRepository
	logger Logger
}

// NewDirectory создает новый экземпляр справочника сотрудников
func NewDirectory(repo EmployeeRepository, logger Logger) *Directory {
	return &Directory{repo: repo, logger: logger}
}

// IsEmployee true, если userID принадлежит активному сотруднику
func (d *Directory) IsEmployee(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	employee, err := d.repo.GetByUserID(ctx, userID)
	if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
		return false, nil
	}
	if err != nil {
		d.logger.Error("IsEmployee: repository error for user=%s: %v", userID, err)
		return false, fmt.Errorf("%w: IsEmployee - repository error: %w", domain.ErrPersistence, err)
	}

	return employee.Active, nil
}
