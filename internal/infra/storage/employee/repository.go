package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository справочник сотрудников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUserID находит сотрудника по идентификатору пользователя чат-приложения
func (r *Repository) GetByUserID(ctx context.Context, userID string) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "name", "active").
		From("employees").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var employee domain.Employee
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&employee.ID,
		&employee.UserID,
		&employee.Name,
		&employee.Active,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan employee: %w", ErrScanRow, err)
	}

	return &employee, nil
}
