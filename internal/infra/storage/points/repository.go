package points

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository журнал начислений баллов лояльности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория баллов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Award записывает начисление баллов пользователю по бронированию
func (r *Repository) Award(ctx context.Context, userID, bookingID string, kind domain.PointKind, amount int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("point_transactions").
		Columns("id", "user_id", "booking_id", "kind", "points").
		Values(uuid.NewString(), userID, bookingID, kind, amount).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Award - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Award - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
