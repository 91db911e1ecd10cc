package customer

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

var nowExpr = squirrel.Expr("NOW()")

// Repository репозиторий карточек клиентов
// Клиент идентифицируется по телефону
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertOnBooking создает карточку клиента или обновляет её при новом бронировании
func (r *Repository) UpsertOnBooking(ctx context.Context, info domain.CustomerInfo) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("phone", "name", "user_id", "total_bookings", "last_booking_at").
		Values(info.Phone, info.Name, info.UserID, 1, nowExpr).
		Suffix(`ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name,
			user_id = COALESCE(EXCLUDED.user_id, customers.user_id),
			total_bookings = customers.total_bookings + 1,
			last_booking_at = NOW(),
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertOnBooking - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertOnBooking - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

// RecordVisit фиксирует завершённый визит клиента и потраченную сумму
func (r *Repository) RecordVisit(ctx context.Context, info domain.CustomerInfo, spent int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("phone", "name", "user_id", "total_visits", "total_spent", "last_visit_at").
		Values(info.Phone, info.Name, info.UserID, 1, spent, nowExpr).
		Suffix(`ON CONFLICT (phone) DO UPDATE SET
			user_id = COALESCE(EXCLUDED.user_id, customers.user_id),
			total_visits = customers.total_visits + 1,
			total_spent = customers.total_spent + EXCLUDED.total_spent,
			last_visit_at = NOW(),
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RecordVisit - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RecordVisit - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}
