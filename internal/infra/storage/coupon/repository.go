package coupon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository репозиторий купонов пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория купонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUserAndID получает купон пользователя по ID
// Купон другого пользователя считается ненайденным
func (r *Repository) GetByUserAndID(ctx context.Context, userID, couponID string) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"name",
		"discount_type",
		"discount_value",
		"used",
		"used_at",
		"booking_id",
		"created_at",
	).
		From("coupons").
		Where(squirrel.Eq{"id": couponID, "user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserAndID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		coupon       domain.Coupon
		discountType string
		usedAt       sql.NullTime
		bookingID    sql.NullString
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&coupon.ID,
		&coupon.UserID,
		&coupon.Name,
		&discountType,
		&coupon.DiscountValue,
		&coupon.Used,
		&usedAt,
		&bookingID,
		&coupon.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserAndID - scan coupon: %w", ErrScanRow, err)
	}

	// Тип скидки в исторических данных встречается в разном регистре
	coupon.DiscountType = domain.DiscountType(strings.ToLower(discountType))
	if usedAt.Valid {
		t := usedAt.Time
		coupon.UsedAt = &t
	}
	if bookingID.Valid {
		id := bookingID.String
		coupon.BookingID = &id
	}

	return &coupon, nil
}

// MarkUsed атомарно переводит купон в использованный (used=false -> true)
// и привязывает его к бронированию. Возвращает false, если купон уже использован.
func (r *Repository) MarkUsed(ctx context.Context, couponID, bookingID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("coupons").
		Set("used", true).
		Set("used_at", squirrel.Expr("NOW()")).
		Set("booking_id", bookingID).
		Where(squirrel.Eq{"id": couponID, "used": false}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkUsed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkUsed - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkUsed - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}
