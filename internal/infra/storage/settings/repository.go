package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository репозиторий документов настроек (booking, notifications, points)
// Документ хранится как JSONB по ключу
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDocument возвращает JSON документа настроек по ключу
func (r *Repository) GetDocument(ctx context.Context, key string) ([]byte, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("value").
		From("settings").
		Where(squirrel.Eq{"key": key}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDocument - build select query: %v", ErrBuildQuery, err)
	}

	var value []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDocument - scan value: %w", ErrScanRow, err)
	}

	return value, nil
}
