package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository репозиторий каталога: услуги, типы номеров и номера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по ID вместе с тарифами, опциями и дополнениями
func (r *Repository) GetService(ctx context.Context, id string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"category",
		"price",
		"duration",
		"active",
		"areas",
		"area_options",
		"add_ons",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var (
		service                domain.Service
		category               sql.NullString
		areas, options, addOns []byte
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&category,
		&service.Price,
		&service.Duration,
		&service.Active,
		&areas,
		&options,
		&addOns,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	service.Category = category.String

	if err := unmarshalOptional(areas, &service.Areas); err != nil {
		return nil, fmt.Errorf("%w: GetService - areas: %v", ErrScanRow, err)
	}
	if err := unmarshalOptional(options, &service.AreaOptions); err != nil {
		return nil, fmt.Errorf("%w: GetService - area_options: %v", ErrScanRow, err)
	}
	if err := unmarshalOptional(addOns, &service.AddOns); err != nil {
		return nil, fmt.Errorf("%w: GetService - add_ons: %v", ErrScanRow, err)
	}

	return &service, nil
}

// GetRoomType получает тип номера по ID
func (r *Repository) GetRoomType(ctx context.Context, id string) (*domain.RoomType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"base_price",
		"max_guests",
		"description",
		"active",
	).
		From("room_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomType - build select query: %v", ErrBuildQuery, err)
	}

	var (
		roomType    domain.RoomType
		description sql.NullString
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&roomType.ID,
		&roomType.Name,
		&roomType.BasePrice,
		&roomType.MaxGuests,
		&description,
		&roomType.Active,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomType - scan room type: %w", ErrScanRow, err)
	}

	roomType.Description = description.String
	return &roomType, nil
}

// GetRoomsByType получает все номера типа (включая находящиеся на обслуживании)
func (r *Repository) GetRoomsByType(ctx context.Context, roomTypeID string) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "room_type_id", "number", "status").
		From("rooms").
		Where(squirrel.Eq{"room_type_id": roomTypeID}).
		OrderBy("number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomsByType - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomsByType - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		var (
			room   domain.Room
			status sql.NullString
		)
		if err := rows.Scan(&room.ID, &room.RoomTypeID, &room.Number, &status); err != nil {
			return nil, fmt.Errorf("%w: GetRoomsByType - scan row: %w", ErrScanRow, err)
		}
		room.Status = domain.RoomUnitStatus(status.String)
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRoomsByType - rows error: %w", ErrScanRow, err)
	}

	return rooms, nil
}

// unmarshalOptional NULL/пустой JSONB оставляет dst без изменений
func unmarshalOptional(data []byte, dst interface{}) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, dst)
}
