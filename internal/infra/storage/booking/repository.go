package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// SlotFilter параметры подсчёта бронирований в слоте услуги
type SlotFilter struct {
	Date         types.DateString
	Time         types.TimeString
	TechnicianID *string // nil - все мастера
	Statuses     []domain.BookingStatus
}

// AcquireAdmissionLock берёт транзакционную advisory-блокировку по ключу
// (слот услуги или тип номера). Блокировка снимается при commit/rollback.
// Вызывать только внутри транзакции.
func (r *Repository) AcquireAdmissionLock(ctx context.Context, key string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: AcquireAdmissionLock - must be called inside transaction", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("%w: AcquireAdmissionLock - key=%s: %w", ErrExecQuery, key, err)
	}
	return nil
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	serviceInfo, err := marshalSnapshot(booking.ServiceInfo, booking.ServiceInfo == nil)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - service_info: %v", ErrMarshal, err)
	}
	roomTypeInfo, err := marshalSnapshot(booking.RoomTypeInfo, booking.RoomTypeInfo == nil)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - room_type_info: %v", ErrMarshal, err)
	}

	var (
		roomTypeID, roomID, roomNumber interface{}
		checkIn, checkOut              interface{}
		nights, rooms, guests          interface{}
	)
	if info := booking.RoomInfo; info != nil {
		roomTypeID = info.RoomTypeID
		roomID = optString(info.RoomID)
		roomNumber = optString(info.RoomNumber)
		checkIn = info.CheckInDate.String()
		checkOut = info.CheckOutDate.String()
		nights = info.Nights
		rooms = info.Rooms
		guests = info.Guests
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"booking_type",
			"status",
			"date",
			"time",
			"technician_id",
			"room_type_id",
			"room_id",
			"room_number",
			"check_in_date",
			"check_out_date",
			"nights",
			"rooms",
			"guests",
			"customer_name",
			"customer_phone",
			"customer_user_id",
			"service_info",
			"room_type_info",
			"original_price",
			"discount",
			"total_price",
			"payment_status",
			"payment_method",
			"payment_due_at",
			"coupon_id",
			"notes",
		).
		Values(
			booking.ID,
			booking.Type,
			booking.Status,
			optString(booking.Date.String()),
			optString(booking.Time.String()),
			booking.TechnicianID,
			roomTypeID,
			roomID,
			roomNumber,
			checkIn,
			checkOut,
			nights,
			rooms,
			guests,
			booking.Customer.Name,
			booking.Customer.Phone,
			booking.Customer.UserID,
			serviceInfo,
			roomTypeInfo,
			booking.Payment.OriginalPrice,
			booking.Payment.Discount,
			booking.Payment.TotalPrice,
			booking.Payment.PaymentStatus,
			optString(booking.Payment.PaymentMethod),
			booking.Payment.PaymentDueAt,
			booking.CouponID,
			booking.Notes,
		).
		Suffix("RETURNING version, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.Version,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerUserID получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerUserID(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_user_id": userID}).
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountSlotBookings считает бронирования услуг в слоте (date, time)
// с указанными статусами, опционально только у конкретного мастера
func (r *Repository) CountSlotBookings(ctx context.Context, filter SlotFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"booking_type": domain.BookingTypeService,
			"date":         filter.Date.String(),
			"time":         filter.Time.String(),
			"status":       statusStrings(filter.Statuses),
		})

	if filter.TechnicianID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"technician_id": *filter.TechnicianID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountSlotBookings - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountSlotBookings - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// CountByTimeOnDate количество бронирований услуг на дату по каждому времени
func (r *Repository) CountByTimeOnDate(ctx context.Context, date types.DateString, statuses []domain.BookingStatus) (map[types.TimeString]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time", "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"booking_type": domain.BookingTypeService,
			"date":         date.String(),
			"status":       statusStrings(statuses),
		}).
		GroupBy("time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByTimeOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByTimeOnDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[types.TimeString]int)
	for rows.Next() {
		var (
			tm    string
			count int
		)
		if err := rows.Scan(&tm, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByTimeOnDate - scan row: %w", ErrScanRow, err)
		}
		counts[types.TimeString(tm)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByTimeOnDate - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

// GetOverlappingRoomBookings получает бронирования типа номера с указанными статусами,
// период которых пересекается с [checkIn, checkOut).
// Даты хранятся как YYYY-MM-DD, поэтому строковое сравнение совпадает с календарным.
func (r *Repository) GetOverlappingRoomBookings(
	ctx context.Context,
	roomTypeID string,
	checkIn, checkOut types.DateString,
	statuses []domain.BookingStatus,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"booking_type": domain.BookingTypeRoom,
			"room_type_id": roomTypeID,
			"status":       statusStrings(statuses),
		}).
		Where(squirrel.Lt{"check_in_date": checkOut.String()}).
		Where(squirrel.Gt{"check_out_date": checkIn.String()}).
		OrderBy("check_in_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingRoomBookings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingRoomBookings - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Update сохраняет изменяемые поля бронирования с проверкой версии
// (optimistic concurrency). При успехе booking.Version увеличивается.
// Snapshot-поля и цена не изменяются.
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", booking.Status).
		Set("payment_status", booking.Payment.PaymentStatus).
		Set("payment_method", optString(booking.Payment.PaymentMethod)).
		Set("paid_at", booking.Payment.PaidAt).
		Set("confirmed_at", booking.ConfirmedAt).
		Set("started_at", booking.StartedAt).
		Set("completed_at", booking.CompletedAt).
		Set("completion_note", booking.CompletionNote).
		Set("cancelled_at", booking.CancelledAt).
		Set("cancelled_by", actorValue(booking.CancelledBy)).
		Set("cancellation_reason", booking.CancellationReason).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID, "version": booking.Version}).
		Suffix("RETURNING version, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.Version, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Строки нет совсем или версия уже другая
		if _, getErr := r.GetByID(ctx, booking.ID); errors.Is(getErr, ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	booking.UpdatedAt = updatedAt.Time
	return nil
}

// ClaimPointsAward атомарно отмечает начисление баллов категории kind.
// Возвращает true, если отметка поставлена этим вызовом (баллы ещё не начислялись).
func (r *Repository) ClaimPointsAward(ctx context.Context, id string, kind domain.PointKind) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, err := pointsColumn(kind)
	if err != nil {
		return false, err
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set(column, squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, column: nil}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ClaimPointsAward - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: ClaimPointsAward - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: ClaimPointsAward - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// Delete удаляет бронирование (физическое удаление, только для администратора)
// Для обычной отмены используется статус cancelled
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func pointsColumn(kind domain.PointKind) (string, error) {
	switch kind {
	case domain.PointsPurchase:
		return "points_purchase_awarded_at", nil
	case domain.PointsVisit:
		return "points_visit_awarded_at", nil
	default:
		return "", fmt.Errorf("%w: unknown point kind %q", ErrBuildQuery, kind)
	}
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
