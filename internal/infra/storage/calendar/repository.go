package calendar

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository записи календаря для подтверждённых бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет запись календаря бронирования
func (r *Repository) Upsert(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	start, end, title := eventWindow(booking)

	query, args, err := psqlbuilder.Insert("calendar_events").
		Columns("booking_id", "title", "start_date", "start_time", "end_date", "technician_id", "status").
		Values(booking.ID, title, start, startTime(booking), end, booking.TechnicianID, booking.Status).
		Suffix(`ON CONFLICT (booking_id) DO UPDATE SET
			title = EXCLUDED.title,
			start_date = EXCLUDED.start_date,
			start_time = EXCLUDED.start_time,
			end_date = EXCLUDED.end_date,
			technician_id = EXCLUDED.technician_id,
			status = EXCLUDED.status,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет запись календаря бронирования (отсутствие записи не ошибка)
func (r *Repository) Delete(ctx context.Context, bookingID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("calendar_events").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

func eventWindow(b *domain.Booking) (start, end, title string) {
	if b.RoomInfo != nil {
		title = "Room " + b.RoomInfo.RoomNumber + " - " + b.Customer.Name
		return b.RoomInfo.CheckInDate.String(), b.RoomInfo.CheckOutDate.String(), title
	}
	title = b.Customer.Name
	if b.ServiceInfo != nil {
		title = b.ServiceInfo.Name + " - " + b.Customer.Name
	}
	return b.Date.String(), b.Date.String(), title
}

func startTime(b *domain.Booking) interface{} {
	if b.Time.IsZero() {
		return nil
	}
	return b.Time.String()
}
