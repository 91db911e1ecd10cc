package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(dbmetrics.Wrap(db)), mock
}

func TestRepository_GetOverlappingRoomBookings_HalfOpenWindow(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM bookings WHERE .*booking_type = \$1.*room_type_id = \$2.*status IN \(\$3,\$4\).*check_in_date < \$5.*check_out_date > \$6.*ORDER BY check_in_date ASC`).
		WithArgs("room", "deluxe", "pending", "confirmed", "2024-05-05", "2024-05-03").
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	bookings, err := repo.GetOverlappingRoomBookings(context.Background(), "deluxe", "2024-05-03", "2024-05-05",
		[]domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed})

	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountByTimeOnDate(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT time, COUNT\(\*\) FROM bookings WHERE .*booking_type = \$1.*date = \$2.*status IN \(\$3,\$4,\$5\).*GROUP BY time`).
		WithArgs("service", "2024-05-02", "pending", "confirmed", "blocked").
		WillReturnRows(sqlmock.NewRows([]string{"time", "count"}).
			AddRow("10:00", 2).
			AddRow("15:00", 1))

	counts, err := repo.CountByTimeOnDate(context.Background(), "2024-05-02",
		[]domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed, domain.StatusBlocked})

	require.NoError(t, err)
	assert.Equal(t, 2, counts["10:00"])
	assert.Equal(t, 1, counts["15:00"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountSlotBookings_ByTechnician(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE .*booking_type = \$1.*date = \$2.*status IN \(\$3\).*time = \$4.*technician_id = \$5`).
		WithArgs("service", "2024-05-02", "pending", "10:00", "T1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountSlotBookings(context.Background(), SlotFilter{
		Date:         "2024-05-02",
		Time:         "10:00",
		TechnicianID: ptr.Ptr("T1"),
		Statuses:     []domain.BookingStatus{domain.StatusPending},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ClaimPointsAward(t *testing.T) {
	repo, mock := newMockRepository(t)

	query := `UPDATE bookings SET points_purchase_awarded_at = NOW\(\) WHERE .*id = \$1.*points_purchase_awarded_at IS NULL`
	mock.ExpectExec(query).WithArgs("B1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs("B1").WillReturnResult(sqlmock.NewResult(0, 0))

	claimed, err := repo.ClaimPointsAward(context.Background(), "B1", domain.PointsPurchase)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.ClaimPointsAward(context.Background(), "B1", domain.PointsPurchase)
	require.NoError(t, err)
	assert.False(t, claimed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountByTimeOnDate_ExecError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM bookings`).WillReturnError(errors.New("connection reset"))

	_, err := repo.CountByTimeOnDate(context.Background(), "2024-05-02", []domain.BookingStatus{domain.StatusPending})

	assert.ErrorIs(t, err, ErrExecQuery)
}
