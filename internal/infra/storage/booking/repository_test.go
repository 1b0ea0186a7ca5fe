package booking

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
)

var (
	bookingDate = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	createdAt   = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, *dbmetrics.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	repo := NewRepository(wrapped)
	repo.newID = func() string { return "7d0f4a1e-1111-4c2b-9a55-000000000001" }
	return repo, mock, wrapped
}

func bookingRow(id string, date interface{}, status domain.BookingStatus) []driver.Value {
	return []driver.Value{
		id,
		"user-1",
		"Lucía",
		"lucia@example.com",
		"+595981000000",
		[]byte(`[{"id":"cut","name":"Corte","price":45,"duration":45},{"id":"wash","name":"Lavado","price":25,"duration":25}]`),
		"maria",
		"María",
		date,
		"10:00",
		70.0,
		70,
		string(status),
		"pending",
		"transfer",
		nil,
		nil,
		nil,
		nil,
		"",
		createdAt,
		createdAt,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock, _ := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(createdAt, createdAt))

	created, err := repo.Create(context.Background(), &domain.Booking{
		UserID:        "user-1",
		Services:      []domain.ServiceItem{{ID: "cut", Price: 45, Duration: 45}},
		StylistID:     "maria",
		Date:          bookingDate,
		TimeSlot:      "10:00",
		TotalPrice:    45,
		TotalDuration: 45,
		Status:        domain.StatusPendingPayment,
		PaymentStatus: domain.PaymentPending,
		PaymentMethod: domain.PaymentMethodTransfer,
	})

	require.NoError(t, err)
	assert.Equal(t, "7d0f4a1e-1111-4c2b-9a55-000000000001", created.ID)
	assert.Equal(t, createdAt, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_SlotConflict(t *testing.T) {
	tests := []struct {
		name string
		code pq.ErrorCode
	}{
		{name: "unique violation", code: "23505"},
		{name: "serialization failure", code: "40001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, _ := newTestRepository(t)
			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
				WillReturnError(&pq.Error{Code: tt.code})

			_, err := repo.Create(context.Background(), &domain.Booking{
				Date:     bookingDate,
				TimeSlot: "10:00",
				Status:   domain.StatusPendingPayment,
			})

			assert.ErrorIs(t, err, ErrSlotConflict)
		})
	}
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock, _ := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(bookingRow("b1", bookingDate, domain.StatusPendingPayment)...))

	b, err := repo.GetByID(context.Background(), "b1")

	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, bookingDate, b.Date)
	assert.Len(t, b.Services, 2)
	assert.Equal(t, 70.0, b.TotalPrice)
	assert.Equal(t, domain.StatusPendingPayment, b.Status)
	assert.Nil(t, b.PaymentProofURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, _ := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_List_UserFilterAndOrder(t *testing.T) {
	repo, mock, _ := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE user_id = $1 AND status IN ($2,$3) ORDER BY booking_date DESC NULLS LAST, time_slot DESC, created_at DESC",
	)).
		WithArgs("user-1", domain.StatusPending, domain.StatusConfirmed).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(bookingRow("b1", bookingDate, domain.StatusConfirmed)...).
			AddRow(bookingRow("b2", nil, domain.StatusPending)...))

	list, err := repo.List(context.Background(), domain.BookingsFilter{
		UserID:   ptr.Ptr("user-1"),
		Statuses: []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed},
	})

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].HasDate())
	assert.False(t, list[1].HasDate(), "NULL date degrades to zero")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_CorruptDateDegrades(t *testing.T) {
	repo, mock, _ := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(bookingRow("b1", "not-a-date", domain.StatusPending)...))

	list, err := repo.List(context.Background(), domain.BookingsFilter{})

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].HasDate())
}

func TestRepository_GetActiveForDate_LocksInsideTx(t *testing.T) {
	repo, mock, db := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE status IN ($1,$2) AND booking_date >= $3 AND booking_date <= $4 ORDER BY booking_date ASC, time_slot ASC, created_at ASC FOR UPDATE",
	)).
		WithArgs(domain.StatusPending, domain.StatusConfirmed, "2025-03-14", "2025-03-14").
		WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	list, err := repo.GetActiveForDate(ctx, bookingDate, domain.BlockingStatuses)

	require.NoError(t, err)
	assert.Empty(t, list)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_NoLockOutsideTx(t *testing.T) {
	repo, mock, _ := newTestRepository(t)

	mock.ExpectQuery(`created_at ASC$`).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetActiveForDate(context.Background(), bookingDate, domain.BlockingStatuses)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Transition(t *testing.T) {
	repo, mock, _ := newTestRepository(t)

	row := bookingRow("b1", bookingDate, domain.StatusPendingConfirmation)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings SET status = $1")).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(row...))

	b, err := repo.Transition(context.Background(), "b1",
		domain.AllowedSources(domain.EventSubmitProof),
		domain.BookingChange{
			Status:               domain.StatusPendingConfirmation,
			PaymentProofURL:      ptr.Ptr("https://i.ibb.co/x/proof.jpg"),
			ClearRejectionReason: true,
		})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingConfirmation, b.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Transition_Miss(t *testing.T) {
	tests := []struct {
		name       string
		statusRows *sqlmock.Rows
		wantErr    error
	}{
		{
			name:       "wrong status",
			statusRows: sqlmock.NewRows([]string{"status"}).AddRow("completed"),
			wantErr:    ErrInvalidTransition,
		},
		{
			name:       "unknown id",
			statusRows: sqlmock.NewRows([]string{"status"}),
			wantErr:    ErrBookingNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, _ := newTestRepository(t)

			mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings")).
				WillReturnRows(sqlmock.NewRows(columns))
			mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM bookings WHERE id = $1")).
				WithArgs("b1").
				WillReturnRows(tt.statusRows)

			_, err := repo.Transition(context.Background(), "b1",
				domain.AllowedSources(domain.EventCancel),
				domain.BookingChange{Status: domain.StatusCancelled})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_SetStatus(t *testing.T) {
	repo, mock, _ := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(domain.StatusPending, "b1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(bookingRow("b1", bookingDate, domain.StatusPending)...))

	b, err := repo.SetStatus(context.Background(), "b1", domain.StatusPending)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, b.Status)

	_, err = repo.SetStatus(context.Background(), "b1", "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}
