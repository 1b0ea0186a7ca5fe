package settings

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_Get_MergesWithDefaults(t *testing.T) {
	repo, mock := newTestRepository(t)
	updated := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data, updated_at FROM business_config WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"data", "updated_at"}).
			AddRow([]byte(`{"openTime":"10:00","slotDuration":45}`), updated))

	cfg, err := repo.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), cfg.OpenTime)
	assert.Equal(t, 45, cfg.SlotDuration)
	assert.Equal(t, types.TimeString("20:00"), cfg.CloseTime)
	assert.Equal(t, "PYG", cfg.Currency)
	assert.Equal(t, updated, cfg.UpdatedAt)
}

func TestRepository_Get_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM business_config")).
		WillReturnRows(sqlmock.NewRows([]string{"data", "updated_at"}))

	_, err := repo.Get(context.Background())

	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestRepository_Save(t *testing.T) {
	repo, mock := newTestRepository(t)
	updated := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO business_config (id,data) VALUES ($1,$2) ON CONFLICT (id) DO UPDATE")).
		WithArgs(1, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updated))

	cfg := domain.DefaultBusinessConfig()
	saved, err := repo.Save(context.Background(), &cfg)

	require.NoError(t, err)
	assert.Equal(t, updated, saved.UpdatedAt)
	assert.True(t, cfg.UpdatedAt.IsZero(), "input must not be mutated")
	assert.NoError(t, mock.ExpectationsWereMet())
}
