package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const sample = `
[server]
http_port = 8090

[database]
host = "db"
port = 5432
user = "salon"
password = "from-file"
dbname = "salon"

[logs]
level = "debug"

[booking]
hold_unpaid_slots = true
timezone = "America/Asuncion"

[business]
name = "Glavamon Centro"
open_time = "08:30"
close_time = "19:00"
slot_duration = 45
days_off = [0, 1]
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))

	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Booking.HoldUnpaidSlots)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 85, cfg.ImageHost.JPEGQuality)
	assert.Equal(t, "host=db port=5432 user=salon password=from-file dbname=salon sslmode=disable", cfg.Database.DSN())

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Asuncion", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("IMAGEHOST_API_KEY", "imgbb-key")
	t.Setenv("REDIS_PASSWORD", "redis-secret")
	t.Setenv("HTTP_PORT", "9000")

	cfg, err := Load(writeConfig(t, sample))

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "imgbb-key", cfg.ImageHost.APIKey)
	assert.Equal(t, "redis-secret", cfg.Redis.Password)
	assert.Equal(t, 9000, cfg.Server.HTTPPort)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad port":       "[server]\nhttp_port = 70000\n[database]\nhost = \"db\"\ndbname = \"salon\"\n",
		"no dbname":      "[database]\nhost = \"db\"\n",
		"bad open time":  "[database]\nhost = \"db\"\ndbname = \"salon\"\n[business]\nopen_time = \"8:30\"\n",
		"reversed hours": "[database]\nhost = \"db\"\ndbname = \"salon\"\n[business]\nopen_time = \"20:00\"\nclose_time = \"09:00\"\n",
		"bad weekday":    "[database]\nhost = \"db\"\ndbname = \"salon\"\n[business]\ndays_off = [7]\n",
		"bad timezone":   "[database]\nhost = \"db\"\ndbname = \"salon\"\n[booking]\ntimezone = \"Mars/Olympus\"\n",
		"short slot":     "[database]\nhost = \"db\"\ndbname = \"salon\"\n[business]\nslot_duration = 3\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	t.Run("bad env port", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "eighty")
		_, err := Load(writeConfig(t, sample))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
}

func TestBusinessConfig_Overlay(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	got := cfg.Business.Overlay(domain.DefaultBusinessConfig())

	assert.Equal(t, "Glavamon Centro", got.BusinessName)
	assert.Equal(t, "08:30", got.OpenTime.String())
	assert.Equal(t, "19:00", got.CloseTime.String())
	assert.Equal(t, 45, got.SlotDuration)
	assert.Equal(t, []time.Weekday{time.Sunday, time.Monday}, got.DaysOff)
	assert.Equal(t, domain.DefaultCurrency, got.Currency)
}

func TestBusinessConfig_OverlayEmptyKeepsDefaults(t *testing.T) {
	d := domain.DefaultBusinessConfig()

	got := BusinessConfig{}.Overlay(d)

	assert.Equal(t, d, got)
}
