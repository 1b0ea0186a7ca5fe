package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("salon", prometheus.NewRegistry())

	m.IncBookingCreated()
	m.IncBookingCreated()
	m.IncTransition("confirm_payment")
	m.IncSlotConflict()
	m.ObserveHTTPRequest("GET", "/api/v1/config", 200, 10*time.Millisecond)
	m.ObserveDBQuery("bookings.create", time.Millisecond, errors.New("boom"))
	m.ObserveDBQuery("bookings.get", time.Millisecond, sql.ErrNoRows)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookings))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("confirm_payment")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/config", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbErrors.WithLabelValues("bookings.create")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.dbErrors.WithLabelValues("bookings.get")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingCreated()
		m.IncTransition("cancel")
		m.IncSlotConflict()
		m.ObserveHTTPRequest("GET", "/", 200, time.Second)
		m.ObserveDBQuery("op", time.Second, nil)
		m.SetDBPoolStats(sql.DBStats{})
	})
}
