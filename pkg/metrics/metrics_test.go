package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "appointments")

	m.IncBookingTransition("confirm")
	m.IncBookingTransition("confirm")
	m.IncSlotConflict("create")
	m.IncNotification("created", "failed")
	m.ObserveDBQuery("insert", 0.01, errors.New("boom"))
	m.SetDBConnections(5, 2, 3)
	m.ObserveHTTPRequest("POST", "/api/v1/bookings", 409, 0.02)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingTransitions.WithLabelValues("appointments", "confirm")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotConflicts.WithLabelValues("appointments", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("appointments", "created", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("appointments", "insert")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DBConnections.WithLabelValues("appointments", "in_use")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("appointments", "POST", "/api/v1/bookings", "409")))
}
