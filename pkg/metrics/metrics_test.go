package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, family := range families {
		for _, m := range family.GetMetric() {
			key := family.GetName()
			for _, label := range m.GetLabel() {
				if label.GetName() == "service" {
					continue
				}
				key += "|" + label.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				values[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				values[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return values
}

func TestMetricsCollect(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("excursion-booking", reg)

	m.ObserveHTTPRequest("POST", "/api/v1/bookings", 201, 20*time.Millisecond)
	m.ObserveQuery("select", time.Millisecond, nil)
	m.ObserveQuery("select", time.Millisecond, sql.ErrNoRows)
	m.ObserveQuery("insert", time.Millisecond, errors.New("deadlock"))
	m.SetPoolStats(sql.DBStats{OpenConnections: 3, InUse: 1, Idle: 2})
	m.IncAdmission("admitted")
	m.IncAdmission("rejected_capacity")
	m.IncAdmission("admitted")

	values := gather(t, reg)
	assert.Equal(t, 1.0, values["http_requests_total|POST|/api/v1/bookings|201"])
	assert.Equal(t, 1.0, values["http_request_duration_seconds|POST|/api/v1/bookings"])
	assert.Equal(t, 2.0, values["db_queries_total|select|ok"])
	assert.Equal(t, 1.0, values["db_queries_total|insert|error"])
	assert.Equal(t, 3.0, values["db_connections|open"])
	assert.Equal(t, 2.0, values["booking_admissions_total|admitted"])
	assert.Equal(t, 1.0, values["booking_admissions_total|rejected_capacity"])
}
