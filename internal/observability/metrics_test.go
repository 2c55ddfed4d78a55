package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/users/:id", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/users/:id", "GET", 200, 5*time.Millisecond)
	m.RecordError("validation", "invalid-email")
	m.IncUsersCreated()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/users/:id", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("validation", "invalid-email")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.usersCreated))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.tokensIssued))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("internal", "internal")
		m.IncUsersCreated()
		m.IncTokensIssued()
	})
}
