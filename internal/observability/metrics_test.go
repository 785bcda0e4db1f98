package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	metrics := NewMetrics()

	metrics.RecordRequest("/books", "GET", 200, 5*time.Millisecond)
	metrics.RecordError("/books", "GET", "NOT_FOUND")
	metrics.RecordError("/books", "GET", "NOT_FOUND")

	assert.Equal(t, int64(2), metrics.ErrorCount("/books", "GET", "NOT_FOUND"))
	assert.Zero(t, metrics.ErrorCount("/books", "GET", "UNAUTHORIZED"))
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var metrics *Metrics
	metrics.RecordRequest("/books", "GET", 200, time.Millisecond)
	metrics.RecordError("/books", "GET", "NOT_FOUND")
	assert.Zero(t, metrics.ErrorCount("/books", "GET", "NOT_FOUND"))
}
