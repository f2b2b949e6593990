package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests counters.
func TestMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry()).(*provider)

	m.ObserveRefresh(nil)
	m.ObserveRefresh(nil)
	m.ObserveRefresh(errors.New("test"))
	m.ObserveOpen(errors.New("test"))
	m.SetAccessoriesCount(3)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.refreshTotal.WithLabelValues(resultSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.refreshTotal.WithLabelValues(resultError)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.openTotal.WithLabelValues(resultError)))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.openTotal.WithLabelValues(resultSuccess)))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.accessories))
}

// Tests HTTP exposure.
func TestHandler(t *testing.T) {
	m := NewMetrics(nil)
	m.SetAccessoriesCount(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "kiwi_bridge_accessories 1")
}
