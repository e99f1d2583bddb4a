package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/carbonx_exchange/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.PurchaseAttempt(metrics.OutcomeSuccess)
		m.PurchaseRollback()
		m.EventPublished("SNAPSHOT")
		m.SetActiveObservers(3)
	})
}

func TestMetrics_HandlerExposesCounters(t *testing.T) {
	m := metrics.New()
	m.PurchaseAttempt(metrics.OutcomeSuccess)
	m.PurchaseAttempt(metrics.OutcomeAlreadySold)
	m.PurchaseAttempt(metrics.OutcomeAlreadySold)
	m.SetActiveObservers(2)

	count, err := testutil.GatherAndCount(m.Registry(), "carbonx_purchases_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `carbonx_purchases_total{outcome="already_sold"} 2`)
	assert.Contains(t, w.Body.String(), "carbonx_active_observers 2")
}
