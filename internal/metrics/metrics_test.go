package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveTurn(t *testing.T) {
	before := testutil.ToFloat64(turnsTotal.WithLabelValues("greeting", "greeting"))

	ObserveTurn("greeting", "greeting", 0.95, time.Now())
	ObserveTurn("greeting", "greeting", 0.95, time.Now())

	after := testutil.ToFloat64(turnsTotal.WithLabelValues("greeting", "greeting"))
	assert.Equal(t, before+2, after)
}

func TestRegister_DefaultRegistry(t *testing.T) {
	Register()
	Register()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["agribot_reply_confidence"])
	assert.True(t, names["agribot_compose_latency_ms"])
}

func TestCounters(t *testing.T) {
	IncStoreError("planting_periods")
	assert.Equal(t, 1.0, testutil.ToFloat64(storeErrors.WithLabelValues("planting_periods")))

	IncWeatherRequest("weather", false)
	IncWeatherRequest("weather", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(weatherRequests.WithLabelValues("weather", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(weatherRequests.WithLabelValues("weather", "ok")))
}
