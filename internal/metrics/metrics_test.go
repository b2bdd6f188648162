package metrics_test

import (
	"testing"

	"github.com/lumberg/petitions/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveBatch(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := metrics.New(registry)

	recorder.ObserveBatch("petitions.validations", 10, 6, 2, 1, 1)
	recorder.ObserveBatch("petitions.validations", 4, 4, 0, 0, 0)
	recorder.ObserveWorkflowRun()

	families, err := registry.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				values[family.GetName()] += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				values[family.GetName()] = metric.GetGauge().GetValue()
			}
		}
	}

	assert.Equal(t, float64(10), values["petitions_items_saved_total"])
	assert.Equal(t, float64(2), values["petitions_items_skipped_total"])
	assert.Equal(t, float64(1), values["petitions_items_failed_total"])
	assert.Equal(t, float64(1), values["petitions_items_malformed_total"])
	assert.Equal(t, float64(1), values["petitions_workflow_runs_total"])

	// Depth is a gauge and reflects the most recent batch.
	assert.Equal(t, float64(4), values["petitions_queue_depth"])
}

func TestNilRecorderIsSafe(t *testing.T) {
	var recorder *metrics.Recorder

	assert.NotPanics(t, func() {
		recorder.ObserveBatch("petitions.validations", 1, 1, 0, 0, 0)
		recorder.ObserveWorkflowRun()
	})
}
