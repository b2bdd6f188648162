package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes counters for the receive workflow, labelled by source
// queue.
type Recorder struct {
	itemsSaved     *prometheus.CounterVec
	itemsSkipped   *prometheus.CounterVec
	itemsFailed    *prometheus.CounterVec
	itemsMalformed *prometheus.CounterVec
	queueDepth     *prometheus.GaugeVec
	workflowRuns   prometheus.Counter
}

// New creates a Recorder and registers its collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		itemsSaved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "petitions_items_saved_total",
			Help: "Queue items persisted to their destination table.",
		}, []string{"queue"}),
		itemsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "petitions_items_skipped_total",
			Help: "Queue items dropped as already-processed duplicates.",
		}, []string{"queue"}),
		itemsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "petitions_items_failed_total",
			Help: "Queue items that failed to persist and were released for retry.",
		}, []string{"queue"}),
		itemsMalformed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "petitions_items_malformed_total",
			Help: "Queue items discarded because their body could not be decoded.",
		}, []string{"queue"}),
		queueDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "petitions_queue_depth",
			Help: "Queue depth observed at batch start.",
		}, []string{"queue"}),
		workflowRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "petitions_workflow_runs_total",
			Help: "Receive workflow invocations.",
		}),
	}
}

// ObserveBatch records the counters of one batch against its queue label.
func (r *Recorder) ObserveBatch(queueName string, queued, saved, skipped, failed, malformed int) {
	if r == nil {
		return
	}

	r.queueDepth.WithLabelValues(queueName).Set(float64(queued))
	r.itemsSaved.WithLabelValues(queueName).Add(float64(saved))
	r.itemsSkipped.WithLabelValues(queueName).Add(float64(skipped))
	r.itemsFailed.WithLabelValues(queueName).Add(float64(failed))
	r.itemsMalformed.WithLabelValues(queueName).Add(float64(malformed))
}

// ObserveWorkflowRun increments the workflow invocation counter.
func (r *Recorder) ObserveWorkflowRun() {
	if r == nil {
		return
	}
	r.workflowRuns.Inc()
}
