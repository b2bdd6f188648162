package queue

import (
	"context"

	"github.com/lumberg/petitions/internal/metrics"
	"github.com/lumberg/petitions/internal/util"
	"github.com/rs/zerolog/log"
)

// WorkflowResult summarizes one receive workflow invocation.
type WorkflowResult struct {
	JobID   string        `json:"job_id"`
	Results []BatchResult `json:"results"`
}

// Saved returns the total number of rows persisted across all pairs.
func (r *WorkflowResult) Saved() int {
	var n int
	for _, res := range r.Results {
		n += res.Saved
	}
	return n
}

// Failed returns the total number of items left in their queues for retry.
func (r *WorkflowResult) Failed() int {
	var n int
	for _, res := range r.Results {
		n += res.Failed
	}
	return n
}

// Workflow runs the batch transfer worker once per configured queue/table
// pair, sequentially. Options is reserved for future tuning and currently
// unused.
type Workflow struct {
	worker    *Worker
	pairs     []TransferPair
	batchSize int
	metrics   *metrics.Recorder
}

// WorkflowOptions is reserved for future tuning of a single invocation.
type WorkflowOptions map[string]string

// NewWorkflow creates the receive workflow over the given pairs.
func NewWorkflow(worker *Worker, pairs []TransferPair, batchSize int, recorder *metrics.Recorder) *Workflow {
	return &Workflow{
		worker:    worker,
		pairs:     pairs,
		batchSize: batchSize,
		metrics:   recorder,
	}
}

// Run drains each pair once and returns the per-pair summaries. The job,
// server and worker identifiers are attached to every log line for
// correlation across distributed workers.
//
// Run never fails: item-level errors are retried on the next invocation and
// surface only through logs, counters and metrics. Callers that need to
// distinguish a clean run from one with failures must inspect the result.
func (wf *Workflow) Run(ctx context.Context, jobID, serverName, workerName string, _ WorkflowOptions) *WorkflowResult {
	logger := log.With().
		Str("job_id", jobID).
		Str("server", serverName).
		Str("worker", workerName).
		Logger()
	ctx = util.WithLogger(ctx, logger)

	logger.Info().
		Int("pairs", len(wf.pairs)).
		Int("batch_size", wf.batchSize).
		Msg("Starting receive workflow")

	wf.metrics.ObserveWorkflowRun()

	result := &WorkflowResult{JobID: jobID}

	for _, pair := range wf.pairs {
		res := wf.worker.ProcessBatch(ctx, pair, wf.batchSize)
		result.Results = append(result.Results, res)

		logger.Info().
			Str("queue", pair.Queue).
			Int("queued", res.Queued).
			Int("retrieved", res.Retrieved).
			Int("saved", res.Saved).
			Int("skipped", res.Skipped).
			Int("failed", res.Failed).
			Msg("Receive workflow pair finished")
	}

	logger.Info().
		Int("saved", result.Saved()).
		Int("failed", result.Failed()).
		Msg("Receive workflow finished")

	return result
}
