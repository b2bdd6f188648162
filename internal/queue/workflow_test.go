package queue

import (
	"context"
	"testing"

	"github.com/lumberg/petitions/internal/config"
	"github.com/lumberg/petitions/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTransferPairs(t *testing.T) {
	cfg := config.RabbitMQConfig{QueuePrefix: "petitions"}

	pairs := DefaultTransferPairs(cfg)
	require.Len(t, pairs, 2)

	assert.Equal(t, PairPendingSignatures, pairs[0].Kind)
	assert.Equal(t, "petitions.signatures_pending", pairs[0].Queue)
	assert.Equal(t, "signatures_pending", pairs[0].Table)

	assert.Equal(t, PairValidations, pairs[1].Kind)
	assert.Equal(t, "petitions.validations", pairs[1].Queue)
	assert.Equal(t, "validations", pairs[1].Table)
}

func TestWorkflowRunProcessesAllPairs(t *testing.T) {
	consumer := newFakeConsumer()
	consumer.push("petitions.signatures_pending", pendingSignatureBody(t, "key-1"))
	consumer.push("petitions.validations", validationBody(t, "key-2"))

	sink := newFakeSink()
	recorder := metrics.New(prometheus.NewRegistry())

	worker := NewWorker(consumer, sink, recorder)
	pairs := DefaultTransferPairs(config.RabbitMQConfig{QueuePrefix: "petitions"})
	workflow := NewWorkflow(worker, pairs, 50, recorder)

	result := workflow.Run(context.Background(), "job-1", "app-1", "test", nil)

	require.NotNil(t, result)
	assert.Equal(t, "job-1", result.JobID)
	require.Len(t, result.Results, 2)
	assert.Equal(t, 2, result.Saved())
	assert.Equal(t, 0, result.Failed())

	require.Len(t, sink.signatures, 1)
	require.Len(t, sink.validations, 1)
}

func TestWorkflowRunAlwaysReturnsSummary(t *testing.T) {
	// All items failing to persist still yields a summary, never a panic or
	// error: failures are visible through the counters only.
	consumer := newFakeConsumer()
	consumer.push("petitions.signatures_pending", pendingSignatureBody(t, "key-1"))

	sink := newFakeSink()
	sink.insertSignatureErr = assert.AnError

	worker := NewWorker(consumer, sink, nil)
	pairs := DefaultTransferPairs(config.RabbitMQConfig{QueuePrefix: "petitions"})
	workflow := NewWorkflow(worker, pairs, 10, nil)

	result := workflow.Run(context.Background(), "job-2", "app-1", "test", nil)

	require.NotNil(t, result)
	assert.Equal(t, 0, result.Saved())
	assert.Equal(t, 1, result.Failed())

	for _, res := range result.Results {
		assert.True(t, res.Consistent())
	}
}
