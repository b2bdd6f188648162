package queue

import (
	"context"

	"github.com/lumberg/petitions/internal/metrics"
	"github.com/lumberg/petitions/internal/records"
	"github.com/lumberg/petitions/internal/util"
	"github.com/rs/zerolog"
)

// Sink is the storage surface the batch transfer worker writes to. Inserts
// return an error on constraint or connection failure; ValidationProcessed
// is a read-only existence check against the processed-validations ledger.
type Sink interface {
	InsertPendingSignature(ctx context.Context, rec *records.PendingSignature) error
	InsertValidation(ctx context.Context, rec *records.Validation) error
	ValidationProcessed(ctx context.Context, secretKey string) (bool, error)
}

// Worker drains queue items into their destination tables, one batch at a
// time. It performs no locking of its own: mutual exclusion per item is
// delegated to the consumer's claim semantics.
type Worker struct {
	consumer Consumer
	sink     Sink
	metrics  *metrics.Recorder
}

// NewWorker creates a batch transfer worker. The metrics recorder may be
// nil.
func NewWorker(consumer Consumer, sink Sink, recorder *metrics.Recorder) *Worker {
	return &Worker{
		consumer: consumer,
		sink:     sink,
		metrics:  recorder,
	}
}

// ProcessBatch claims up to maxBatchSize items from the pair's queue and
// moves them to the pair's table.
//
// Per item: a duplicate (validations only, secret key already in the
// processed ledger) is deleted from the queue without touching the table; a
// malformed body is logged and discarded; a persistence failure leaves the
// item in the queue for the next run. Item-level errors never abort the
// batch and ProcessBatch itself never fails, it always returns the counter
// summary.
func (w *Worker) ProcessBatch(ctx context.Context, pair TransferPair, maxBatchSize int) BatchResult {
	logger := util.LogFromContext(ctx).With().
		Str("queue", pair.Queue).
		Str("table", pair.Table).
		Logger()

	result := BatchResult{Queue: pair.Queue}

	depth, err := w.consumer.Depth(pair.Queue)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read queue depth")
	} else {
		result.Queued = depth
	}

	for i := 0; i < maxBatchSize; i++ {
		item, err := w.consumer.Claim(ctx, pair.Queue)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to claim item, aborting batch")
			break
		}
		if item == nil {
			// Queue drained
			break
		}

		w.processItem(ctx, &logger, pair, item, &result)
	}

	logEvent := logger.Info()
	if result.Failed > 0 {
		logEvent = logger.Error()
	}
	logEvent.
		Int("queued", result.Queued).
		Int("retrieved", result.Retrieved).
		Int("saved", result.Saved).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Int("malformed", result.Malformed).
		Msg("Batch transfer finished")

	w.metrics.ObserveBatch(pair.Queue, result.Queued, result.Saved, result.Skipped, result.Failed, result.Malformed)

	return result
}

func (w *Worker) processItem(ctx context.Context, logger *zerolog.Logger, pair TransferPair, item *Item, result *BatchResult) {
	switch pair.Kind {
	case PairPendingSignatures:
		rec, err := records.DecodePendingSignature(item.Body)
		if err != nil {
			w.discardMalformed(logger, item, err, result)
			return
		}
		result.Retrieved++

		if err := w.sink.InsertPendingSignature(ctx, rec); err != nil {
			w.releaseFailed(logger, item, err, result)
			return
		}

		w.deleteSaved(logger, item, result)

	case PairValidations:
		rec, err := records.DecodeValidation(item.Body)
		if err != nil {
			w.discardMalformed(logger, item, err, result)
			return
		}
		result.Retrieved++

		processed, err := w.sink.ValidationProcessed(ctx, rec.SecretValidationKey)
		if err != nil {
			w.releaseFailed(logger, item, err, result)
			return
		}

		if processed {
			// True duplicate: remove from the queue, never write the table.
			result.Skipped++
			if err := w.consumer.Delete(item); err != nil {
				logger.Warn().Err(err).Str("item_id", item.ID).Msg("Failed to delete duplicate item")
			}
			logger.Warn().
				Str("item_id", item.ID).
				Msg("Skipped already-processed validation")
			return
		}

		if err := w.sink.InsertValidation(ctx, rec); err != nil {
			w.releaseFailed(logger, item, err, result)
			return
		}

		w.deleteSaved(logger, item, result)

	default:
		// Misconfigured pair; leave the item claimable elsewhere.
		result.Retrieved++
		w.releaseFailed(logger, item, ErrUnknownPairKind, result)
	}
}

func (w *Worker) discardMalformed(logger *zerolog.Logger, item *Item, cause error, result *BatchResult) {
	result.Malformed++
	if err := w.consumer.Discard(item); err != nil {
		logger.Warn().Err(err).Str("item_id", item.ID).Msg("Failed to discard malformed item")
	}
	logger.Warn().
		Err(cause).
		Str("item_id", item.ID).
		Msg("Discarded malformed queue item")
}

func (w *Worker) releaseFailed(logger *zerolog.Logger, item *Item, cause error, result *BatchResult) {
	result.Failed++
	// Keep the item in the queue so the next run retries it.
	if err := w.consumer.Release(item); err != nil {
		logger.Warn().Err(err).Str("item_id", item.ID).Msg("Failed to release item back to queue")
	}
	logger.Error().
		Err(cause).
		Str("item_id", item.ID).
		Msg("Failed to persist queue item, left in queue for retry")
}

func (w *Worker) deleteSaved(logger *zerolog.Logger, item *Item, result *BatchResult) {
	result.Saved++
	if err := w.consumer.Delete(item); err != nil {
		logger.Warn().Err(err).Str("item_id", item.ID).Msg("Failed to delete saved item")
	}
	logger.Debug().
		Str("item_id", item.ID).
		Msg("Saved queue item")
}
