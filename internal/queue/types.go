package queue

import (
	"github.com/lumberg/petitions/internal/config"
	"github.com/lumberg/petitions/internal/records"
)

// PairKind selects the record shape a transfer pair carries.
type PairKind string

const (
	PairPendingSignatures PairKind = "signatures_pending"
	PairValidations       PairKind = "validations"
)

// TransferPair binds a source queue to its destination table. The receive
// workflow processes each configured pair sequentially.
type TransferPair struct {
	Kind  PairKind
	Queue string
	Table string
}

// DefaultTransferPairs returns the two queue/table pairs of the receive
// workflow, with queue names qualified by the configured prefix.
func DefaultTransferPairs(cfg config.RabbitMQConfig) []TransferPair {
	return []TransferPair{
		{
			Kind:  PairPendingSignatures,
			Queue: cfg.GetQueueName(string(PairPendingSignatures)),
			Table: records.TableSignaturesPending,
		},
		{
			Kind:  PairValidations,
			Queue: cfg.GetQueueName(string(PairValidations)),
			Table: records.TableValidations,
		},
	}
}

// BatchResult holds the aggregate counters of one ProcessBatch invocation.
//
// Retrieved counts successfully claimed and decoded items, so
// Retrieved == Saved + Skipped + Failed holds for every batch. Claims that
// yield an empty or undecodable body are tallied in Malformed instead.
// Queued is the queue depth at batch start, informational only.
type BatchResult struct {
	Queue     string `json:"queue"`
	Queued    int    `json:"queued"`
	Retrieved int    `json:"retrieved"`
	Saved     int    `json:"saved"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
	Malformed int    `json:"malformed"`
}

// Consistent reports whether the counter identity holds.
func (r BatchResult) Consistent() bool {
	return r.Retrieved == r.Saved+r.Skipped+r.Failed
}
