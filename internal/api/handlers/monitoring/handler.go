package monitoring

import (
	"context"
)

// QueueInspector is the queue surface the monitoring endpoints read.
type QueueInspector interface {
	Depth(queueName string) (int, error)
	IsHealthy() bool
}

// Pinger verifies the storage connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler handles monitoring and health requests
type Handler struct {
	inspector  QueueInspector
	pinger     Pinger
	queueNames []string
}

// NewHandler creates a new monitoring handler. The inspector may be nil
// when the queue client is disabled.
func NewHandler(inspector QueueInspector, pinger Pinger, queueNames []string) *Handler {
	return &Handler{
		inspector:  inspector,
		pinger:     pinger,
		queueNames: queueNames,
	}
}
