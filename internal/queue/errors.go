package queue

import "errors"

// Common queue errors
var (
	ErrQueueNotFound    = errors.New("queue not found")
	ErrInvalidItem      = errors.New("invalid queue item")
	ErrClientUnhealthy  = errors.New("queue client is not healthy")
	ErrUnknownPairKind  = errors.New("unknown transfer pair kind")
	ErrBatchSizeInvalid = errors.New("batch size must be positive")
)
