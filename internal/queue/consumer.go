package queue

import "context"

// Item is a single claimed unit of work. The ID is only meaningful to the
// consumer that produced it.
type Item struct {
	ID   string
	Body []byte

	tag uint64 // delivery tag, set by the RabbitMQ client
}

// Consumer is the claim-oriented queue surface the batch transfer worker
// depends on. Claim must lock the returned item against concurrent
// claimants until it is deleted, released or discarded; an expired lock
// makes the item claimable again (at-least-once delivery).
type Consumer interface {
	// Depth returns the current number of items in the queue.
	Depth(queueName string) (int, error)

	// Claim locks and returns one item, or (nil, nil) when the queue is
	// empty.
	Claim(ctx context.Context, queueName string) (*Item, error)

	// Delete permanently removes a claimed item.
	Delete(item *Item) error

	// Release returns a claimed item to the queue for a later retry.
	Release(item *Item) error

	// Discard drops a claimed item without requeueing it.
	Discard(item *Item) error
}
