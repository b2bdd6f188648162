package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/lumberg/petitions/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// RabbitMQClient handles RabbitMQ connections and operations. It implements
// Consumer on top of basic.get with manual acknowledgement: an unacked
// delivery stays locked to this client's channel and is redelivered once the
// channel closes, which gives the claim semantics the batch worker needs.
type RabbitMQClient struct {
	config     config.RabbitMQConfig
	connection *amqp.Connection
	channel    *amqp.Channel
	queues     map[string]amqp.Queue
	mutex      sync.RWMutex

	// Connection management
	reconnectCount int
	lastReconnect  time.Time

	// Health status
	healthy bool

	// Stop channel for graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
}

var _ Consumer = (*RabbitMQClient)(nil)

// NewRabbitMQClient creates a new RabbitMQ client
func NewRabbitMQClient(cfg config.RabbitMQConfig) (*RabbitMQClient, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("RabbitMQ is disabled")
	}

	client := &RabbitMQClient{
		config:   cfg,
		queues:   make(map[string]amqp.Queue),
		stopChan: make(chan struct{}),
		healthy:  false,
	}

	if err := client.connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	// Start connection monitoring
	client.wg.Add(1)
	go client.monitorConnection()

	return client, nil
}

// connect establishes connection to RabbitMQ
func (c *RabbitMQClient) connect() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Close existing connections
	c.closeConnections()

	// Create new connection
	var err error
	c.connection, err = amqp.DialConfig(c.config.GetConnectionURL(), amqp.Config{
		Heartbeat: c.config.Heartbeat,
	})
	if err != nil {
		c.healthy = false
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	// Create channel
	c.channel, err = c.connection.Channel()
	if err != nil {
		c.connection.Close()
		c.healthy = false
		return fmt.Errorf("failed to create channel: %w", err)
	}

	c.healthy = true
	c.lastReconnect = time.Now()

	log.Info().
		Str("host", c.config.Host).
		Int("port", c.config.Port).
		Msg("Connected to RabbitMQ")

	return nil
}

// closeConnections closes the channel and connection
func (c *RabbitMQClient) closeConnections() {
	if c.channel != nil && !c.channel.IsClosed() {
		c.channel.Close()
	}
	if c.connection != nil && !c.connection.IsClosed() {
		c.connection.Close()
	}
	c.healthy = false
}

// monitorConnection monitors the connection and reconnects if needed
func (c *RabbitMQClient) monitorConnection() {
	defer c.wg.Done()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			if !c.IsHealthy() {
				log.Warn().Msg("RabbitMQ connection unhealthy, attempting reconnect")
				if err := c.connect(); err != nil {
					c.reconnectCount++
					log.Error().
						Err(err).
						Int("attempt", c.reconnectCount).
						Msg("Failed to reconnect to RabbitMQ")
				} else {
					c.reconnectCount = 0
					log.Info().Msg("Successfully reconnected to RabbitMQ")
				}
			}
		}
	}
}

// DeclareQueue declares a queue with appropriate settings
func (c *RabbitMQClient) DeclareQueue(queueName string) (amqp.Queue, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.healthy {
		return amqp.Queue{}, ErrClientUnhealthy
	}

	// Check if queue already declared
	if queue, exists := c.queues[queueName]; exists {
		return queue, nil
	}

	queue, err := c.channel.QueueDeclare(
		queueName,              // name
		c.config.DurableQueues, // durable
		false,                  // delete when unused
		false,                  // exclusive
		false,                  // no-wait
		nil,                    // arguments
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	c.queues[queueName] = queue

	log.Debug().
		Str("queue", queueName).
		Bool("durable", c.config.DurableQueues).
		Msg("Queue declared")

	return queue, nil
}

// Publish publishes a message to the specified queue
func (c *RabbitMQClient) Publish(ctx context.Context, queueName string, message interface{}) error {
	if !c.IsHealthy() {
		return ErrClientUnhealthy
	}

	// Ensure queue is declared
	_, err := c.DeclareQueue(queueName)
	if err != nil {
		return err
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	err = c.channel.PublishWithContext(
		ctx,
		"",        // exchange
		queueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		c.healthy = false // Mark as unhealthy on publish failure
		return fmt.Errorf("failed to publish message to queue %s: %w", queueName, err)
	}

	log.Debug().
		Str("queue", queueName).
		Int("size", len(body)).
		Msg("Message published")

	return nil
}

// Depth returns the current number of items in a queue.
func (c *RabbitMQClient) Depth(queueName string) (int, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if !c.healthy {
		return 0, ErrClientUnhealthy
	}

	// Use QueueDeclare with Passive semantics instead of deprecated QueueInspect
	queue, err := c.channel.QueueDeclarePassive(
		queueName,              // name
		c.config.DurableQueues, // durable
		false,                  // delete when unused
		false,                  // exclusive
		false,                  // no-wait
		nil,                    // arguments
	)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect queue %s: %w", queueName, err)
	}

	return queue.Messages, nil
}

// Claim locks and returns one item from the queue via basic.get with manual
// acknowledgement, or (nil, nil) when the queue is empty.
func (c *RabbitMQClient) Claim(_ context.Context, queueName string) (*Item, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.healthy {
		return nil, ErrClientUnhealthy
	}

	msg, ok, err := c.channel.Get(queueName, false) // autoAck=false
	if err != nil {
		return nil, fmt.Errorf("failed to claim item from queue %s: %w", queueName, err)
	}
	if !ok {
		return nil, nil
	}

	return &Item{
		ID:   fmt.Sprintf("%s:%d", queueName, msg.DeliveryTag),
		Body: msg.Body,
		tag:  msg.DeliveryTag,
	}, nil
}

// Delete acknowledges a claimed item, permanently removing it.
func (c *RabbitMQClient) Delete(item *Item) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.healthy {
		return ErrClientUnhealthy
	}

	if err := c.channel.Ack(item.tag, false); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", item.ID, err)
	}
	return nil
}

// Release negatively acknowledges a claimed item with requeue, returning it
// to the queue for a later retry.
func (c *RabbitMQClient) Release(item *Item) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.healthy {
		return ErrClientUnhealthy
	}

	if err := c.channel.Nack(item.tag, false, true); err != nil {
		return fmt.Errorf("failed to release item %s: %w", item.ID, err)
	}
	return nil
}

// Discard negatively acknowledges a claimed item without requeue.
func (c *RabbitMQClient) Discard(item *Item) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.healthy {
		return ErrClientUnhealthy
	}

	if err := c.channel.Nack(item.tag, false, false); err != nil {
		return fmt.Errorf("failed to discard item %s: %w", item.ID, err)
	}
	return nil
}

// IsHealthy checks if the RabbitMQ connection is healthy
func (c *RabbitMQClient) IsHealthy() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if !c.healthy {
		return false
	}

	if c.connection == nil || c.connection.IsClosed() {
		return false
	}

	if c.channel == nil || c.channel.IsClosed() {
		return false
	}

	return true
}

// Ping tests the connection to RabbitMQ
func (c *RabbitMQClient) Ping() error {
	if !c.IsHealthy() {
		return ErrClientUnhealthy
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Try to declare a temporary queue as a ping test
	tempQueueName := fmt.Sprintf("%s.ping.%d", c.config.QueuePrefix, time.Now().Unix())
	_, err := c.channel.QueueDeclare(
		tempQueueName, // name
		false,         // durable
		true,          // delete when unused
		true,          // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		c.healthy = false
		return fmt.Errorf("ping failed: %w", err)
	}

	// Clean up the temporary queue
	_, err = c.channel.QueueDelete(tempQueueName, false, false, false)
	if err != nil {
		log.Warn().Err(err).Str("queue", tempQueueName).Msg("Failed to delete ping queue")
	}

	return nil
}

// Close closes the RabbitMQ connection and stops monitoring
func (c *RabbitMQClient) Close() error {
	log.Info().Msg("Closing RabbitMQ client")

	// Stop monitoring first; the monitor takes the mutex, so waiting while
	// holding it would deadlock.
	select {
	case <-c.stopChan:
		// Channel already closed
	default:
		close(c.stopChan)
	}
	c.wg.Wait()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.healthy && c.connection == nil {
		// Already closed
		log.Debug().Msg("RabbitMQ client already closed")
		return nil
	}

	// Close connections
	c.closeConnections()

	log.Info().Msg("RabbitMQ client closed")
	return nil
}
