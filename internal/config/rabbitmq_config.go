package config

import (
	"fmt"
	"time"

	"github.com/lumberg/petitions/internal/util"
)

// RabbitMQConfig contains configuration for the RabbitMQ message queue
// holding pending signature and validation items.
type RabbitMQConfig struct {
	Enabled  bool   `envconfig:"ENABLED"`
	Host     string `envconfig:"HOST"`
	Port     int    `envconfig:"PORT"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD" json:"-"` // sensitive field
	VHost    string `envconfig:"VHOST"`

	// Connection settings
	Heartbeat time.Duration `envconfig:"HEARTBEAT"`

	// Queue settings
	QueuePrefix   string `envconfig:"QUEUE_PREFIX"`
	DurableQueues bool   `envconfig:"DURABLE_QUEUES"`
}

// LoadRabbitMQConfig loads RabbitMQ configuration from environment variables.
func LoadRabbitMQConfig() RabbitMQConfig {
	return RabbitMQConfig{
		Enabled:       util.GetEnvAsBool("RABBITMQ_ENABLED", true),
		Host:          util.GetEnv("RABBITMQ_HOST", "localhost"),
		Port:          util.GetEnvAsInt("RABBITMQ_PORT", 5672),
		Username:      util.GetEnv("RABBITMQ_USERNAME", "guest"),
		Password:      util.GetEnv("RABBITMQ_PASSWORD", "guest"),
		VHost:         util.GetEnv("RABBITMQ_VHOST", "/"),
		Heartbeat:     time.Second * time.Duration(util.GetEnvAsInt("RABBITMQ_HEARTBEAT_SECONDS", 60)),
		QueuePrefix:   util.GetEnv("RABBITMQ_QUEUE_PREFIX", "petitions"),
		DurableQueues: util.GetEnvAsBool("RABBITMQ_DURABLE_QUEUES", true),
	}
}

// GetConnectionURL returns the RabbitMQ connection URL.
func (r RabbitMQConfig) GetConnectionURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d%s",
		r.Username, r.Password, r.Host, r.Port, r.VHost)
}

// GetQueueName returns the prefix-qualified name of a queue.
func (r RabbitMQConfig) GetQueueName(name string) string {
	return fmt.Sprintf("%s.%s", r.QueuePrefix, name)
}

// IsHealthy checks if RabbitMQ configuration is valid.
func (r RabbitMQConfig) IsHealthy() error {
	if !r.Enabled {
		return fmt.Errorf("RabbitMQ is disabled")
	}

	if r.Host == "" {
		return fmt.Errorf("RabbitMQ host is required")
	}

	if r.Port <= 0 || r.Port > 65535 {
		return fmt.Errorf("RabbitMQ port must be between 1 and 65535")
	}

	return nil
}
