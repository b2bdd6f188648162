package config

import (
	"github.com/lumberg/petitions/internal/util"
)

// EchoServer contains configuration for the HTTP layer.
type EchoServer struct {
	ListenAddress           string `envconfig:"LISTEN_ADDRESS"`
	HideInternalErrors      bool   `envconfig:"HIDE_INTERNAL_ERRORS"`
	EnableRecoverMiddleware bool   `envconfig:"ENABLE_RECOVER_MIDDLEWARE"`
}

// AuthServer contains configuration for API-key authentication of the
// read-only signatures endpoint.
type AuthServer struct {
	APIKeys []string `envconfig:"API_KEYS" json:"-"` // sensitive field
}

// Server bundles the complete service configuration.
type Server struct {
	Database Database
	Echo     EchoServer
	RabbitMQ RabbitMQConfig
	Worker   Worker
	Auth     AuthServer
}

// DefaultServiceConfigFromEnv returns the service configuration resolved
// from environment variables with sensible defaults.
func DefaultServiceConfigFromEnv() Server {
	return Server{
		Database: LoadDatabaseConfig(),
		Echo: EchoServer{
			ListenAddress:           util.GetEnv("SERVER_LISTEN_ADDRESS", ":8080"),
			HideInternalErrors:      util.GetEnvAsBool("SERVER_HIDE_INTERNAL_ERRORS", true),
			EnableRecoverMiddleware: util.GetEnvAsBool("SERVER_ENABLE_RECOVER_MIDDLEWARE", true),
		},
		RabbitMQ: LoadRabbitMQConfig(),
		Worker:   LoadWorkerConfig(),
		Auth: AuthServer{
			APIKeys: util.GetEnvAsStringArr("AUTH_API_KEYS", []string{}),
		},
	}
}
