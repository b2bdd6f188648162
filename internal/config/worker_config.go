package config

import (
	"time"

	"github.com/lumberg/petitions/internal/util"
)

// Worker contains configuration for the queue-to-storage receive workflow.
type Worker struct {
	// BatchSize caps the number of items claimed per queue per invocation.
	BatchSize int `envconfig:"BATCH_SIZE"`

	// Interval between periodic workflow invocations when running inside
	// the server process.
	Interval time.Duration `envconfig:"INTERVAL"`

	// RunInServer enables the periodic workflow runner in the server
	// process. Disable when a separate cron-driven worker is deployed.
	RunInServer bool `envconfig:"RUN_IN_SERVER"`
}

// LoadWorkerConfig loads worker configuration from environment variables.
func LoadWorkerConfig() Worker {
	return Worker{
		BatchSize:   util.GetEnvAsInt("WORKER_BATCH_SIZE", 100),
		Interval:    time.Second * time.Duration(util.GetEnvAsInt("WORKER_INTERVAL_SECONDS", 60)),
		RunInServer: util.GetEnvAsBool("WORKER_RUN_IN_SERVER", true),
	}
}
