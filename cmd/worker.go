package cmd

import (
	"context"
	"database/sql"
	"os"

	"github.com/google/uuid"
	"github.com/lumberg/petitions/internal/config"
	"github.com/lumberg/petitions/internal/metrics"
	"github.com/lumberg/petitions/internal/queue"
	"github.com/lumberg/petitions/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// newWorkerCmd runs the receive workflow exactly once. Intended for
// cron-driven deployments where the server process does not host the
// periodic runner.
func newWorkerCmd() *cobra.Command {
	var workerName string

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Runs the queue-to-storage receive workflow once",
		Run: func(_ *cobra.Command, _ []string) {
			runWorkerOnce(workerName)
		},
	}

	cmd.Flags().StringVar(&workerName, "name", "cron", "worker name used for log correlation")

	return cmd
}

func runWorkerOnce(workerName string) {
	cfg := config.DefaultServiceConfigFromEnv()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}

	st, err := store.New(db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize store")
	}

	client, err := queue.NewRabbitMQClient(cfg.RabbitMQ)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
	}
	defer client.Close()

	pairs := queue.DefaultTransferPairs(cfg.RabbitMQ)
	for _, pair := range pairs {
		if _, err := client.DeclareQueue(pair.Queue); err != nil {
			log.Fatal().Err(err).Str("queue", pair.Queue).Msg("Failed to declare queue")
		}
	}

	recorder := metrics.New(prometheus.NewRegistry())
	worker := queue.NewWorker(client, st, recorder)
	workflow := queue.NewWorkflow(worker, pairs, cfg.Worker.BatchSize, recorder)

	hostname, _ := os.Hostname()
	result := workflow.Run(ctx, uuid.New().String(), hostname, workerName, nil)

	log.Info().
		Int("saved", result.Saved()).
		Int("failed", result.Failed()).
		Msg("Worker run complete")
}
