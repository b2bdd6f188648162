package cmd

import (
	"context"
	"fmt"

	"github.com/lumberg/petitions/internal/config"
	"github.com/lumberg/petitions/internal/fixtures"
	"github.com/lumberg/petitions/internal/queue"
	"github.com/spf13/cobra"
)

// newQueuesCmd creates queue management commands
func newQueuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queues",
		Short: "RabbitMQ queue management",
		Long:  "Inspect and seed the signature and validation queues",
	}

	cmd.AddCommand(
		newQueuesStatusCmd(),
		newQueuesSeedCmd(),
	)

	return cmd
}

func newQueuesStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check RabbitMQ connection and queue depths",
		Run: func(_ *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()
			client, err := queue.NewRabbitMQClient(cfg.RabbitMQ)
			if err != nil {
				fmt.Printf("Failed to connect to RabbitMQ: %v\n", err)
				return
			}
			defer client.Close()

			if client.IsHealthy() {
				fmt.Println("RabbitMQ connection is healthy")
			} else {
				fmt.Println("RabbitMQ connection is unhealthy")
			}

			fmt.Println("\nQueue depths:")
			for _, pair := range queue.DefaultTransferPairs(cfg.RabbitMQ) {
				if _, err := client.DeclareQueue(pair.Queue); err != nil {
					fmt.Printf("  %s (ERROR: %v)\n", pair.Queue, err)
					continue
				}

				depth, err := client.Depth(pair.Queue)
				if err != nil {
					fmt.Printf("  %s (ERROR: %v)\n", pair.Queue, err)
				} else {
					fmt.Printf("  %s (%d items)\n", pair.Queue, depth)
				}
			}
		},
	}
}

func newQueuesSeedCmd() *cobra.Command {
	var petitionID string
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Publish fixture items to both queues",
		Long:  "Publishes generated pending signatures and validations for local development",
		Run: func(_ *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()
			client, err := queue.NewRabbitMQClient(cfg.RabbitMQ)
			if err != nil {
				fmt.Printf("Failed to connect to RabbitMQ: %v\n", err)
				return
			}
			defer client.Close()

			ctx := context.Background()
			pairs := queue.DefaultTransferPairs(cfg.RabbitMQ)

			for i := 0; i < count; i++ {
				sig := fixtures.PendingSignature(petitionID)
				if err := client.Publish(ctx, pairs[0].Queue, sig); err != nil {
					fmt.Printf("Failed to publish pending signature: %v\n", err)
					return
				}

				val := fixtures.Validation(petitionID)
				if err := client.Publish(ctx, pairs[1].Queue, val); err != nil {
					fmt.Printf("Failed to publish validation: %v\n", err)
					return
				}
			}

			fmt.Printf("Published %d pending signatures and %d validations for petition %s\n", count, count, petitionID)
		},
	}

	cmd.Flags().StringVar(&petitionID, "petition", "petition-dev", "petition id for generated items")
	cmd.Flags().IntVar(&count, "count", 10, "number of items to publish per queue")

	return cmd
}
