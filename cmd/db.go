package cmd

import (
	"context"
	"database/sql"
	"time"

	"github.com/lumberg/petitions/internal/config"
	"github.com/lumberg/petitions/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// newDBCmd creates database management commands
func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management",
	}

	cmd.AddCommand(newDBMigrateCmd())

	return cmd
}

func newDBMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Run: func(_ *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

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

			if err := st.Migrate(ctx); err != nil {
				log.Fatal().Err(err).Msg("Migration failed")
			}
		},
	}
}
