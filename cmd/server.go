package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumberg/petitions/internal/api"
	"github.com/lumberg/petitions/internal/api/handlers"
	"github.com/lumberg/petitions/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the HTTP server and the periodic receive workflow",
		Run: func(_ *cobra.Command, _ []string) {
			runServer()
		},
	}
}

func runServer() {
	cfg := config.DefaultServiceConfigFromEnv()

	s := api.NewServer(cfg)
	s.InitCmd()
	s.InitRouter()
	handlers.AttachAllRoutes(s)

	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for termination signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		log.Error().Errs("errors", errs).Msg("Server shutdown finished with errors")
		os.Exit(1)
	}

	log.Info().Msg("Server shutdown complete")
}
