package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/lumberg/petitions/internal/config"
	"github.com/lumberg/petitions/internal/metrics"
	"github.com/lumberg/petitions/internal/queue"
	"github.com/lumberg/petitions/internal/services/signatures"
	"github.com/lumberg/petitions/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	// Import postgres driver for database/sql package
	_ "github.com/lib/pq"
)

// Router groups the echo route tree.
type Router struct {
	Routes          []*echo.Route
	Root            *echo.Group
	Management      *echo.Group
	APIV1Signatures *echo.Group
}

// Server wires the HTTP surface, the storage layer and the receive
// workflow together.
type Server struct {
	Config config.Server
	DB     *sql.DB
	Echo   *echo.Echo
	Router *Router
	Clock  time2.Clock

	Store             *store.Store
	RabbitMQClient    *queue.RabbitMQClient
	Workflow          *queue.Workflow
	Metrics           *metrics.Recorder
	SignaturesService signatures.Service

	workflowStop chan struct{}
	workflowWg   sync.WaitGroup
}

// NewServer creates an uninitialized server for the given configuration.
func NewServer(cfg config.Server) *Server {
	return &Server{
		Config: cfg,
	}
}

// Ready reports whether all mandatory components are initialized.
func (s *Server) Ready() bool {
	return s.DB != nil &&
		s.Echo != nil &&
		s.Router != nil &&
		s.Clock != nil &&
		s.Store != nil &&
		s.Metrics != nil &&
		s.SignaturesService != nil
}

// InitCmd initializes all components, terminating the process on failure.
func (s *Server) InitCmd() *Server {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := s.InitDB(ctx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	cancel()

	if err := s.InitClock(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize clock")
	}

	if err := s.InitMetrics(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	if err := s.InitStore(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize store")
	}

	if err := s.InitQueue(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize queue client")
	}

	if err := s.InitSignaturesService(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize signatures service")
	}

	return s
}

// InitDB opens and pings the Postgres handle.
func (s *Server) InitDB(ctx context.Context) error {
	db, err := sql.Open("postgres", s.Config.Database.ConnectionString())
	if err != nil {
		return err
	}

	if s.Config.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(s.Config.Database.MaxOpenConns)
	}
	if s.Config.Database.MaxIdleConns > 0 {
		db.SetMaxIdleConns(s.Config.Database.MaxIdleConns)
	}
	if s.Config.Database.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(s.Config.Database.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		return err
	}

	s.DB = db

	return nil
}

// InitClock installs the default wall clock.
func (s *Server) InitClock() error {
	s.Clock = time2.DefaultClock
	return nil
}

// InitMetrics registers the workflow collectors on the default registry.
func (s *Server) InitMetrics() error {
	s.Metrics = metrics.New(prometheus.DefaultRegisterer)
	return nil
}

// InitStore creates the storage layer over the open handle.
func (s *Server) InitStore() error {
	st, err := store.New(s.DB)
	if err != nil {
		return err
	}
	s.Store = st

	log.Info().Msg("Store initialized")
	return nil
}

// InitQueue connects the RabbitMQ client and builds the receive workflow.
// With RabbitMQ disabled the server runs as a read-only API.
func (s *Server) InitQueue() error {
	if !s.Config.RabbitMQ.Enabled {
		log.Warn().Msg("RabbitMQ disabled, receive workflow will not run")
		return nil
	}

	client, err := queue.NewRabbitMQClient(s.Config.RabbitMQ)
	if err != nil {
		return fmt.Errorf("failed to create RabbitMQ client: %w", err)
	}
	s.RabbitMQClient = client

	pairs := queue.DefaultTransferPairs(s.Config.RabbitMQ)
	for _, pair := range pairs {
		if _, err := client.DeclareQueue(pair.Queue); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", pair.Queue, err)
		}
	}

	worker := queue.NewWorker(client, s.Store, s.Metrics)
	s.Workflow = queue.NewWorkflow(worker, pairs, s.Config.Worker.BatchSize, s.Metrics)

	log.Info().
		Int("pairs", len(pairs)).
		Int("batch_size", s.Config.Worker.BatchSize).
		Msg("Receive workflow initialized")

	return nil
}

// InitSignaturesService creates the read-only signatures service.
func (s *Server) InitSignaturesService() error {
	s.SignaturesService = signatures.NewService(s.Store)

	log.Info().Msg("Signatures service initialized")
	return nil
}

// Start runs the periodic workflow (when configured) and the HTTP listener.
func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if s.Workflow != nil && s.Config.Worker.RunInServer {
		s.workflowStop = make(chan struct{})
		s.workflowWg.Add(1)
		go s.runPeriodicWorkflow()

		log.Info().
			Dur("interval", s.Config.Worker.Interval).
			Msg("Periodic receive workflow started")
	}

	return s.Echo.Start(s.Config.Echo.ListenAddress)
}

func (s *Server) runPeriodicWorkflow() {
	defer s.workflowWg.Done()

	hostname, _ := os.Hostname()

	ticker := time.NewTicker(s.Config.Worker.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.workflowStop:
			return
		case <-ticker.C:
			jobID := uuid.New().String()
			s.Workflow.Run(context.Background(), jobID, hostname, "server", nil)
		}
	}
}

// Shutdown stops the workflow runner and closes all resources.
func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.workflowStop != nil {
		close(s.workflowStop)
		s.workflowWg.Wait()
		log.Info().Msg("Periodic receive workflow stopped")
	}

	if s.RabbitMQClient != nil {
		log.Debug().Msg("Closing RabbitMQ client")
		if err := s.RabbitMQClient.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close RabbitMQ client")
			errs = append(errs, err)
		}
	}

	if s.DB != nil {
		log.Debug().Msg("Closing database connection")

		if err := s.DB.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			log.Error().Err(err).Msg("Failed to close database connection")
			errs = append(errs, err)
		}
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
