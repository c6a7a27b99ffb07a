package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yigit/timetabler/internal/bootstrap"
)

const (
	readTimeout = 30 * time.Second
	// A commit writes rows one at a time and can outlast a preview by far.
	writeTimeout = 2 * time.Minute
	idleTimeout  = 2 * time.Minute
	// Shutdown waits this long for in-flight commits before the pool closes.
	drainTimeout = 30 * time.Second
)

// Server serves the import API and owns the database pool behind it.
type Server struct {
	http   *http.Server
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewServer wires config, logger, database and handlers into a Server.
func NewServer(configPath string) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	pool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, pool, lgr)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return New(":"+cfg.Server.Port, bootstrap.SetupRouter(cfg, deps, lgr), pool, lgr), nil
}

// New builds a Server around an existing handler. pool may be nil.
func New(addr string, handler http.Handler, pool *pgxpool.Pool, lgr zerolog.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		pool:   pool,
		logger: lgr.With().Str("component", "server").Logger(),
	}
}

// Run serves until SIGINT or SIGTERM.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then drains and closes
// the pool.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("Import API listening")

	served := make(chan error, 1)
	go func() { served <- s.http.Serve(ln) }()

	select {
	case err := <-served:
		s.closePool()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("import API stopped: %w", err)
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown requested, draining imports")
	}
	return s.drain()
}

func (s *Server) drain() error {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	err := s.http.Shutdown(ctx)
	s.closePool()
	if err != nil {
		s.logger.Error().Err(err).Msg("Requests still running at shutdown")
		return fmt.Errorf("error draining import API: %w", err)
	}
	s.logger.Info().Msg("Import API stopped")
	return nil
}

func (s *Server) closePool() {
	if s.pool != nil {
		s.pool.Close()
	}
}
