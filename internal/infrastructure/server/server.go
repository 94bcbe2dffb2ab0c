package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/AgentOS/integrator/internal/api/http"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/engine"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/expr"
	integrationProvider "github.com/GriffinCanCode/AgentOS/integrator/internal/providers/integration"
	systemProvider "github.com/GriffinCanCode/AgentOS/integrator/internal/providers/system"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/service"
)

// ShutdownTimeout bounds graceful shutdown
const ShutdownTimeout = 15 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	registry *service.Registry
	pool     *expr.Pool
	engine   *engine.Engine
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing integrator server",
		zap.String("port", cfg.Server.Port),
		zap.Int("pool_size", cfg.Integration.PoolSize),
		zap.Duration("timeout", cfg.Integration.Timeout),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("integrator", logger.Component("tracing").Logger)

	pool, err := engine.NewPool(cfg.Integration)
	if err != nil {
		metrics.Close()
		tracer.Close()
		return nil, fmt.Errorf("failed to create runtime pool: %w", err)
	}
	eng := engine.New(pool, cfg.Integration, logger, metrics)

	registry := service.NewRegistry()
	if err := registerProviders(registry, eng, pool, metrics); err != nil {
		pool.Close()
		metrics.Close()
		tracer.Close()
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := api.NewHandlers(registry, pool, metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	compute := router.Group("")
	if cfg.RateLimit.Enabled && cfg.RateLimit.ComputeRequestsPerSecond > 0 {
		compute.Use(middleware.GlobalRateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.ComputeRequestsPerSecond,
			Burst:             cfg.RateLimit.ComputeRequestsPerSecond,
		}))
	}
	compute.POST("/services/execute", handlers.ExecuteService)
	compute.POST("/integrate/:method", handlers.Integrate)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.Snapshot())
	})

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		registry: registry,
		pool:     pool,
		engine:   eng,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		tracer:   tracer,
	}, nil
}

// Router returns the configured gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.Close()
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	return s.Close()
}

// Close releases the runtime pool, metrics and tracer
func (s *Server) Close() error {
	var err error
	if cerr := s.pool.Close(); cerr != nil {
		s.logger.Error("Failed to close runtime pool", zap.Error(cerr))
		err = fmt.Errorf("failed to close runtime pool: %w", cerr)
	}
	s.metrics.Close()
	s.tracer.Close()

	_ = s.logger.Sync()
	return err
}

func registerProviders(registry *service.Registry, eng *engine.Engine, pool *expr.Pool, metrics *monitoring.Metrics) error {
	providers := []service.Provider{
		integrationProvider.NewProvider(eng),
		systemProvider.NewProvider(eng, pool, metrics),
	}
	for _, p := range providers {
		if err := registry.Register(p); err != nil {
			return fmt.Errorf("failed to register %s provider: %w", p.Definition().ID, err)
		}
	}
	return nil
}
