package server

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/flowgrid/flowfs/internal/batch"
	"github.com/flowgrid/flowfs/internal/config"
	"github.com/flowgrid/flowfs/internal/http"
	"github.com/flowgrid/flowfs/internal/middleware"
	"github.com/flowgrid/flowfs/internal/monitoring"
	"github.com/flowgrid/flowfs/internal/nodes"
	"github.com/flowgrid/flowfs/internal/service"
	"github.com/flowgrid/flowfs/internal/ws"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	httpSrv  *nethttp.Server
	registry *service.Registry
	hub      *ws.Hub
	log      *zap.Logger
}

// New creates a server instance from the application configuration.
func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	if cfg.Logging.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := monitoring.NewMetrics()
	hub := ws.NewHub(log.Named("ws"), metrics)

	// Register the filesystem node pack
	serviceRegistry := service.NewRegistry()
	pack := nodes.NewPack(nodes.Options{
		WorkDir:      cfg.FS.WorkDir,
		MaxReadBytes: cfg.FS.MaxReadBytes,
		BackupSuffix: cfg.FS.BackupSuffix,
	}, log.Named("nodes"))
	if err := serviceRegistry.Register(pack); err != nil {
		return nil, fmt.Errorf("register filesystem pack: %w", err)
	}

	runner := batch.NewRunner(serviceRegistry, hub, metrics)
	handlers := http.NewHandlers(serviceRegistry, runner, hub, metrics, log.Named("http"))

	// Create router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log.Named("access"), "/health", "/metrics"))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Service management
	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", handlers.ExecuteService)

	// Batch runs
	router.POST("/batch", handlers.ExecuteBatch)

	// WebSocket
	router.GET("/stream", hub.HandleConnection)

	// Prometheus
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	return &Server{
		router:   router,
		httpSrv:  &nethttp.Server{Addr: addr, Handler: router},
		registry: serviceRegistry,
		hub:      hub,
		log:      log,
	}, nil
}

// Handler exposes the router for embedding and tests.
func (s *Server) Handler() nethttp.Handler {
	return s.router
}

// Run starts the server and blocks until it stops.
func (s *Server) Run() error {
	stats := s.registry.Stats()
	s.log.Info("starting server",
		zap.String("addr", s.httpSrv.Addr),
		zap.Any("services", stats["total_services"]),
		zap.Any("tools", stats["total_tools"]),
	)

	if err := s.httpSrv.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down", zap.Int("stream_clients", s.hub.ClientCount()))
	return s.httpSrv.Shutdown(ctx)
}
