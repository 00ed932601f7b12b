package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-closures/internal/app/config"
	"go-closures/internal/shared/logger"
	"go-closures/internal/shared/metrics"
)

// Server exposes metrics and health over HTTP while the lesson is scheduled
type Server struct {
	server    *http.Server
	router    *gin.Engine
	logger    *logger.Logger
	metrics   *metrics.Metrics
	startedAt time.Time
}

// ServerOptions holds the server dependencies
type ServerOptions struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.Metrics
}

// NewServer creates a new HTTP server
func NewServer(opts *ServerOptions) *Server {
	// Set Gin mode based on environment
	switch opts.Config.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		router:    r,
		logger:    opts.Logger.Named("api"),
		metrics:   opts.Metrics,
		startedAt: time.Now(),
	}

	r.GET("/healthz", s.health)
	r.GET("/metrics", s.uptime, opts.Metrics.GinMetricsHandler())

	s.server = &http.Server{
		Addr:         opts.Config.MetricsAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server; it blocks until the server stops
func (s *Server) Start() error {
	s.logger.Info("Starting metrics server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down metrics server")
	return s.server.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startedAt).String(),
	})
}

func (s *Server) uptime(c *gin.Context) {
	s.metrics.RecordUptime(time.Since(s.startedAt))
	c.Next()
}
