// Package console serves the platform views as HTML pages behind the route guard
// and forwards /api calls to the platform backend.
package console

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/labshare-dev/labshare/internal/config"
	"github.com/labshare-dev/labshare/internal/router"
)

// Server represents the console HTTP server
type Server struct {
	router     *gin.Engine
	config     *config.Config
	logger     zerolog.Logger
	httpClient *http.Client
	templates  *template.Template
	secret     []byte
	version    string
}

// New creates a new console server instance
func New(cfg *config.Config, zlog zerolog.Logger, version string) (*Server, error) {
	backend, err := url.Parse(cfg.API.URL)
	if err != nil || backend.Scheme == "" || backend.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q", cfg.API.URL)
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	server := &Server{
		config:     cfg,
		logger:     zlog,
		httpClient: &http.Client{Timeout: cfg.API.Timeout},
		templates:  templates,
		secret:     []byte(cfg.Console.JWTSecret),
		version:    version,
	}

	if len(server.secret) == 0 {
		zlog.Warn().Msg("LABSHARE_JWT_SECRET not set - session cookies are trusted without signature checks")
	}

	server.setupRouter(&url.URL{Scheme: backend.Scheme, Host: backend.Host})

	return server, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter(backend *url.URL) {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.Console.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s.router.GET("/healthz", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.POST("/login", s.login)
	s.router.POST("/logout", s.logout)

	s.router.Any("/api/*path", gin.WrapH(newProxy(backend, s.logger)))

	for _, route := range router.Routes() {
		path, ok := router.GinPath(route)
		if !ok {
			continue
		}
		s.router.GET(path, router.Middleware(route, s.sessionFromCookie, s.logger), s.page(route))
	}
	s.router.NoRoute(s.notFound)
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = ulid.Make().String()
		}
		c.Header("X-Request-ID", requestID)

		c.Next()

		s.logger.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "labshare-console",
		"version":   s.version,
	})
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Console.Addr,
		Handler:           s.router,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Str("backend", s.config.API.URL).Msg("Starting console server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("console server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	s.logger.Info().Msg("Server shutdown complete")
	return nil
}
