// Package server exposes the render pipeline over HTTP for previews.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/goliatone/go-cardgen/internal/config"
	"github.com/goliatone/go-cardgen/pkg/logging"
	"github.com/goliatone/go-cardgen/pkg/orchestrator"
)

// Option customises the server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConfig applies listener settings.
func WithConfig(cfg config.ServerConfig) Option {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// Server is the preview HTTP service.
type Server struct {
	echo   *echo.Echo
	orch   *orchestrator.Orchestrator
	logger logging.Logger
	cfg    config.ServerConfig
}

// New wires middleware and routes around orch.
func New(orch *orchestrator.Orchestrator, options ...Option) *Server {
	s := &Server{
		echo:   echo.New(),
		orch:   orch,
		logger: logging.NewNop(),
		cfg:    config.Default().Server,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Start listens on the configured address until Shutdown.
func (s *Server) Start() error {
	s.echo.Server.ReadTimeout = s.cfg.ReadTimeout
	s.echo.Server.WriteTimeout = s.cfg.WriteTimeout
	s.logger.Info("preview server listening", logging.String("address", s.cfg.Address))
	if err := s.echo.Start(s.cfg.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupMiddleware() {
	e := s.echo
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("request",
				logging.String("method", v.Method),
				logging.String("uri", v.URI),
				logging.Int("status", v.Status),
				logging.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	if s.cfg.BodyLimit != "" {
		e.Use(middleware.BodyLimit(s.cfg.BodyLimit))
	}
}

func (s *Server) setupRoutes() {
	e := s.echo
	e.GET("/healthz", handleHealth)

	e.GET("/render/:platform/:template", s.handleRender)
	e.POST("/render/:platform/:template", s.handleRender)
	e.GET("/context", s.handleContext)

	e.GET("/platforms", s.handlePlatforms)
	e.GET("/platforms/:platform/:template", s.handleDimensions)

	e.GET("/themes", s.handleThemes)
	e.POST("/themes", s.handleThemeImport)
	e.GET("/themes/:name", s.handleThemeExport)
	e.GET("/themes/:name/variables", s.handleThemeVariables)

	e.GET("/cache", s.handleCacheStats)
	e.DELETE("/cache", s.handleCacheClear)
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		s.logger.Error("server error", logging.Err(err))
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errorBody{Error: msg})
}
