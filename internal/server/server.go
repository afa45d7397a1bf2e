// Package server exposes the view state of the main screen over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/naka-gawa/devfolio/internal/domain"
	"github.com/naka-gawa/devfolio/internal/viewstate"
)

// ViewHolder is the part of viewstate.Holder the server needs.
type ViewHolder interface {
	Snapshot() viewstate.Snapshot[*domain.AggregateView]
	TryRefresh(ctx context.Context) (viewstate.Snapshot[*domain.AggregateView], bool)
}

// LinkOpener opens an outbound link, fire-and-forget.
type LinkOpener interface {
	Open(url string)
}

// Server serves the read-only portfolio API.
type Server struct {
	echo     *echo.Echo
	holder   ViewHolder
	launcher LinkOpener
	logger   *zap.Logger
}

// New builds the echo instance with middleware and routes.
func New(holder ViewHolder, launcher LinkOpener, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, holder: holder, launcher: launcher, logger: logger}
	s.configureMiddleware()
	s.configureRoutes()
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on addr until ctx is done and then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.echo,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", zap.String("addr", addr))
		errCh <- s.echo.StartServer(server)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (s *Server) configureMiddleware() {
	l := s.logger

	s.echo.Use(middleware.RequestID())

	s.echo.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1 << 12, // 4 KB
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			l.Error("recovered from panic",
				zap.Error(err),
				zap.ByteString("stack", stack),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return nil
		},
	}))

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
		LogLatency:   true,
		LogMethod:    true,
		LogURI:       true,
		LogRequestID: true,
		LogStatus:    true,
	}))
}

func (s *Server) configureRoutes() {
	s.echo.GET("/v1/health", s.health)
	s.echo.GET("/v1/view", s.getView)
	s.echo.POST("/v1/view/refresh", s.refreshView)
	s.echo.GET("/v1/links", s.listLinks)
	s.echo.POST("/v1/links/:platform/open", s.openLink)
}
