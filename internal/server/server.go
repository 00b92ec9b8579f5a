// Package server wires the echo instance: middlewares, error handling,
// health checks, and the OpenAPI surface.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/karyawanmag/content-api/internal/apperr"
	mw "github.com/karyawanmag/content-api/pkg/middleware"
	"github.com/karyawanmag/content-api/pkg/response"
	pkgserver "github.com/karyawanmag/content-api/pkg/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoswagger "github.com/swaggo/echo-swagger"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
)

type Server struct {
	Echo *echo.Echo

	cfg *Config
}

func NewServer(e *echo.Echo, cfg *Config) *Server {
	e.DisableHTTP2 = !cfg.UseHttp2
	e.HideBanner = true
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()

	s := &Server{
		Echo: e,
		cfg:  cfg,
	}

	s.setupMiddlewares()

	return s
}

func (s *Server) setupMiddlewares() {
	s.Echo.Use(mw.Logger())
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.cfg.CorsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}))
}

func (s *Server) SetupHealthChecks(hc pkgserver.HealthChecker) *Server {
	s.Echo.GET("/healthz", func(c echo.Context) error {
		if !hc.Healthy(c.Request().Context()) {
			return response.Fail(c, http.StatusServiceUnavailable, "Unhealthy", nil)
		}
		return response.OK(c, http.StatusOK, "Healthy", nil)
	})
	return s
}

func (s *Server) SetupOpenApi() *Server {
	s.Echo.GET("/swagger/*", echoswagger.WrapHandler)
	return s
}

func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		if err := s.Echo.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Echo.Logger.Fatal("shutting down the server")
		}
	}()

	<-ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := s.Echo.Shutdown(ctx); err != nil {
		s.Echo.Logger.Fatal(err)
		return err
	}
	return nil
}
