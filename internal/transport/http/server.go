// Package http provides the HTTP server implementation for the orchestrator.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/soulsync/orchestrator/internal/service"
	v1 "github.com/soulsync/orchestrator/internal/transport/http/v1"
)

// NewServer creates and configures the HTTP server: chat turns, history,
// room profiles and the crisis/emotion logs.
func NewServer(svc *service.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	v1.NewHandler(svc).RegisterRoutes(e)

	return e
}
