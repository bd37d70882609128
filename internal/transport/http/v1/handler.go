// Package v1 provides HTTP handlers for the orchestrator.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soulsync/orchestrator/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Chat API
	e.POST("/v1/messages", h.PostMessage)
	e.GET("/v1/sessions/:session_id/turns", h.GetSessionTurns)

	// Room profiles
	e.GET("/v1/rooms", h.ListRooms)

	// Per-user logs
	e.GET("/v1/users/:user_id/crisis_stats", h.GetCrisisStats)
	e.GET("/v1/users/:user_id/emotions", h.GetEmotionHistory)

	// Support resources
	e.GET("/v1/resources/:category", h.GetResources)
	e.GET("/v1/crisis/guidance", h.GetCrisisGuidance)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
