package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/soulsync/orchestrator/internal/service"
)

// PostMessageRequest is one user turn.
type PostMessageRequest struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	RoomID    string `json:"room_id"`
	Message   string `json:"message"`
}

// PostMessage processes one user turn and returns the composed reply.
// POST /v1/messages
func (h *Handler) PostMessage(c echo.Context) error {
	var req PostMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	result, err := h.service.ProcessTurn(c.Request().Context(), req.SessionID, req.UserID, req.RoomID, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

// GetSessionTurns retrieves the persisted turns for a session.
// GET /v1/sessions/:session_id/turns
func (h *Handler) GetSessionTurns(c echo.Context) error {
	sessionID := c.Param("session_id")
	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	turns, err := h.service.History(c.Request().Context(), sessionID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"turns": turns,
	})
}

// ListRooms returns the configured room profiles.
// GET /v1/rooms
func (h *Handler) ListRooms(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"rooms": h.service.Rooms(),
	})
}

// GetCrisisStats returns the aggregated crisis log for a user.
// GET /v1/users/:user_id/crisis_stats
func (h *Handler) GetCrisisStats(c echo.Context) error {
	stats, err := h.service.CrisisStats(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}

// GetEmotionHistory returns a user's tagged emotion events, newest first.
// GET /v1/users/:user_id/emotions
func (h *Handler) GetEmotionHistory(c echo.Context) error {
	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	events, err := h.service.EmotionHistory(c.Request().Context(), c.Param("user_id"), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"emotions": events,
	})
}
