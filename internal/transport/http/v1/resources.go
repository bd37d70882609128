package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soulsync/orchestrator/internal/domain"
	"github.com/soulsync/orchestrator/internal/safety"
)

// GetResources returns the support-resource catalog for a category.
// Unknown categories fall back to the general list.
// GET /v1/resources/:category
func (h *Handler) GetResources(c echo.Context) error {
	category := c.Param("category")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"category":  category,
		"resources": safety.Resources(category),
	})
}

// GetCrisisGuidance returns the follow-up line and resource list for a
// given screen severity.
// GET /v1/crisis/guidance?severity=medium
func (h *Handler) GetCrisisGuidance(c echo.Context) error {
	severity := domain.CrisisSeverity(c.QueryParam("severity"))
	switch severity {
	case domain.CrisisSeverityLow, domain.CrisisSeverityMedium,
		domain.CrisisSeverityHigh, domain.CrisisSeverityCritical:
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "severity must be one of low, medium, high, critical"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"severity":  severity,
		"follow_up": safety.FollowUp(severity),
		"resources": safety.Resources("crisis"),
	})
}
