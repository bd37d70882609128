package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/soulsync/orchestrator/internal/safety"
)

func TestGetResources(t *testing.T) {
	h := newTestHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/resources/crisis", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("category")
	c.SetParamValues("crisis")

	if err := h.GetResources(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Category  string            `json:"category"`
		Resources []safety.Resource `json:"resources"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Resources) == 0 {
		t.Fatal("expected crisis resources")
	}
}

func TestGetCrisisGuidance(t *testing.T) {
	h := newTestHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/v1/crisis/guidance?severity=medium", nil)
	rec := httptest.NewRecorder()
	if err := h.GetCrisisGuidance(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		FollowUp string `json:"follow_up"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.FollowUp == "" {
		t.Fatal("expected a follow-up line")
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/crisis/guidance?severity=bogus", nil)
	rec = httptest.NewRecorder()
	if err := h.GetCrisisGuidance(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
