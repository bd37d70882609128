package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/soulsync/orchestrator/config"
	"github.com/soulsync/orchestrator/internal/adapter/llm"
	"github.com/soulsync/orchestrator/internal/agents"
	"github.com/soulsync/orchestrator/internal/domain"
	"github.com/soulsync/orchestrator/internal/oars"
	"github.com/soulsync/orchestrator/internal/repository"
	"github.com/soulsync/orchestrator/internal/safety"
	"github.com/soulsync/orchestrator/internal/service"
	"github.com/soulsync/orchestrator/internal/supervisor"
	"github.com/soulsync/orchestrator/policy"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	store, err := repository.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	gen := &llm.MockClient{Reply: func(system string, _ []llm.Message) (string, bool) {
		switch {
		case strings.Contains(system, "Emotion Tagger"):
			return `{"tag":"ANGER / HURT","summary":"the fight hurt"}`, true
		case strings.Contains(system, "supervisor of a multi-voice"):
			return "It sounds like the fight is still sitting with you. What happened right before it started?", true
		default:
			return "persona draft", true
		}
	}}

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	svc := service.New(
		store,
		config.DefaultRooms(),
		agents.NewDrafter(gen, nil),
		agents.NewTagger(gen, nil),
		supervisor.New(gen, safety.NewScreener(store, nil), oars.NewPolicy(), nil),
		engine,
		nil,
	)
	return NewHandler(svc)
}

func postMessage(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.PostMessage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestPostMessage(t *testing.T) {
	h := newTestHandler(t)

	rec := postMessage(t, h, `{"session_id":"s1","user_id":"u1","room_id":"general_support","message":"we had a huge fight"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result service.TurnResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Reply == "" {
		t.Fatal("expected a non-empty reply")
	}
	if result.TurnCount != 1 {
		t.Fatalf("expected turn_count 1, got %d", result.TurnCount)
	}
	if result.Emotion.Tag != "ANGER / HURT" {
		t.Fatalf("unexpected emotion tag: %q", result.Emotion.Tag)
	}
}

func TestPostMessageValidation(t *testing.T) {
	h := newTestHandler(t)

	rec := postMessage(t, h, `{"session_id":"s1","room_id":"general_support","message":"hi"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing user_id, got %d", rec.Code)
	}

	rec = postMessage(t, h, `{"session_id":"s1","user_id":"u1","message":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty message, got %d", rec.Code)
	}
}

func TestGetSessionTurns(t *testing.T) {
	h := newTestHandler(t)

	rec := postMessage(t, h, `{"session_id":"s2","user_id":"u1","message":"we had a huge fight"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/s2/turns", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("s2")

	if err := h.GetSessionTurns(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Turns []domain.Turn `json:"turns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Turns) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(resp.Turns))
	}
	if resp.Turns[0].UserText != "we had a huge fight" {
		t.Fatalf("unexpected user text: %q", resp.Turns[0].UserText)
	}
}

func TestListRooms(t *testing.T) {
	h := newTestHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListRooms(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp struct {
		Rooms []domain.RoomConfig `json:"rooms"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Rooms) == 0 {
		t.Fatal("expected room profiles")
	}
}

func TestGetCrisisStats(t *testing.T) {
	h := newTestHandler(t)

	rec := postMessage(t, h, `{"session_id":"s3","user_id":"u9","message":"i want to kill myself"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/u9/crisis_stats", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues("u9")

	if err := h.GetCrisisStats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var stats repository.CrisisStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.TotalEvents != 1 {
		t.Fatalf("expected 1 crisis event, got %d", stats.TotalEvents)
	}
	if stats.BySeverity[domain.CrisisSeverityCritical] != 1 {
		t.Fatalf("expected 1 critical event, got %+v", stats.BySeverity)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
