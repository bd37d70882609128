// Package repository defines the storage interface and its SQLite
// implementation.
package repository

import (
	"context"
	"time"

	"github.com/soulsync/orchestrator/internal/domain"
)

// CrisisStats aggregates the crisis log for one user.
type CrisisStats struct {
	TotalEvents int                           `json:"total_events"`
	BySeverity  map[domain.CrisisSeverity]int `json:"by_severity"`
	LastEventAt *time.Time                    `json:"last_event_at,omitempty"`
}

// Store defines the interface for data persistence.
type Store interface {
	// Session operations
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	GetOrCreateSession(ctx context.Context, sessionID, userID, roomID string) (*domain.Session, error)

	// Turn operations
	SaveTurn(ctx context.Context, turn *domain.Turn) error
	GetTurns(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error)

	// Emotion log
	RecordEmotionEvent(ctx context.Context, event *domain.EmotionEvent) error
	GetEmotionEvents(ctx context.Context, userID string, limit int) ([]domain.EmotionEvent, error)

	// Crisis log (append-only; stores hash references, never message text)
	RecordCrisisEvent(ctx context.Context, event *domain.CrisisEvent) error
	GetCrisisStats(ctx context.Context, userID string) (*CrisisStats, error)

	// Lifecycle
	Close() error
}
