package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/soulsync/orchestrator/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store. Use ":memory:" for tests; the
// single connection keeps an in-memory database alive for the store's life.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			room_id TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS turns (
			turn_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			user_text TEXT NOT NULL,
			agent_text TEXT NOT NULL,
			emotion TEXT,
			room_type TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_id) REFERENCES sessions(session_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS emotion_events (
			event_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			tag TEXT NOT NULL,
			summary TEXT,
			intensity REAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_emotion_user ON emotion_events(user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS crisis_events (
			event_id TEXT PRIMARY KEY,
			user_id TEXT,
			severity TEXT NOT NULL,
			categories TEXT,
			message_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_crisis_user ON crisis_events(user_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession creates a new session.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *domain.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, user_id, room_id, created_at) VALUES (?, ?, ?, ?)`,
		session.SessionID, session.UserID, session.RoomID, session.CreatedAt)
	return err
}

// GetSession retrieves a session by ID. Missing sessions return nil, nil.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var session domain.Session
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, user_id, room_id, created_at FROM sessions WHERE session_id = ?`,
		sessionID).Scan(&session.SessionID, &session.UserID, &session.RoomID, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetOrCreateSession gets an existing session or creates a new one.
func (s *SQLiteStore) GetOrCreateSession(ctx context.Context, sessionID, userID, roomID string) (*domain.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	session = &domain.Session{
		SessionID: sessionID,
		UserID:    userID,
		RoomID:    roomID,
		CreatedAt: time.Now(),
	}
	if err := s.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SaveTurn persists one completed turn.
func (s *SQLiteStore) SaveTurn(ctx context.Context, turn *domain.Turn) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (turn_id, session_id, user_id, user_text, agent_text, emotion, room_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		turn.TurnID, turn.SessionID, turn.UserID, turn.UserText, turn.AgentText, turn.Emotion, turn.RoomType, turn.CreatedAt)
	return err
}

// GetTurns retrieves a session's turns in chronological order.
func (s *SQLiteStore) GetTurns(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	query := `SELECT turn_id, session_id, user_id, user_text, agent_text, emotion, room_type, created_at
		FROM turns WHERE session_id = ? ORDER BY created_at ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []domain.Turn
	for rows.Next() {
		var t domain.Turn
		var emotion sql.NullString
		if err := rows.Scan(&t.TurnID, &t.SessionID, &t.UserID, &t.UserText, &t.AgentText, &emotion, &t.RoomType, &t.CreatedAt); err != nil {
			return nil, err
		}
		if emotion.Valid {
			t.Emotion = emotion.String
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// RecordEmotionEvent appends one emotion log entry.
func (s *SQLiteStore) RecordEmotionEvent(ctx context.Context, event *domain.EmotionEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO emotion_events (event_id, user_id, tag, summary, intensity, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		event.EventID, event.UserID, event.Tag, event.Summary, event.Intensity, event.CreatedAt)
	return err
}

// GetEmotionEvents retrieves a user's emotion log, newest first.
func (s *SQLiteStore) GetEmotionEvents(ctx context.Context, userID string, limit int) ([]domain.EmotionEvent, error) {
	query := `SELECT event_id, user_id, tag, summary, intensity, created_at
		FROM emotion_events WHERE user_id = ? ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.EmotionEvent
	for rows.Next() {
		var e domain.EmotionEvent
		var summary sql.NullString
		if err := rows.Scan(&e.EventID, &e.UserID, &e.Tag, &summary, &e.Intensity, &e.CreatedAt); err != nil {
			return nil, err
		}
		if summary.Valid {
			e.Summary = summary.String
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// RecordCrisisEvent appends one crisis log entry. Categories are stored as a
// JSON array; the raw message never reaches this layer.
func (s *SQLiteStore) RecordCrisisEvent(ctx context.Context, event *domain.CrisisEvent) error {
	categories, _ := json.Marshal(event.Categories)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO crisis_events (event_id, user_id, severity, categories, message_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		event.EventID, event.UserID, event.Severity, string(categories), event.MessageHash, event.CreatedAt)
	return err
}

// GetCrisisStats aggregates the crisis log for one user.
func (s *SQLiteStore) GetCrisisStats(ctx context.Context, userID string) (*CrisisStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT severity, COUNT(*) FROM crisis_events WHERE user_id = ? GROUP BY severity`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &CrisisStats{BySeverity: map[domain.CrisisSeverity]int{}}
	for rows.Next() {
		var severity string
		var count int
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, err
		}
		stats.BySeverity[domain.CrisisSeverity(severity)] = count
		stats.TotalEvents += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var last time.Time
	err = s.db.QueryRowContext(ctx,
		`SELECT created_at FROM crisis_events WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`,
		userID).Scan(&last)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, err
	default:
		stats.LastEventAt = &last
	}
	return stats, nil
}
