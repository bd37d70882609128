package domain

import "time"

// Session represents one conversation session.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	RoomID    string    `json:"room_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a single message in a conversation. Immutable once created.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Turn is one persisted user message plus the composed reply.
type Turn struct {
	TurnID    string    `json:"turn_id"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	UserText  string    `json:"user_text"`
	AgentText string    `json:"agent_text"`
	Emotion   string    `json:"emotion,omitempty"`
	RoomType  string    `json:"room_type"`
	CreatedAt time.Time `json:"created_at"`
}

// EmotionEvent records a tagged emotion for a user.
type EmotionEvent struct {
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Tag       string    `json:"tag"`
	Summary   string    `json:"summary,omitempty"`
	Intensity float64   `json:"intensity"`
	CreatedAt time.Time `json:"created_at"`
}

// CrisisEvent is an append-only safety-screen log entry. The raw message is
// never stored, only a hash reference.
type CrisisEvent struct {
	EventID     string         `json:"event_id"`
	UserID      string         `json:"user_id,omitempty"`
	Severity    CrisisSeverity `json:"severity"`
	Categories  []string       `json:"categories"`
	MessageHash string         `json:"message_hash"`
	CreatedAt   time.Time      `json:"created_at"`
}
