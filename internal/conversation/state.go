// Package conversation holds per-session mutable state: the message log,
// the turn counter and the rolling buffers that feed anti-repetition and
// emoji-budget hints. One turn at a time may mutate a conversation.
package conversation

import (
	"strings"
	"sync"

	"github.com/soulsync/orchestrator/internal/domain"
)

const (
	// responseHistoryCap bounds the ring of recent agent outputs kept for
	// repetition checks.
	responseHistoryCap = 5
	// snippetHistory is how many recent responses feed the phrase hint.
	snippetHistory = 3
	// snippetMaxLen truncates each injected snippet.
	snippetMaxLen = 80
	// emojiSoftCap is the per-conversation emoji budget.
	emojiSoftCap = 1
)

// emojiSet is the fixed set counted against the emoji budget.
var emojiSet = []string{"💗", "🤍", "🌿", "✨", "💙", "💔", "💠", "🌟"}

// Phrase tables that resolve context slots from user wording. School and
// work wording settles the age slot too, since it places the user as a
// student or an adult.
var (
	settingPhrases = []string{
		"at school", "in school", "in class", "my class", "at college",
		"at work", "my job", "my workplace", "at home", "online",
	}
	agePhrases = []string{
		"years old", "i'm an adult", "i am an adult", "still in school",
		"in high school", "in middle school", "in college", "my boss",
		"my coworker", "my colleagues",
	}
	supportPhrases = []string{
		"my friend", "my best friend", "my mom", "my dad", "my mum",
		"my sister", "my brother", "my therapist", "my counselor",
		"my partner", "i talk to", "i can talk to", "someone i trust",
	}
	studentOrAdultPhrases = []string{
		"school", "college", "class", "my job", "at work", "my boss",
		"my coworker",
	}
)

// ContextSlots tracks which conversational facts are already settled, either
// because the user's wording named them or because they were asked about once.
type ContextSlots struct {
	Setting bool
	Age     bool
	Support bool
}

// Conversation is the state of one active chat. Not safe for concurrent
// mutation; callers serialize turns via Manager.Acquire.
type Conversation struct {
	SessionID string
	UserID    string
	RoomID    string

	messages        []domain.Message
	responseHistory []string
	turnCount       int
	emojiCount      int
	slots           ContextSlots
}

// New creates an empty conversation.
func New(sessionID, userID, roomID string) *Conversation {
	return &Conversation{SessionID: sessionID, UserID: userID, RoomID: roomID}
}

// AppendUserMessage records a user message, advances the turn counter and
// resolves any context slots the message names.
func (c *Conversation) AppendUserMessage(text string) {
	c.messages = append(c.messages, domain.Message{Role: domain.RoleUser, Text: text})
	c.turnCount++
	c.resolveSlots(text)
}

func (c *Conversation) resolveSlots(text string) {
	lower := strings.ToLower(text)
	if containsAnyPhrase(lower, settingPhrases) {
		c.slots.Setting = true
	}
	if containsAnyPhrase(lower, agePhrases) || containsAnyPhrase(lower, studentOrAdultPhrases) {
		c.slots.Age = true
	}
	if containsAnyPhrase(lower, supportPhrases) {
		c.slots.Support = true
	}
}

// ContextSlots returns the slots currently settled for this conversation.
func (c *Conversation) ContextSlots() ContextSlots {
	return c.slots
}

// MarkContextAsked settles a slot after a clarifying question went out for
// it. One ask per slot per conversation, whether or not the answer names it.
func (c *Conversation) MarkContextAsked(slot string) {
	switch slot {
	case "setting":
		c.slots.Setting = true
	case "age":
		c.slots.Age = true
	case "support":
		c.slots.Support = true
	}
}

// AppendAgentMessage records the composed reply, updates the response ring
// and charges the emoji budget when the output spends it.
func (c *Conversation) AppendAgentMessage(text string) {
	c.messages = append(c.messages, domain.Message{Role: domain.RoleAgent, Text: text})

	c.responseHistory = append(c.responseHistory, text)
	if len(c.responseHistory) > responseHistoryCap {
		c.responseHistory = c.responseHistory[len(c.responseHistory)-responseHistoryCap:]
	}

	if containsEmoji(text) {
		c.emojiCount++
	}
}

// TurnCount is the number of user messages seen so far (1-based once the
// current turn's message is appended).
func (c *Conversation) TurnCount() int {
	return c.turnCount
}

// Band returns the turn band for the current turn count.
func (c *Conversation) Band() domain.TurnBand {
	return domain.BandForTurn(c.turnCount)
}

// Window returns the trailing n messages of the conversation.
func (c *Conversation) Window(n int) []domain.Message {
	if n <= 0 || n >= len(c.messages) {
		return append([]domain.Message(nil), c.messages...)
	}
	return append([]domain.Message(nil), c.messages[len(c.messages)-n:]...)
}

// PriorUserMessages returns up to n user messages before the most recent one,
// oldest first. This is the router's history context.
func (c *Conversation) PriorUserMessages(n int) []string {
	var users []string
	for _, m := range c.messages {
		if m.Role == domain.RoleUser {
			users = append(users, m.Text)
		}
	}
	if len(users) == 0 {
		return nil
	}
	users = users[:len(users)-1] // exclude the current turn's message
	if len(users) > n {
		users = users[len(users)-n:]
	}
	return users
}

// RecentOpenings returns the first sentence (truncated) of each of the last
// few responses, oldest first, for the anti-repetition hint.
func (c *Conversation) RecentOpenings() []string {
	history := c.responseHistory
	if len(history) > snippetHistory {
		history = history[len(history)-snippetHistory:]
	}
	var openings []string
	for _, resp := range history {
		if s := firstSentence(resp); s != "" {
			openings = append(openings, s)
		}
	}
	return openings
}

// RecentResponses returns the retained agent outputs, oldest first.
func (c *Conversation) RecentResponses() []string {
	return append([]string(nil), c.responseHistory...)
}

// EmojiBudgetExhausted reports whether future drafts should avoid emojis.
func (c *Conversation) EmojiBudgetExhausted() bool {
	return c.emojiCount >= emojiSoftCap
}

func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, ".!?\n"); i >= 0 {
		text = text[:i+1]
	}
	if runes := []rune(text); len(runes) > snippetMaxLen {
		text = string(runes[:snippetMaxLen])
	}
	return strings.TrimSpace(text)
}

func containsEmoji(text string) bool {
	for _, e := range emojiSet {
		if strings.Contains(text, e) {
			return true
		}
	}
	return false
}

func containsAnyPhrase(lowered string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}

// Manager owns the live conversations and serializes turns per session.
// Double-submitted turns for the same session queue on the session lock.
type Manager struct {
	mu    sync.Mutex
	convs map[string]*Conversation
	locks map[string]*sync.Mutex
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		convs: make(map[string]*Conversation),
		locks: make(map[string]*sync.Mutex),
	}
}

// Acquire returns the conversation for a session, creating it on first use,
// with its turn lock held. The returned release func must be called once the
// turn fully completes.
func (m *Manager) Acquire(sessionID, userID, roomID string) (*Conversation, func()) {
	m.mu.Lock()
	conv, ok := m.convs[sessionID]
	if !ok {
		conv = New(sessionID, userID, roomID)
		m.convs[sessionID] = conv
		m.locks[sessionID] = &sync.Mutex{}
	}
	lock := m.locks[sessionID]
	m.mu.Unlock()

	lock.Lock()
	return conv, lock.Unlock
}

// Drop removes a conversation at session end.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.convs, sessionID)
	delete(m.locks, sessionID)
}
