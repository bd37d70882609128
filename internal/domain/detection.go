package domain

// IssueDetection is the router's classification of one user turn. It is a
// transient result, produced fresh per turn and never persisted.
type IssueDetection struct {
	PrimaryIssue   Issue         `json:"primary_issue"`
	Severity       IssueSeverity `json:"severity"`
	Specialist     Specialist    `json:"specialist,omitempty"`
	CrisisKeywords []string      `json:"crisis_keywords,omitempty"`
	Confidence     float64       `json:"confidence"`
}

// CrisisAssessment is the safety screen's verdict for one message.
type CrisisAssessment struct {
	Severity      CrisisSeverity    `json:"severity"`
	KeywordsFound []string          `json:"keywords_found,omitempty"`
	Action        RecommendedAction `json:"recommended_action"`
}

// IsCrisis reports whether the screen found any tier at all.
func (a CrisisAssessment) IsCrisis() bool {
	return a.Severity != CrisisSeverityNone
}

// RequiresEscalation is true iff the tier demands escalation handling.
func (a CrisisAssessment) RequiresEscalation() bool {
	return a.Severity == CrisisSeverityCritical || a.Severity == CrisisSeverityHigh
}

// RestrictConversation is true when the conversation should be held to
// supportive content only. The supervisor still runs the normal merge but
// must prepend the fixed safety block.
func (a CrisisAssessment) RestrictConversation() bool {
	return a.RequiresEscalation()
}

// AgentDraft is one persona's candidate response for the current turn.
// Ephemeral: consumed by the supervisor and discarded.
type AgentDraft struct {
	AgentName string  `json:"agent_name"`
	Text      string  `json:"text"`
	Weight    float64 `json:"weight"`
}

// RoomConfig is a static merge profile: a style plus relative per-agent
// weights. Weights need not sum to 1; they are relative priorities.
type RoomConfig struct {
	RoomID  string             `json:"room_id" yaml:"room_id"`
	Style   RoomStyle          `json:"style" yaml:"style"`
	Weights map[string]float64 `json:"weights" yaml:"weights"`
}

// EmotionTag is the structured output of the emotion tagger. Malformed
// generation output degrades to TagUnknown plus a truncated raw summary.
type EmotionTag struct {
	Tag     string `json:"tag"`
	Summary string `json:"summary"`
}

// TagUnknown is the fallback tag when the tagger output cannot be parsed.
const TagUnknown = "UNKNOWN"
