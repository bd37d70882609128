// Package supervisor fuses the per-persona drafts into the single reply the
// user sees. Branch order is fixed: safety, action request, missing context,
// weighted merge. Each branch short-circuits the rest.
package supervisor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/soulsync/orchestrator/internal/adapter/llm"
	"github.com/soulsync/orchestrator/internal/domain"
	"github.com/soulsync/orchestrator/internal/oars"
	"github.com/soulsync/orchestrator/internal/safety"
)

// fallbackReply is the last-resort static sentence. The merge must never
// return an empty string.
const fallbackReply = "I'm here with you, and what you're going through matters. Can you tell me a little more about what's weighing on you right now?"

var actionRequestPhrases = []string{
	"what do i do", "what should i do", "how do i", "how can i",
	"help me", "what can i do", "any advice", "give me advice",
}

var isolationPhrases = []string{
	"no friends", "nobody to talk", "no one to talk", "all alone",
	"no one cares", "nobody cares", "by myself",
}

var conflictCuePhrases = []string{
	"bully", "bullying", "fight", "fought", "they hate me", "pick on me",
	"everyone hates", "against me",
}

// TurnContext carries the per-turn facts the branch rules read, including
// which context slots are already resolved for this conversation.
type TurnContext struct {
	UserID       string
	EmotionLabel string
	TurnCount    int
	KnownSetting bool
	KnownAge     bool
	KnownSupport bool

	// RecentReplies are the conversation's retained agent outputs, used to
	// reject a merge that parrots an earlier reply.
	RecentReplies []string
}

// Screener is the safety gate consulted before any merge output.
type Screener interface {
	Screen(ctx context.Context, userID, message, emotionLabel string) domain.CrisisAssessment
}

// Supervisor owns the merge engine.
type Supervisor struct {
	gen      llm.Generator
	screener Screener
	policy   *oars.Policy
	logger   *zap.Logger
}

func New(gen llm.Generator, screener Screener, policy *oars.Policy, logger *zap.Logger) *Supervisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy == nil {
		policy = oars.NewPolicy()
	}
	return &Supervisor{gen: gen, screener: screener, policy: policy, logger: logger}
}

// Result is the merge outcome plus the safety verdict that shaped it.
type Result struct {
	Text       string
	Assessment domain.CrisisAssessment
	Branch     string // "safety", "action_request", "missing_context", or "merge"

	// AskedSlot names the context slot the missing-context branch asked
	// about ("setting", "age" or "support"); empty on the other branches.
	AskedSlot string
}

// Respond runs the branch state machine for one turn. All drafts must
// already be collected; the caller owns conversation-state mutation.
func (s *Supervisor) Respond(ctx context.Context, drafts []domain.AgentDraft, userMessage string, room domain.RoomConfig, tc TurnContext) Result {
	for i := range drafts {
		drafts[i].Weight = room.Weights[drafts[i].AgentName]
	}

	assessment := s.screener.Screen(ctx, tc.UserID, userMessage, tc.EmotionLabel)

	// Safety branch: the normal merge still runs so continuity is not lost,
	// but the fixed escalation block leads the reply.
	if assessment.IsCrisis() {
		merged := s.weightedMerge(ctx, drafts, userMessage, room, tc)
		return Result{
			Text:       safety.Response(assessment.Severity) + "\n\n" + merged,
			Assessment: assessment,
			Branch:     "safety",
		}
	}

	if isActionRequest(userMessage) {
		return Result{
			Text:       s.actionResponse(ctx, drafts, userMessage),
			Assessment: assessment,
			Branch:     "action_request",
		}
	}

	if question, slot, ok := clarifyingQuestion(userMessage, tc); ok {
		merged := s.weightedMerge(ctx, drafts, userMessage, room, tc)
		return Result{
			Text:       merged + "\n\n" + question,
			Assessment: assessment,
			Branch:     "missing_context",
			AskedSlot:  slot,
		}
	}

	return Result{
		Text:       s.weightedMerge(ctx, drafts, userMessage, room, tc),
		Assessment: assessment,
		Branch:     "merge",
	}
}

// PriorityLabel maps a merge weight onto the instruction label the merge
// prompt uses for that agent's draft.
func PriorityLabel(weight float64) string {
	switch {
	case weight >= 0.5:
		return "HIGH"
	case weight >= 0.3:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// BuildMergePrompt renders the weighted-merge instruction: one block per
// agent with its priority label, then the room style guidance.
func BuildMergePrompt(drafts []domain.AgentDraft, userMessage string, room domain.RoomConfig) string {
	var b strings.Builder
	b.WriteString("You are the supervisor of a multi-voice emotional support system.\n")
	b.WriteString("Fuse the candidate drafts below into ONE warm reply of 2-4 sentences.\n")
	b.WriteString("No lists. No duplicate validations. At most one closing question.\n\n")
	fmt.Fprintf(&b, "User message: %s\n", userMessage)
	fmt.Fprintf(&b, "Room style: %s\n\n", room.Style)

	for _, d := range drafts {
		fmt.Fprintf(&b, "[%s priority: %s]\n%s\n\n", d.AgentName, PriorityLabel(d.Weight), d.Text)
	}

	if guidance := styleGuidance(room.Style); guidance != "" {
		b.WriteString(guidance)
	}
	return b.String()
}

func styleGuidance(style domain.RoomStyle) string {
	switch style {
	case domain.RoomStyleCrisis:
		return "STYLE: lead with safety and presence. Short sentences. No exploration, no homework. Make the next step concrete and small.\n"
	case domain.RoomStyleTraumaInformed:
		return "STYLE: trauma-informed. Never press for details of what happened. Emphasize choice, control and present-moment safety.\n"
	case domain.RoomStyleGriefFocused:
		return "STYLE: grief-focused. Do not rush toward meaning or silver linings. Let the loss be as big as it is.\n"
	default:
		return ""
	}
}

func (s *Supervisor) weightedMerge(ctx context.Context, drafts []domain.AgentDraft, userMessage string, room domain.RoomConfig, tc TurnContext) string {
	prompt := BuildMergePrompt(drafts, userMessage, room)

	text, err := s.gen.Generate(ctx, prompt, []llm.Message{
		{Role: "user", Content: userMessage},
	})
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			s.logger.Error("merge generation failed, using static fallback", zap.Error(err))
		} else {
			s.logger.Warn("merge generation returned empty text, using static fallback")
		}
		return fallbackReply
	}

	// A merge that parrots a retained reply gets redirected with a fresh
	// follow-up question instead of being surfaced verbatim.
	if s.policy.IsRepetitive(text, tc.RecentReplies) {
		s.logger.Warn("merged reply repeats a recent response, redirecting")
		text = text + "\n\n" + s.policy.SuggestFollowup(userMessage)
	}

	return s.policy.Enhance(text, tc.EmotionLabel, userMessage)
}

// actionResponse answers an explicit "what do I do" with immediate coping
// plus a menu of next-step categories, seeded with the cognitive draft.
func (s *Supervisor) actionResponse(ctx context.Context, drafts []domain.AgentDraft, userMessage string) string {
	seed := ""
	for _, d := range drafts {
		if d.AgentName == "cognitive" {
			seed = d.Text
			break
		}
	}

	var b strings.Builder
	b.WriteString("The user is explicitly asking what to do. Respond with:\n")
	b.WriteString("1. One small immediate coping step they can take right now.\n")
	b.WriteString("2. This exact menu, as the closing line: \"Which would help most right now: A) Immediate coping, B) Understanding why this hurts, or C) Practical steps?\"\n")
	b.WriteString("Keep it to 3-4 sentences before the menu. Warm, concrete, no lectures.\n")
	if seed != "" {
		fmt.Fprintf(&b, "\nContext from the cognitive perspective:\n%s\n", seed)
	}

	text, err := s.gen.Generate(ctx, b.String(), []llm.Message{
		{Role: "user", Content: userMessage},
	})
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			s.logger.Error("action-request generation failed, using static fallback", zap.Error(err))
		}
		return fallbackReply
	}
	return text
}

func isActionRequest(message string) bool {
	lower := strings.ToLower(message)
	for _, p := range actionRequestPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// clarifyingQuestion picks at most one follow-up for an unresolved context
// slot, naming the slot it asked about. Rules are checked in fixed order;
// the first match wins, and no question fires once every cued slot is known.
func clarifyingQuestion(message string, tc TurnContext) (question, slot string, ok bool) {
	lower := strings.ToLower(message)
	conflictCue := containsAny(lower, conflictCuePhrases)
	isolationCue := containsAny(lower, isolationPhrases)

	switch {
	case conflictCue && !tc.KnownSetting:
		return "Is this happening at school, at work, or somewhere else?", "setting", true
	case conflictCue && !tc.KnownAge:
		return "If you're comfortable sharing, are you still in school, or is this an adult situation?", "age", true
	case isolationCue && !tc.KnownSupport:
		return "Is there anyone around you, even one person, you feel you could talk to about this?", "support", true
	default:
		return "", "", false
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
