package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/soulsync/orchestrator/internal/agents"
	"github.com/soulsync/orchestrator/internal/classify"
	"github.com/soulsync/orchestrator/internal/domain"
	"github.com/soulsync/orchestrator/internal/supervisor"
)

// ErrEmptyMessage rejects turns with no user text.
var ErrEmptyMessage = errors.New("message must not be empty")

const dialogueWindow = 6

// TurnResult is what one processed turn hands back to the transport.
type TurnResult struct {
	SessionID  string                  `json:"session_id"`
	TurnID     string                  `json:"turn_id"`
	Reply      string                  `json:"reply"`
	Emotion    domain.EmotionTag       `json:"emotion"`
	Detection  domain.IssueDetection   `json:"detection"`
	Assessment domain.CrisisAssessment `json:"assessment"`
	Decision   string                  `json:"decision"`
	TurnCount  int                     `json:"turn_count"`
	Branch     string                  `json:"branch"`
	Insight    string                  `json:"insight,omitempty"`
}

// ProcessTurn runs one user message through the full pipeline. Turns for the
// same session are serialized; different sessions proceed independently.
func (s *Service) ProcessTurn(ctx context.Context, sessionID, userID, roomID, message string) (*TurnResult, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}

	if sessionID == "" {
		sessionID = "sess_" + uuid.New().String()[:8]
	}
	if _, ok := s.rooms[roomID]; !ok {
		roomID = DefaultRoomID
	}

	session, err := s.store.GetOrCreateSession(ctx, sessionID, userID, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	room := s.Room(session.RoomID)

	conv, release := s.convs.Acquire(session.SessionID, userID, session.RoomID)
	defer release()

	conv.AppendUserMessage(message)
	history := conv.PriorUserMessages(3)

	// Tagger failure degrades to UNKNOWN rather than failing the turn; the
	// merge path has its own fallback and the tag is advisory.
	tag, err := s.tagger.TagLatest(ctx, message)
	if err != nil {
		s.logger.Warn("emotion tagging failed", zap.Error(err))
		tag = domain.EmotionTag{Tag: domain.TagUnknown}
	}

	detection := classify.Classify(message, history)

	hints := agents.BuildHintContext(message, conv.TurnCount(), conv.RecentOpenings(), conv.EmojiBudgetExhausted(), tag)
	roster := rosterFor(room, detection)
	drafts := s.drafter.Draft(ctx, roster, conv.Window(dialogueWindow), hints)

	slots := conv.ContextSlots()
	result := s.super.Respond(ctx, drafts, message, room, supervisor.TurnContext{
		UserID:        userID,
		EmotionLabel:  emotionLabel(message, hints),
		TurnCount:     conv.TurnCount(),
		KnownSetting:  slots.Setting,
		KnownAge:      slots.Age,
		KnownSupport:  slots.Support,
		RecentReplies: conv.RecentResponses(),
	})
	if result.AskedSlot != "" {
		conv.MarkContextAsked(result.AskedSlot)
	}

	decision := "continue"
	if s.policyEngine != nil {
		decision, err = s.policyEngine.Decide(ctx, result.Assessment)
		if err != nil {
			s.logger.Error("escalation policy evaluation failed", zap.Error(err))
			decision = "continue"
		}
	}

	reply := result.Text
	insight := ""
	if ShouldOfferSave(message, reply, conv.TurnCount()) {
		insight = ExtractInsight(reply)
		reply += saveOffer
	}

	conv.AppendAgentMessage(reply)

	turn := &domain.Turn{
		TurnID:    "turn_" + uuid.New().String()[:8],
		SessionID: session.SessionID,
		UserID:    userID,
		UserText:  message,
		AgentText: reply,
		Emotion:   tag.Tag,
		RoomType:  session.RoomID,
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveTurn(ctx, turn); err != nil {
		s.logger.Error("failed to persist turn", zap.Error(err))
	}

	if tag.Tag != "" && tag.Tag != domain.TagUnknown {
		event := &domain.EmotionEvent{
			EventID:   "emo_" + uuid.New().String()[:8],
			UserID:    userID,
			Tag:       tag.Tag,
			Summary:   tag.Summary,
			Intensity: detection.Confidence,
			CreatedAt: time.Now(),
		}
		if err := s.store.RecordEmotionEvent(ctx, event); err != nil {
			s.logger.Error("failed to persist emotion event", zap.Error(err))
		}
	}

	s.logger.Info("turn processed",
		zap.String("session_id", session.SessionID),
		zap.String("turn_id", turn.TurnID),
		zap.String("branch", result.Branch),
		zap.String("issue", string(detection.PrimaryIssue)),
		zap.String("severity", string(result.Assessment.Severity)),
		zap.String("decision", decision),
	)

	return &TurnResult{
		SessionID:  session.SessionID,
		TurnID:     turn.TurnID,
		Reply:      reply,
		Emotion:    tag,
		Detection:  detection,
		Assessment: result.Assessment,
		Decision:   decision,
		TurnCount:  conv.TurnCount(),
		Branch:     result.Branch,
		Insight:    insight,
	}, nil
}

// History returns a session's persisted turns.
func (s *Service) History(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	turns, err := s.store.GetTurns(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get turns: %w", err)
	}
	return turns, nil
}

// rosterFor adds the family specialist when the room or the detection calls
// for it.
func rosterFor(room domain.RoomConfig, detection domain.IssueDetection) []agents.Persona {
	if room.Style == domain.RoomStyleSystemic ||
		detection.Specialist == domain.SpecialistFamily ||
		detection.PrimaryIssue == domain.IssueFamilyConflict {
		return agents.RosterWithFamily()
	}
	return agents.Roster()
}

// emotionLabel derives the label the safety screen reads. Hopelessness
// wording maps to "hopeless", which forces at least a medium assessment.
func emotionLabel(message string, hints agents.HintContext) string {
	if classify.DetectHopelessness(message) {
		return "hopeless"
	}
	return hints.EmotionContext
}
