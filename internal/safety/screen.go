// Package safety implements the crisis screen: tiered keyword detection,
// fixed escalation responses and the append-only crisis log. Detection is
// purely local and deterministic; no retries, no external calls.
package safety

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/soulsync/orchestrator/internal/classify"
	"github.com/soulsync/orchestrator/internal/domain"
)

// Tier keyword lists, checked in strict priority order: the first tier with a
// match wins and lower tiers are not reported. The lists are the canonical
// superset of the previously scattered crisis vocabularies.
var (
	criticalTier = classify.Rule{Label: string(domain.CrisisSeverityCritical), Keywords: []string{
		"kill myself", "end my life", "suicide", "suicidal", "want to die",
		"better off dead", "no reason to live", "plan to die", "hurt myself",
		"end it all", "can't go on", "goodbye forever", "final goodbye",
	}}
	highTier = classify.Rule{Label: string(domain.CrisisSeverityHigh), Keywords: []string{
		"self harm", "self-harm", "cutting", "cut myself", "burning myself",
		"razor", "overdose", "hurting myself", "harm others", "kill someone",
		"kill him", "kill her", "kill them", "hurt them", "get revenge",
		"not safe", "danger", "violent thoughts",
	}}
	mediumTier = classify.Rule{Label: string(domain.CrisisSeverityMedium), Keywords: []string{
		"hopeless", "can't take it", "give up", "pointless", "worthless",
		"burden", "everyone better without me", "don't want to be here",
		"rather not exist", "nothing matters", "no point", "end it",
	}}
	lowTier = classify.Rule{Label: string(domain.CrisisSeverityLow), Keywords: []string{
		"depressed", "really down", "struggling", "hard to cope",
		"overwhelmed", "can't handle", "too much",
	}}

	tiers = classify.RuleSet{criticalTier, highTier, mediumTier, lowTier}
)

// crisisEmotionLabels force at least a medium assessment even without a
// keyword match.
var crisisEmotionLabels = map[string]bool{
	"hopeless":  true,
	"desperate": true,
	"suicidal":  true,
}

var actionsBySeverity = map[domain.CrisisSeverity]domain.RecommendedAction{
	domain.CrisisSeverityCritical: domain.ActionImmediateEscalation,
	domain.CrisisSeverityHigh:     domain.ActionEscalationWithResources,
	domain.CrisisSeverityMedium:   domain.ActionSupportiveResources,
	domain.CrisisSeverityLow:      domain.ActionMonitorAndSupport,
	domain.CrisisSeverityNone:     domain.ActionContinueConversation,
}

// Assess evaluates a message (and an optional emotion label) against the
// severity tiers. Pure function: timestamps and logging are side data handled
// by Screener, never decision inputs. An empty message returns "none".
func Assess(message, emotionLabel string) domain.CrisisAssessment {
	if message == "" {
		return domain.CrisisAssessment{
			Severity: domain.CrisisSeverityNone,
			Action:   domain.ActionContinueConversation,
		}
	}

	severity := domain.CrisisSeverityNone
	var found []string
	if label, ok := tiers.FirstMatch(message); ok {
		severity = domain.CrisisSeverity(label)
		found = matchedKeywords(severity, message)
	}

	if crisisEmotionLabels[emotionLabel] && rank(severity) < rank(domain.CrisisSeverityMedium) {
		severity = domain.CrisisSeverityMedium
	}

	return domain.CrisisAssessment{
		Severity:      severity,
		KeywordsFound: found,
		Action:        actionsBySeverity[severity],
	}
}

// Recorder persists crisis log entries.
type Recorder interface {
	RecordCrisisEvent(ctx context.Context, event *domain.CrisisEvent) error
}

// Screener wraps Assess with the append-only crisis log side effect.
type Screener struct {
	recorder Recorder
	logger   *zap.Logger
}

// NewScreener creates a screener. recorder may be nil for a log-free screen.
func NewScreener(recorder Recorder, logger *zap.Logger) *Screener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screener{recorder: recorder, logger: logger}
}

// Screen assesses the message and, for any non-"none" result, appends a log
// entry holding a hash reference to the message, never its text.
func (s *Screener) Screen(ctx context.Context, userID, message, emotionLabel string) domain.CrisisAssessment {
	assessment := Assess(message, emotionLabel)
	if !assessment.IsCrisis() {
		return assessment
	}

	s.logger.Warn("crisis screen triggered",
		zap.String("severity", string(assessment.Severity)),
		zap.String("action", string(assessment.Action)),
	)

	if s.recorder != nil {
		event := &domain.CrisisEvent{
			EventID:     "crs_" + uuid.New().String()[:8],
			UserID:      userID,
			Severity:    assessment.Severity,
			Categories:  classify.DetectCrisisCategories(message),
			MessageHash: MessageHash(message),
			CreatedAt:   time.Now(),
		}
		if err := s.recorder.RecordCrisisEvent(ctx, event); err != nil {
			s.logger.Error("failed to record crisis event", zap.Error(err))
		}
	}

	return assessment
}

// MessageHash returns the opaque reference stored in the crisis log instead
// of the raw message.
func MessageHash(message string) string {
	sum := sha256.Sum256([]byte(message))
	return hex.EncodeToString(sum[:])
}

func matchedKeywords(severity domain.CrisisSeverity, message string) []string {
	lowered := strings.ToLower(message)
	for _, tier := range tiers {
		if tier.Label != string(severity) {
			continue
		}
		var found []string
		for _, kw := range tier.Keywords {
			if strings.Contains(lowered, kw) {
				found = append(found, kw)
			}
		}
		return found
	}
	return nil
}

func rank(s domain.CrisisSeverity) int {
	switch s {
	case domain.CrisisSeverityCritical:
		return 4
	case domain.CrisisSeverityHigh:
		return 3
	case domain.CrisisSeverityMedium:
		return 2
	case domain.CrisisSeverityLow:
		return 1
	default:
		return 0
	}
}
