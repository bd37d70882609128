package classify

import (
	"strings"

	"github.com/soulsync/orchestrator/internal/domain"
)

// Classify analyzes a user message and returns the primary concern, its
// severity and the suggested specialist. Pure and deterministic: identical
// inputs always yield identical output.
//
// The crisis gate runs first over the last three prior user messages plus the
// current one. Any hit short-circuits issue scoring entirely.
func Classify(message string, history []string) domain.IssueDetection {
	context := combinedContext(message, history)

	if categories := crisisGate.MatchedLabels(context); len(categories) > 0 {
		return domain.IssueDetection{
			PrimaryIssue:   domain.IssueCrisis,
			Severity:       domain.IssueSeverityCrisis,
			Specialist:     domain.SpecialistCrisis,
			CrisisKeywords: categories,
			Confidence:     1.0,
		}
	}

	label, maxScore := issueRules.Best(context)
	if maxScore == 0 {
		return domain.IssueDetection{
			PrimaryIssue: domain.IssueGeneral,
			Severity:     domain.IssueSeverityMild,
			Confidence:   0.5,
		}
	}

	primary := domain.Issue(label)
	severity := severityForScore(maxScore)
	if containsAny(strings.ToLower(message), intensityAmplifiers) {
		severity = escalateOneTier(severity)
	}

	confidence := float64(maxScore) / 5.0
	if confidence > 1.0 {
		confidence = 1.0
	}

	return domain.IssueDetection{
		PrimaryIssue: primary,
		Severity:     severity,
		Specialist:   specialistByIssue[primary],
		Confidence:   confidence,
	}
}

// DetectCrisisCategories runs only the crisis gate over a single message.
func DetectCrisisCategories(message string) []string {
	return crisisGate.MatchedLabels(message)
}

func combinedContext(message string, history []string) string {
	if len(history) > 3 {
		history = history[len(history)-3:]
	}
	parts := append(append([]string{}, history...), message)
	return strings.ToLower(strings.Join(parts, " "))
}

func severityForScore(score int) domain.IssueSeverity {
	switch {
	case score >= 5:
		return domain.IssueSeverityUrgent
	case score >= 3:
		return domain.IssueSeverityModerate
	default:
		return domain.IssueSeverityMild
	}
}

func escalateOneTier(s domain.IssueSeverity) domain.IssueSeverity {
	switch s {
	case domain.IssueSeverityMild:
		return domain.IssueSeverityModerate
	case domain.IssueSeverityModerate:
		return domain.IssueSeverityUrgent
	default:
		return s
	}
}
