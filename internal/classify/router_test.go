package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulsync/orchestrator/internal/domain"
)

func TestClassifyCrisisShortCircuit(t *testing.T) {
	det := Classify("I want to kill myself and no one cares about me", nil)

	assert.Equal(t, domain.IssueCrisis, det.PrimaryIssue)
	assert.Equal(t, domain.IssueSeverityCrisis, det.Severity)
	assert.Equal(t, domain.SpecialistCrisis, det.Specialist)
	assert.Equal(t, 1.0, det.Confidence)
	assert.Contains(t, det.CrisisKeywords, "suicide")
}

func TestClassifyCrisisFromHistory(t *testing.T) {
	// The gate scans the last three prior user messages too.
	history := []string{"hello", "i took too many pills last night"}
	det := Classify("i don't know what to say", history)

	assert.Equal(t, domain.IssueCrisis, det.PrimaryIssue)
	assert.Contains(t, det.CrisisKeywords, "substance_overdose")
}

func TestClassifyGeneralDefault(t *testing.T) {
	det := Classify("just wanted to say hi today", nil)

	// Exact values, not approximate.
	assert.Equal(t, domain.IssueGeneral, det.PrimaryIssue)
	assert.Equal(t, domain.IssueSeverityMild, det.Severity)
	assert.Equal(t, domain.Specialist(""), det.Specialist)
	assert.Equal(t, 0.5, det.Confidence)
	assert.Empty(t, det.CrisisKeywords)
}

func TestClassifyEmptyInput(t *testing.T) {
	det := Classify("", nil)
	assert.Equal(t, domain.IssueGeneral, det.PrimaryIssue)
	assert.Equal(t, 0.5, det.Confidence)
}

func TestClassifyHighestScoreWins(t *testing.T) {
	// breakup scores 4 (broke up, heartbroken, dumped me, left me),
	// cheating scores 2 (affair, cheating).
	msg := "we broke up after the affair, she was cheating, i'm heartbroken, she dumped me and left me"
	det := Classify(msg, nil)

	require.Equal(t, domain.IssueRelationshipBreakup, det.PrimaryIssue)
	assert.Equal(t, domain.SpecialistRelationship, det.Specialist)
	assert.Equal(t, domain.IssueSeverityModerate, det.Severity)
	assert.InDelta(t, 0.8, det.Confidence, 1e-9)
}

func TestClassifyCheatingScenario(t *testing.T) {
	det := Classify("my boyfriend cheated on me", nil)

	assert.Equal(t, domain.IssueRelationshipCheating, det.PrimaryIssue)
	assert.Equal(t, domain.SpecialistRelationship, det.Specialist)
	assert.Contains(t, []domain.IssueSeverity{
		domain.IssueSeverityMild, domain.IssueSeverityModerate,
	}, det.Severity)
}

func TestClassifyAbuseRoutesToCrisisAgent(t *testing.T) {
	det := Classify("my partner hits me and i'm scared of him", nil)

	assert.Equal(t, domain.IssueRelationshipAbuse, det.PrimaryIssue)
	assert.Equal(t, domain.SpecialistCrisis, det.Specialist)
}

func TestClassifyIntensityAmplifier(t *testing.T) {
	base := Classify("my boyfriend cheated on me", nil)
	amplified := Classify("my boyfriend cheated on me and it is unbearable", nil)

	require.Equal(t, domain.IssueSeverityMild, base.Severity)
	assert.Equal(t, domain.IssueSeverityModerate, amplified.Severity)
}

func TestClassifyIdempotent(t *testing.T) {
	msg := "i feel so lonely, no friends, always left out"
	first := Classify(msg, []string{"earlier message"})
	second := Classify(msg, []string{"earlier message"})
	assert.Equal(t, first, second)
}

func TestDetectEmotionContext(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"we had a huge fight and he yelled", "conflict"},
		{"i feel so sad and alone", "sadness"},
		{"she cheated and broke my trust", "betrayal"},
		{"i'm exhausted and stressed", "stress"},
		{"i'm panicking, can't breathe", "panic"},
		{"it's all my fault, i ruined it", "guilt"},
		{"nice weather we're having", "general"},
	}
	for _, tc := range cases {
		if got := DetectEmotionContext(tc.text); got != tc.want {
			t.Errorf("DetectEmotionContext(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestDetectTopicOrdering(t *testing.T) {
	// Cheating is registered before breakup and must win when both match.
	got := DetectTopic("we broke up because of the cheating")
	assert.Equal(t, "relationship_cheating", got)
}

func TestDetectDistortions(t *testing.T) {
	got := DetectDistortions("everyone ignores me, they all hate me, it's my fault, nothing will change")
	assert.Equal(t, []string{
		"all-or-nothing thinking",
		"self-blame/personalization",
		"overgeneralization to future",
		"mind-reading",
	}, got)
}

func TestDetectPushback(t *testing.T) {
	assert.True(t, DetectPushback("you're not listening to me"))
	assert.False(t, DetectPushback("thanks, that helped"))
}
