package agents

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulsync/orchestrator/internal/adapter/llm"
	"github.com/soulsync/orchestrator/internal/domain"
)

// recordingGenerator captures every system instruction it is asked to draft
// with, keyed by a marker found in the instruction.
type recordingGenerator struct {
	mu      sync.Mutex
	systems []string
	fail    map[string]error // persona marker -> error
	reply   string
}

func (r *recordingGenerator) Generate(_ context.Context, system string, _ []llm.Message) (string, error) {
	r.mu.Lock()
	r.systems = append(r.systems, system)
	r.mu.Unlock()
	for marker, err := range r.fail {
		if strings.Contains(system, marker) {
			return "", err
		}
	}
	if r.reply != "" {
		return r.reply, nil
	}
	return "draft text", nil
}

func TestDraftFansOutToAllPersonas(t *testing.T) {
	gen := &recordingGenerator{}
	d := NewDrafter(gen, nil)

	window := []domain.Message{
		{Role: domain.RoleUser, Text: "my boyfriend cheated on me"},
	}
	hints := BuildHintContext("my boyfriend cheated on me", 1, nil, false, domain.EmotionTag{})

	drafts := d.Draft(context.Background(), Roster(), window, hints)
	require.Len(t, drafts, 3)
	assert.Equal(t, "listener", drafts[0].AgentName)
	assert.Equal(t, "cognitive", drafts[1].AgentName)
	assert.Equal(t, "mindfulness", drafts[2].AgentName)
	for _, dr := range drafts {
		assert.Equal(t, "draft text", dr.Text)
	}
	assert.Len(t, gen.systems, 3)
}

func TestDraftFailureSubstitutesEmptyString(t *testing.T) {
	gen := &recordingGenerator{fail: map[string]error{"Cognitive Agent": errors.New("provider down")}}
	d := NewDrafter(gen, nil)

	drafts := d.Draft(context.Background(), Roster(), []domain.Message{
		{Role: domain.RoleUser, Text: "hi"},
	}, HintContext{TurnCount: 1})

	require.Len(t, drafts, 3)
	assert.Equal(t, "", drafts[1].Text)
	assert.Equal(t, "draft text", drafts[0].Text)
	assert.Equal(t, "draft text", drafts[2].Text)
}

func TestHintRenderingPerPersona(t *testing.T) {
	h := BuildHintContext("everyone ignores me, they all hate me and bully me at school and it's my fault", 4,
		[]string{"It sounds like you're"}, true, domain.EmotionTag{Tag: "LONELY / UNWANTED"})

	listener := h.Render(Listener())
	assert.Contains(t, listener, "MID CONVERSATION")
	assert.Contains(t, listener, "It sounds like you're")
	assert.Contains(t, listener, "Emoji budget")

	cognitive := h.Render(Cognitive())
	assert.Contains(t, cognitive, "all-or-nothing thinking")
	assert.Contains(t, cognitive, "mind-reading")

	// Mindfulness takes no dynamic hints beyond the emoji budget.
	mindfulness := h.Render(Mindfulness())
	assert.NotContains(t, mindfulness, "MID CONVERSATION")
	assert.NotContains(t, mindfulness, "thinking patterns")
	assert.Contains(t, mindfulness, "Emoji budget")
}

func TestHintTurnBands(t *testing.T) {
	early := HintContext{TurnCount: 2}.Render(Listener())
	mid := HintContext{TurnCount: 5}.Render(Listener())
	later := HintContext{TurnCount: 6}.Render(Listener())

	assert.Contains(t, early, "EARLY CONVERSATION")
	assert.Contains(t, mid, "MID CONVERSATION")
	assert.Contains(t, later, "LATER CONVERSATION")
}

func TestHintPushbackStopsAnalysis(t *testing.T) {
	h := BuildHintContext("you don't understand, i told you already", 7, nil, false, domain.EmotionTag{})
	require.True(t, h.Pushback)
	out := h.Render(Cognitive())
	assert.Contains(t, out, "USER PUSHBACK")
}

func TestTaggerParsesJSON(t *testing.T) {
	gen := &recordingGenerator{reply: `{"tag":"SELF-BLAME / SHAME","summary":"they blame themselves for the breakup"}`}
	tagger := NewTagger(gen, nil)

	tag, err := tagger.TagLatest(context.Background(), "it's my fault he left")
	require.NoError(t, err)
	assert.Equal(t, "SELF-BLAME / SHAME", tag.Tag)
	assert.Equal(t, "they blame themselves for the breakup", tag.Summary)
}

func TestTaggerCodeFencedJSON(t *testing.T) {
	gen := &recordingGenerator{reply: "```json\n{\"tag\":\"PANIC / OVERWHELM\",\"summary\":\"they feel out of control\"}\n```"}
	tagger := NewTagger(gen, nil)

	tag, err := tagger.TagLatest(context.Background(), "i'm shaking i can't breathe")
	require.NoError(t, err)
	assert.Equal(t, "PANIC / OVERWHELM", tag.Tag)
}

func TestTaggerMalformedOutputFallsBack(t *testing.T) {
	long := strings.Repeat("not json ", 40)
	gen := &recordingGenerator{reply: long}
	tagger := NewTagger(gen, nil)

	tag, err := tagger.TagLatest(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, domain.TagUnknown, tag.Tag)
	assert.LessOrEqual(t, len([]rune(tag.Summary)), 200)
}

func TestTaggerProviderFailure(t *testing.T) {
	gen := &recordingGenerator{fail: map[string]error{"Emotion Tagger": errors.New("boom")}}
	tagger := NewTagger(gen, nil)

	_, err := tagger.TagLatest(context.Background(), "hello")
	assert.Error(t, err)
}
