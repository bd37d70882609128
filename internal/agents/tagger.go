package agents

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/soulsync/orchestrator/internal/adapter/llm"
	"github.com/soulsync/orchestrator/internal/domain"
)

const taggerSystem = `You are an Emotion Tagger.

Given the user's most recent message, label the PRIMARY emotional theme using one of these buckets:

- LONELY / UNWANTED (no one cares about me, nobody likes me, I'm left out)
- SELF-BLAME / SHAME (it's my fault, I'm the problem, I'm not good enough)
- PANIC / OVERWHELM (I'm shaking, I can't breathe, I can't calm down)
- ANGER / HURT (they hurt me, we fought, I'm mad, I feel disrespected)
- EXHAUSTION / EMPTY (tired, numb, I don't feel anything, done with everything)

Return a JSON object with:
{ "tag": "...", "summary": "short plain-language summary of what hurts" }

The summary should be 1 short sentence in plain emotional language.
Do NOT give advice.
Do NOT be clinical.`

const rawSummaryMax = 200

// Tagger labels the primary emotional theme of a single user message.
type Tagger struct {
	gen    llm.Generator
	logger *zap.Logger
}

func NewTagger(gen llm.Generator, logger *zap.Logger) *Tagger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tagger{gen: gen, logger: logger}
}

// TagLatest classifies one message. Malformed generation output is not an
// error: it degrades to TagUnknown with the raw text truncated into the
// summary. A provider failure is returned to the caller.
func (t *Tagger) TagLatest(ctx context.Context, userText string) (domain.EmotionTag, error) {
	raw, err := t.gen.Generate(ctx, taggerSystem, []llm.Message{
		{Role: "user", Content: userText},
	})
	if err != nil {
		return domain.EmotionTag{}, err
	}

	var tag domain.EmotionTag
	cleaned := stripCodeFence(raw)
	if err := json.Unmarshal([]byte(cleaned), &tag); err == nil && tag.Tag != "" && tag.Summary != "" {
		return tag, nil
	}

	t.logger.Warn("emotion tagger returned non-JSON output, falling back to UNKNOWN")
	summary := raw
	if r := []rune(summary); len(r) > rawSummaryMax {
		summary = string(r[:rawSummaryMax])
	}
	return domain.EmotionTag{Tag: domain.TagUnknown, Summary: summary}, nil
}

// stripCodeFence unwraps ```json ... ``` wrappers some providers add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
