package agents

import (
	"fmt"
	"strings"

	"github.com/soulsync/orchestrator/internal/classify"
	"github.com/soulsync/orchestrator/internal/domain"
)

// HintContext is the per-turn dynamic context shared by all personas. It is
// computed once, after the dialogue window is finalized, and rendered
// per-persona according to that persona's hint rules.
type HintContext struct {
	TurnCount      int
	EmotionContext string
	Topic          string
	EmotionTag     string
	Distortions    []string
	Pushback       bool
	Hopelessness   bool
	RecentOpenings []string
	EmojiExhausted bool
}

// BuildHintContext derives the hint context for the current user message.
func BuildHintContext(userText string, turnCount int, recentOpenings []string, emojiExhausted bool, tag domain.EmotionTag) HintContext {
	return HintContext{
		TurnCount:      turnCount,
		EmotionContext: classify.DetectEmotionContext(userText),
		Topic:          classify.DetectTopic(userText),
		EmotionTag:     tag.Tag,
		Distortions:    classify.DetectDistortions(userText),
		Pushback:       classify.DetectPushback(userText),
		Hopelessness:   classify.DetectHopelessness(userText),
		RecentOpenings: recentOpenings,
		EmojiExhausted: emojiExhausted,
	}
}

// Render produces the dynamic hint block for one persona. Personas that
// want no rules get an empty string, leaving their static instructions
// untouched.
func (h HintContext) Render(p Persona) string {
	var b strings.Builder

	if p.wants(HintEmotionContext) && h.EmotionContext != "general" {
		fmt.Fprintf(&b, "\nEmotional context detected: %s. Speak to it directly.", h.EmotionContext)
	}
	if p.wants(HintEmotionContext) && h.EmotionTag != "" && h.EmotionTag != domain.TagUnknown {
		fmt.Fprintf(&b, "\nTagged emotional theme: %s.", h.EmotionTag)
	}

	if p.wants(HintTopicGuidance) {
		switch h.Topic {
		case "bullying":
			b.WriteString("\nBULLYING context: normalize their response, don't blame the victim. If early in the conversation, mention a school counselor or trusted adult.")
		case "relationship_cheating":
			b.WriteString("\nBETRAYAL context: protect them from self-blame. The choice to betray says nothing about their worth.")
		case "self_blame":
			b.WriteString("\nSELF-BLAME context: they are taking responsibility for someone else's choices. Gently loosen that.")
		}
	}

	if p.wants(HintDistortions) && len(h.Distortions) > 0 {
		fmt.Fprintf(&b, "\nDetected thinking patterns: %s.", strings.Join(h.Distortions, ", "))
	}

	if p.wants(HintHopelessness) && h.Hopelessness {
		b.WriteString("\nHOPELESSNESS detected: gently distinguish present pain from a permanent state. Ask about safety if it deepens.")
	}

	if p.wants(HintTurnBand) {
		switch domain.BandForTurn(h.TurnCount) {
		case domain.TurnBandEarly:
			b.WriteString("\nEARLY CONVERSATION: validate only. No challenging, no analysis, no multi-part structure.")
		case domain.TurnBandMid:
			b.WriteString("\nMID CONVERSATION: you may gently notice patterns and ask at most one exploratory question. Curiosity, not correction.")
		default:
			b.WriteString("\nLATER CONVERSATION: deeper reframes and insights are welcome. Stay curious and humble.")
		}
	}

	if p.wants(HintFamilyConflict) {
		b.WriteString(familyHint(h))
	}

	if p.wants(HintPushback) && h.Pushback {
		b.WriteString("\nUSER PUSHBACK: they feel unheard. Stop analytical work. Just validate and ask what they need.")
	}

	if p.wants(HintAntiRepetition) && len(h.RecentOpenings) > 0 {
		b.WriteString("\nYou recently opened responses with these phrases; do NOT restate them:")
		for _, opening := range h.RecentOpenings {
			fmt.Fprintf(&b, "\n  - %q", opening)
		}
	}

	if p.wants(HintEmojiBudget) && h.EmojiExhausted {
		b.WriteString("\nEmoji budget for this conversation is used up. Do not include any emoji.")
	}

	if b.Len() == 0 {
		return ""
	}
	return "\n\nCONTEXT FOR THIS TURN:" + b.String()
}

func familyHint(h HintContext) string {
	switch {
	case h.Topic == "relationship_conflict" || h.EmotionContext == "conflict":
		return "\nName the loyalty dilemma directly. Ask a specific question about THEIR situation, not generic validation."
	default:
		return "\nTreat this as a loyalty and identity question, not just a feeling. Ask what each choice would cost them."
	}
}
