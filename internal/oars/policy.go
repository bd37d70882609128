// Package oars applies a motivational-interviewing quality policy to merged
// responses: Open questions, Affirmations, Reflections, Summaries. Missing
// elements are patched in from fixed phrase pools; pool picks rotate
// deterministically instead of drawing randomly so replies are reproducible.
package oars

import (
	"strings"
	"sync"
)

var openQuestions = []string{
	"What does that feel like for you?",
	"How has this been affecting you?",
	"What would it mean to you if that changed?",
	"Can you tell me more about what that's like?",
	"What do you think might help with this?",
	"How long have you been feeling this way?",
	"What's been on your mind about this?",
	"What matters most to you in this situation?",
	"How do you make sense of what happened?",
	"What do you need right now?",
}

var affirmations = []string{
	"It takes courage to share that.",
	"You're being really honest with yourself right now.",
	"That's a lot to carry.",
	"You're doing your best in a hard situation.",
	"I hear how much this matters to you.",
	"You're showing up even when it's difficult.",
	"That takes real strength to acknowledge.",
	"You're being incredibly vulnerable right now.",
	"You're facing this head-on.",
	"That kind of self-awareness is powerful.",
}

var reflectionTemplates = map[string]string{
	"sadness":      "It sounds like you're carrying a lot of sadness right now.",
	"anger":        "I hear a lot of frustration in what you're sharing.",
	"anxiety":      "It seems like worry is taking up a lot of space for you.",
	"fear":         "I sense there's real fear underneath this.",
	"shame":        "That sounds like it's bringing up some painful feelings about yourself.",
	"loneliness":   "It sounds like feeling alone is really hard right now.",
	"betrayal":     "I hear how deeply that hurt you.",
	"grief":        "It sounds like you're grieving something important.",
	"overwhelm":    "That sounds incredibly overwhelming.",
	"confusion":    "It seems like you're trying to make sense of a lot right now.",
	"hopelessness": "I hear how heavy this feels for you.",
	"guilt":        "It sounds like you're carrying a lot of guilt about this.",
}

const defaultReflection = "What I'm hearing is that this is really hard for you."

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "is": {}, "was": {}, "are": {}, "were": {}, "been": {},
	"be": {}, "have": {}, "has": {}, "had": {}, "do": {}, "does": {},
	"did": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"may": {}, "might": {}, "can": {}, "this": {}, "that": {},
	"these": {}, "those": {},
}

// Validation is the OARS element breakdown of one response.
type Validation struct {
	Valid           bool
	HasOpenQuestion bool
	HasAffirmation  bool
	HasReflection   bool
	HasSummary      bool
	Score           int
	Quality         string // "high", "medium", or "basic"
}

// Policy validates and enhances responses. Safe for concurrent use.
type Policy struct {
	mu               sync.Mutex
	questionCursor   int
	affirmationNext  int
	recentAffirms    []string
	repetitionCutoff float64
}

func NewPolicy() *Policy {
	return &Policy{repetitionCutoff: 0.7}
}

// Validate checks a response for the four OARS elements.
func Validate(response string) Validation {
	lower := strings.ToLower(response)

	v := Validation{
		HasOpenQuestion: containsAny(lower, []string{"what", "how", "when", "where", "can you tell me", "would you"}),
		HasAffirmation:  containsAny(lower, []string{"courage", "strength", "honest", "brave", "matters", "doing your best"}),
		HasReflection:   containsAny(lower, []string{"sounds like", "seems like", "hearing", "feels like", "sense that"}),
		HasSummary:      containsAny(lower, []string{"understand", "reflect back", "from what", "summarize"}),
	}
	for _, hit := range []bool{v.HasOpenQuestion, v.HasAffirmation, v.HasReflection, v.HasSummary} {
		if hit {
			v.Score++
		}
	}
	v.Valid = v.Score >= 1
	switch {
	case v.Score >= 3:
		v.Quality = "high"
	case v.Score >= 2:
		v.Quality = "medium"
	default:
		v.Quality = "basic"
	}
	return v
}

// ReflectionFor returns the reflection template for an emotion label.
func ReflectionFor(emotion string) string {
	if t, ok := reflectionTemplates[strings.ToLower(emotion)]; ok {
		return t
	}
	return defaultReflection
}

// IsRepetitive reports whether a response overlaps too heavily with any of
// the given prior responses (word-set Jaccard similarity above 0.7, stop
// words excluded).
func (p *Policy) IsRepetitive(response string, history []string) bool {
	for _, prev := range history {
		if similarity(response, prev) > p.repetitionCutoff {
			return true
		}
	}
	return false
}

// SuggestFollowup picks a context-aware follow-up question. Messages with no
// recognizable setting rotate through the open-question pool.
func (p *Policy) SuggestFollowup(userContext string) string {
	lower := strings.ToLower(userContext)

	switch {
	case containsAny(lower, []string{"work", "job", "boss", "colleague"}):
		return "How is this affecting your work life?"
	case containsAny(lower, []string{"relationship", "partner", "spouse", "boyfriend", "girlfriend"}):
		return "What would you want to change about this situation?"
	case containsAny(lower, []string{"family", "mom", "dad", "parent", "sibling"}):
		return "How does your family fit into what you're experiencing?"
	case containsAny(lower, []string{"friend", "friends", "social"}):
		return "How are your friendships being affected by this?"
	case containsAny(lower, []string{"school", "college", "class", "student"}):
		return "How is this impacting your studies?"
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	q := openQuestions[p.questionCursor%len(openQuestions)]
	p.questionCursor++
	return q
}

// Enhance patches missing OARS elements into a response: a leading
// reflection, a trailing open question, and (on alternating calls) a leading
// affirmation, never repeating the last three affirmations used.
func (p *Policy) Enhance(response, emotion, userContext string) string {
	v := Validate(response)
	if v.Quality == "high" {
		return response
	}

	enhanced := response
	if !v.HasReflection {
		enhanced = ReflectionFor(emotion) + " " + enhanced
	}
	if !v.HasOpenQuestion {
		enhanced = enhanced + "\n\n" + p.SuggestFollowup(userContext)
	}
	if !v.HasAffirmation {
		if a, ok := p.nextAffirmation(); ok {
			enhanced = a + " " + enhanced
		}
	}
	return enhanced
}

// nextAffirmation rotates through the pool, adding one on every other call
// and skipping the three most recently used.
func (p *Policy) nextAffirmation() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.affirmationNext++
	if p.affirmationNext%2 == 0 {
		return "", false
	}

	for range affirmations {
		a := affirmations[p.affirmationNext%len(affirmations)]
		if !recentlyUsed(a, p.recentAffirms) {
			p.recentAffirms = append(p.recentAffirms, a)
			if len(p.recentAffirms) > 5 {
				p.recentAffirms = p.recentAffirms[1:]
			}
			return a, true
		}
		p.affirmationNext++
	}
	return "", false
}

func recentlyUsed(a string, recent []string) bool {
	start := len(recent) - 3
	if start < 0 {
		start = 0
	}
	for _, r := range recent[start:] {
		if r == a {
			return true
		}
	}
	return false
}

func similarity(a, b string) float64 {
	wa := contentWords(a)
	wb := contentWords(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	inter := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			inter++
		}
	}
	union := len(wa) + len(wb) - inter
	return float64(inter) / float64(union)
}

func contentWords(s string) map[string]struct{} {
	words := map[string]struct{}{}
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		words[w] = struct{}{}
	}
	return words
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
