package classify

import "strings"

// emotionRules maps surface wording to a coarse emotional context label.
// First match wins.
var emotionRules = RuleSet{
	{Label: "conflict", Keywords: []string{"fight", "argue", "mad", "angry", "yelled", "upset"}},
	{Label: "sadness", Keywords: []string{"sad", "cry", "alone", "lonely", "ignored", "unwanted"}},
	{Label: "betrayal", Keywords: []string{"cheat", "trust", "betray", "unfaithful", "lie"}},
	{Label: "stress", Keywords: []string{"stress", "tired", "burnout", "exhausted", "overwhelmed"}},
	{Label: "panic", Keywords: []string{"panic", "anxious", "anxiety", "can't breathe", "shaking"}},
	{Label: "guilt", Keywords: []string{"guilt", "fault", "sorry", "ruined", "my mistake"}},
}

// topicRules label the conversational topic for hint building. Ordered so
// the more specific topics win over generic sadness.
var topicRules = RuleSet{
	{Label: "relationship_cheating", Keywords: []string{"cheat on me", "cheating", "affair", "unfaithful", "texts another"}},
	{Label: "relationship_breakup", Keywords: []string{"broke up", "break up", "breakup", "we're over", "heartbroken", "broke my heart"}},
	{Label: "relationship_conflict", Keywords: []string{"fight with my boyfriend", "fight with my girlfriend", "relationship fight", "partner ignored me"}},
	{Label: "left_out", Keywords: []string{"no one invites", "nobody invites", "left out", "don't get invited", "alone on weekends"}},
	{Label: "bullying", Keywords: []string{"bully", "bullying", "called ugly", "name calling", "classmates"}},
	{Label: "self_blame", Keywords: []string{"it's my fault", "its my fault", "i ruin", "i'm the problem", "im the problem", "i'm worthless", "not good enough"}},
	{Label: "panic", Keywords: []string{"panic", "panicking", "can't breathe", "cant breathe", "shaking", "overwhelmed", "freaking out", "spiraling"}},
	{Label: "rumination", Keywords: []string{"overthink", "overthinking", "stuck in my head", "can't stop thinking", "looping thoughts", "rumination"}},
	{Label: "burnout", Keywords: []string{"burnout", "burned out", "numb", "empty", "done with everything", "exhausted", "tired of everything"}},
	{Label: "sadness", Keywords: []string{"sad", "low", "bad day"}},
}

// distortionRules flag cognitive distortion wording for the cognitive persona.
var distortionRules = RuleSet{
	{Label: "all-or-nothing thinking", Keywords: []string{"everyone", "no one", "always", "never"}},
	{Label: "self-blame/personalization", Keywords: []string{"my fault", "i'm the problem", "im the problem", "i should"}},
	{Label: "overgeneralization to future", Keywords: []string{"nothing will", "never will", "always be", "forever"}},
	{Label: "mind-reading", Keywords: []string{"think i", "see me as", "hate me"}},
}

var pushbackPhrases = []string{
	"not listening", "not helpful", "you don't understand",
	"you dont understand", "i told you",
}

var hopelessnessPhrases = []string{
	"no point", "give up", "doesn't matter", "why bother",
}

// DetectEmotionContext returns the coarse emotional context of a message,
// or "general" when nothing matches.
func DetectEmotionContext(text string) string {
	if label, ok := emotionRules.FirstMatch(text); ok {
		return label
	}
	return "general"
}

// DetectTopic returns the conversational topic label, or "general".
func DetectTopic(text string) string {
	if label, ok := topicRules.FirstMatch(text); ok {
		return label
	}
	return "general"
}

// DetectDistortions lists cognitive distortion labels present in the text.
func DetectDistortions(text string) []string {
	return distortionRules.MatchedLabels(text)
}

// DetectPushback reports whether the user is signaling that they feel unheard.
func DetectPushback(text string) bool {
	return containsAny(strings.ToLower(text), pushbackPhrases)
}

// DetectHopelessness reports hopelessness wording short of a crisis match.
func DetectHopelessness(text string) bool {
	return containsAny(strings.ToLower(text), hopelessnessPhrases)
}
