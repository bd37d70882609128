package service

import "strings"

// saveOffer is appended to a reply when the turn looks like a realization
// worth journaling.
const saveOffer = "\n\n💭 This feels like an important realization. Would you like me to save it to your journal? (yes/no)"

var insightIndicators = []string{
	"maybe", "i think", "that makes sense", "oh", "yeah", "true",
	"i guess", "probably", "you're right",
}

var insightWords = []string{
	"pattern", "when you", "because", "why", "notice", "tends to",
}

// ShouldOfferSave reports whether the turn pairs user recognition with an
// agent insight. Never fires before turn 3.
func ShouldOfferSave(userMessage, agentResponse string, turnNumber int) bool {
	if turnNumber < 3 {
		return false
	}
	userLower := strings.ToLower(userMessage)
	agentLower := strings.ToLower(agentResponse)
	return containsAny(userLower, insightIndicators) && containsAny(agentLower, insightWords)
}

// ExtractInsight pulls the key sentence out of an agent response, preferring
// sentences that carry insight wording.
func ExtractInsight(agentResponse string) string {
	sentences := strings.Split(agentResponse, ". ")
	for _, sentence := range sentences {
		if containsAny(strings.ToLower(sentence), []string{"when", "pattern", "because", "why"}) {
			return strings.TrimSpace(sentence)
		}
	}
	if len(sentences) > 0 {
		return strings.TrimSpace(sentences[0])
	}
	return agentResponse
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
