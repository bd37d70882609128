package safety

import "github.com/soulsync/orchestrator/internal/domain"

// Fixed tier responses. For critical and high tiers the resource block must
// be delivered verbatim and may never be truncated or merged away downstream.

const criticalResponse = `I hear that you're in a lot of pain right now, and I want you to know that your life matters.

If you're thinking about harming yourself or someone else, please reach out for immediate help:

Crisis Resources:
- 988 Suicide & Crisis Lifeline: Call or text 988 (24/7)
- Crisis Text Line: Text HOME to 741741
- Emergency Services: Call 911 or go to your nearest emergency room

You don't have to face this alone. These trained professionals can provide the support you need right now.

Please tell me honestly - are you safe right now?`

const highResponse = `I'm concerned about what you're sharing. It sounds like you're going through something really serious.

Please consider reaching out for professional support:

Crisis Resources:
- 988 Suicide & Crisis Lifeline: Call or text 988
- Crisis Text Line: Text HOME to 741741
- SAMHSA National Helpline: 1-800-662-4357 (substance abuse and mental health)

If you're in immediate danger, call 911 or go to your nearest emergency room.

These feelings can be overwhelming, but help is available. Would you be open to talking to a crisis counselor who is trained to help with situations like yours?`

const mediumResponse = `I hear how much pain you're carrying, and I'm really glad you're sharing this with me. What you're feeling matters.

While I'm here to listen and support you, I want to make sure you have access to additional resources:

- 988 Suicide & Crisis Lifeline: Call or text 988 (if feelings intensify)
- NAMI Helpline: 1-800-950-6264 (mental health support)
- Consider reaching out to a licensed therapist

These feelings of hopelessness are real, but they can change with the right support. Would you like to talk more about what's contributing to these feelings?`

const lowResponse = `I hear that you're struggling, and I want you to know that reaching out is a brave thing to do.

If things feel like they're getting harder to manage, here are some resources that might help:

- NAMI Helpline: 1-800-950-6264 (mental health support and information)
- Psychology Today: Find a therapist near you
- Reach out to trusted friends or family

Remember, asking for help is a sign of strength, not weakness. Would you like to talk more about what you're experiencing?`

// Response returns the fixed safety text for a tier, empty for "none".
func Response(severity domain.CrisisSeverity) string {
	switch severity {
	case domain.CrisisSeverityCritical:
		return criticalResponse
	case domain.CrisisSeverityHigh:
		return highResponse
	case domain.CrisisSeverityMedium:
		return mediumResponse
	case domain.CrisisSeverityLow:
		return lowResponse
	default:
		return ""
	}
}

// FollowUp returns the check-in line used on the turn after a crisis response.
func FollowUp(severity domain.CrisisSeverity) string {
	switch severity {
	case domain.CrisisSeverityCritical:
		return "Have you been able to reach out to any of the crisis resources? I'm here with you."
	case domain.CrisisSeverityHigh:
		return "I'm here to listen. Have you considered reaching out to the crisis line?"
	case domain.CrisisSeverityMedium:
		return "How are you feeling now? Would you like to talk more about what's going on?"
	case domain.CrisisSeverityLow:
		return "What would be most helpful for you right now?"
	default:
		return ""
	}
}

// Resource is one entry in the support directory.
type Resource struct {
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	Description  string `json:"description"`
	Availability string `json:"availability"`
}

var resourceCatalog = map[string][]Resource{
	"crisis": {
		{Name: "988 Suicide & Crisis Lifeline", Contact: "Call or text 988", Description: "24/7 crisis support", Availability: "24/7"},
		{Name: "Crisis Text Line", Contact: "Text HOME to 741741", Description: "Free 24/7 text crisis support", Availability: "24/7"},
		{Name: "Emergency Services", Contact: "911", Description: "Immediate emergency response", Availability: "24/7"},
	},
	"therapy": {
		{Name: "Psychology Today", Contact: "psychologytoday.com/us/therapists", Description: "Find licensed therapists near you", Availability: "Directory"},
		{Name: "Open Path Collective", Contact: "openpathcollective.org", Description: "Affordable therapy", Availability: "Directory"},
	},
	"support_groups": {
		{Name: "NAMI Support Groups", Contact: "nami.org/Support-Education/Support-Groups", Description: "Peer support groups for mental health", Availability: "Varies by location"},
		{Name: "7 Cups", Contact: "7cups.com", Description: "Free emotional support chat", Availability: "24/7 online"},
	},
	"general": {
		{Name: "SAMHSA National Helpline", Contact: "1-800-662-4357", Description: "Substance abuse and mental health", Availability: "24/7"},
		{Name: "NAMI Helpline", Contact: "1-800-950-6264", Description: "Mental health information and support", Availability: "Mon-Fri 10am-10pm ET"},
	},
}

// Resources returns the directory entries for a category, falling back to
// the general list for unknown categories.
func Resources(category string) []Resource {
	if rs, ok := resourceCatalog[category]; ok {
		return rs
	}
	return resourceCatalog["general"]
}
