package classify

import "github.com/soulsync/orchestrator/internal/domain"

// crisisGate holds the five crisis categories checked before any issue
// scoring. Any hit short-circuits classification entirely.
var crisisGate = RuleSet{
	{Label: "suicide", Keywords: []string{
		"kill myself", "end my life", "want to die", "better off dead",
		"suicide", "suicidal", "no reason to live", "can't go on",
		"goodbye forever", "final goodbye",
	}},
	{Label: "self_harm", Keywords: []string{
		"cut myself", "hurt myself", "harm myself", "burning myself",
		"self harm", "self-harm", "cutting", "razor",
	}},
	{Label: "violence", Keywords: []string{
		"kill them", "hurt someone", "going to hurt", "violent thoughts",
		"kill him", "kill her", "harm others",
	}},
	{Label: "psychosis", Keywords: []string{
		"voices telling me", "hearing voices", "people watching me",
		"they're following", "government tracking", "not real",
		"hallucinating", "seeing things",
	}},
	{Label: "substance_overdose", Keywords: []string{
		"took too many", "overdose", "pills", "took everything",
		"empty bottle",
	}},
}

// issueRules scores every sub-issue across the six topic groups. Registration
// order decides ties: relationship, grief, trauma, mental health, social,
// stress.
var issueRules = RuleSet{
	// relationship
	{Label: string(domain.IssueRelationshipBreakup), Keywords: []string{
		"broke up", "break up", "breakup", "boyfriend left", "girlfriend left",
		"we're over", "ended things", "broke my heart", "heartbroken",
		"left me", "dumped me",
	}},
	{Label: string(domain.IssueRelationshipCheating), Keywords: []string{
		"cheated on me", "cheating", "affair", "unfaithful",
		"seeing someone else", "dating someone else", "caught him",
		"texts another", "flirting with",
	}},
	{Label: string(domain.IssueRelationshipConflict), Keywords: []string{
		"fight with my boyfriend", "fight with my girlfriend",
		"argument with partner", "relationship fight", "we fought",
		"partner ignored me", "won't talk to me",
	}},
	{Label: string(domain.IssueRelationshipAbuse), Keywords: []string{
		"hits me", "hurts me", "controlling", "threatened me",
		"scared of him", "scared of her", "abusive",
	}},
	// grief and loss
	{Label: string(domain.IssueDeathLovedOne), Keywords: []string{
		"died", "passed away", "lost my mom", "lost my dad",
		"funeral", "death", "grief", "mourning",
	}},
	{Label: string(domain.IssuePetLoss), Keywords: []string{
		"my dog died", "my cat died", "put down", "pet died",
	}},
	{Label: string(domain.IssueMiscarriage), Keywords: []string{
		"miscarriage", "lost the baby", "pregnancy loss",
	}},
	// trauma and abuse
	{Label: string(domain.IssuePastAbuse), Keywords: []string{
		"was abused", "molested", "assaulted", "raped",
		"trauma", "ptsd", "flashbacks",
	}},
	{Label: string(domain.IssueBullying), Keywords: []string{
		"bully", "bullying", "called ugly", "made fun of",
		"name calling", "picked on", "teased",
	}},
	// mental health conditions
	{Label: string(domain.IssueEatingDisorder), Keywords: []string{
		"anorexia", "bulimia", "binge", "purge", "throwing up",
		"starving myself", "calories",
	}},
	{Label: string(domain.IssueAddiction), Keywords: []string{
		"addicted", "can't stop drinking", "drugs", "alcohol problem",
		"using again", "relapse", "sober",
	}},
	{Label: string(domain.IssuePanicAnxiety), Keywords: []string{
		"panic attack", "can't breathe", "heart racing", "shaking",
		"freaking out", "anxiety", "overwhelmed",
	}},
	{Label: string(domain.IssueDepression), Keywords: []string{
		"depressed", "hopeless", "numb", "empty", "worthless",
		"nothing matters", "no point",
	}},
	// social
	{Label: string(domain.IssueLoneliness), Keywords: []string{
		"no friends", "alone", "lonely", "no one likes me",
		"left out", "not invited", "isolated",
	}},
	{Label: string(domain.IssueFamilyConflict), Keywords: []string{
		"fight with parents", "mom hates me", "dad yells",
		"family problems", "kicked out", "running away",
	}},
	// stress and burnout
	{Label: string(domain.IssueAcademicStress), Keywords: []string{
		"failing school", "exams", "grades", "college stress",
		"homework", "school pressure",
	}},
	{Label: string(domain.IssueWorkBurnout), Keywords: []string{
		"hate my job", "work stress", "burnout", "exhausted",
		"can't keep up", "too much work",
	}},
}

// intensityAmplifiers escalate severity exactly one tier when present in the
// raw message.
var intensityAmplifiers = []string{
	"extreme", "can't take", "unbearable", "intense", "severe",
}

// specialistByIssue routes a sub-issue to a persona. relationship_abuse maps
// to the crisis agent unconditionally: abuse is a safety concern, not a
// routing concern.
var specialistByIssue = map[domain.Issue]domain.Specialist{
	domain.IssueRelationshipBreakup:  domain.SpecialistRelationship,
	domain.IssueRelationshipCheating: domain.SpecialistRelationship,
	domain.IssueRelationshipConflict: domain.SpecialistRelationship,
	domain.IssueRelationshipAbuse:    domain.SpecialistCrisis,

	domain.IssueDeathLovedOne: domain.SpecialistGrief,
	domain.IssuePetLoss:       domain.SpecialistGrief,
	domain.IssueMiscarriage:   domain.SpecialistGrief,

	domain.IssuePastAbuse: domain.SpecialistTrauma,
	domain.IssueBullying:  domain.SpecialistSocial,

	domain.IssueEatingDisorder: domain.SpecialistEatingDisorder,
	domain.IssueAddiction:      domain.SpecialistAddiction,
	domain.IssuePanicAnxiety:   domain.SpecialistAnxiety,
	domain.IssueDepression:     domain.SpecialistGeneral,

	domain.IssueLoneliness:     domain.SpecialistGeneral,
	domain.IssueFamilyConflict: domain.SpecialistFamily,
	domain.IssueAcademicStress: domain.SpecialistGeneral,
	domain.IssueWorkBurnout:    domain.SpecialistGeneral,
}

// issueDescriptions are human-readable labels for the API surface.
var issueDescriptions = map[domain.Issue]string{
	domain.IssueCrisis:               "Crisis situation requiring immediate support",
	domain.IssueRelationshipBreakup:  "Heartbreak and relationship ending",
	domain.IssueRelationshipCheating: "Infidelity concerns",
	domain.IssueRelationshipConflict: "Relationship conflict",
	domain.IssueRelationshipAbuse:    "Relationship abuse",
	domain.IssueDeathLovedOne:        "Grief from losing someone",
	domain.IssuePetLoss:              "Pet loss grief",
	domain.IssueMiscarriage:          "Pregnancy loss",
	domain.IssuePastAbuse:            "Past trauma or abuse",
	domain.IssueBullying:             "Bullying or social cruelty",
	domain.IssueEatingDisorder:       "Eating or body image concerns",
	domain.IssueAddiction:            "Substance use concerns",
	domain.IssuePanicAnxiety:         "Panic or severe anxiety",
	domain.IssueDepression:           "Depression or hopelessness",
	domain.IssueLoneliness:           "Loneliness and isolation",
	domain.IssueFamilyConflict:       "Family relationship problems",
	domain.IssueAcademicStress:       "Academic pressure",
	domain.IssueWorkBurnout:          "Work stress and burnout",
	domain.IssueGeneral:              "General emotional support",
}

// IssueDescription returns a human-readable description of an issue.
func IssueDescription(issue domain.Issue) string {
	if d, ok := issueDescriptions[issue]; ok {
		return d
	}
	return "Emotional support needed"
}
