// Package domain defines the core domain models for the support-conversation orchestrator.
package domain

// Role identifies who produced a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Issue identifies the primary concern detected for a turn.
type Issue string

const (
	IssueCrisis               Issue = "crisis"
	IssueRelationshipBreakup  Issue = "relationship_breakup"
	IssueRelationshipCheating Issue = "relationship_cheating"
	IssueRelationshipConflict Issue = "relationship_conflict"
	IssueRelationshipAbuse    Issue = "relationship_abuse"
	IssueDeathLovedOne        Issue = "death_loved_one"
	IssuePetLoss              Issue = "pet_loss"
	IssueMiscarriage          Issue = "miscarriage"
	IssuePastAbuse            Issue = "past_abuse"
	IssueBullying             Issue = "bullying"
	IssueEatingDisorder       Issue = "eating_disorder"
	IssueAddiction            Issue = "addiction"
	IssuePanicAnxiety         Issue = "panic_anxiety"
	IssueDepression           Issue = "depression"
	IssueLoneliness           Issue = "loneliness"
	IssueFamilyConflict       Issue = "family_conflict"
	IssueAcademicStress       Issue = "academic_stress"
	IssueWorkBurnout          Issue = "work_burnout"
	IssueGeneral              Issue = "general"
)

// IssueSeverity grades how urgent a detected issue is.
type IssueSeverity string

const (
	IssueSeverityCrisis   IssueSeverity = "crisis"
	IssueSeverityUrgent   IssueSeverity = "urgent"
	IssueSeverityModerate IssueSeverity = "moderate"
	IssueSeverityMild     IssueSeverity = "mild"
)

// CrisisSeverity is the tier assigned by the safety screen.
// Tiers are mutually exclusive; the highest matching tier wins.
type CrisisSeverity string

const (
	CrisisSeverityNone     CrisisSeverity = "none"
	CrisisSeverityLow      CrisisSeverity = "low"
	CrisisSeverityMedium   CrisisSeverity = "medium"
	CrisisSeverityHigh     CrisisSeverity = "high"
	CrisisSeverityCritical CrisisSeverity = "critical"
)

// RecommendedAction tells the caller what the safety screen wants done.
type RecommendedAction string

const (
	ActionContinueConversation    RecommendedAction = "continue_conversation"
	ActionMonitorAndSupport       RecommendedAction = "monitor_and_support"
	ActionSupportiveResources     RecommendedAction = "supportive_resources"
	ActionEscalationWithResources RecommendedAction = "escalation_with_resources"
	ActionImmediateEscalation     RecommendedAction = "immediate_escalation"
)

// Specialist identifies a persona specialized for one category of concern.
type Specialist string

const (
	SpecialistCrisis         Specialist = "crisis_agent"
	SpecialistRelationship   Specialist = "relationship_agent"
	SpecialistGrief          Specialist = "grief_agent"
	SpecialistTrauma         Specialist = "trauma_agent"
	SpecialistSocial         Specialist = "social_agent"
	SpecialistFamily         Specialist = "family_agent"
	SpecialistEatingDisorder Specialist = "eating_disorder_agent"
	SpecialistAddiction      Specialist = "addiction_agent"
	SpecialistAnxiety        Specialist = "anxiety_agent"
	SpecialistGeneral        Specialist = "general"
)

// RoomStyle selects how drafts are merged for a given support context.
type RoomStyle string

const (
	RoomStyleEmpathetic          RoomStyle = "empathetic"
	RoomStyleRelationshipFocused RoomStyle = "relationship_focused"
	RoomStyleSystemic            RoomStyle = "systemic"
	RoomStyleGriefFocused        RoomStyle = "grief_focused"
	RoomStyleTraumaInformed      RoomStyle = "trauma_informed"
	RoomStyleCrisis              RoomStyle = "crisis"
)

// TurnBand is the conversation-phase policy applied to agent drafting.
type TurnBand string

const (
	TurnBandEarly TurnBand = "early" // turns 1-2: validation only
	TurnBandMid   TurnBand = "mid"   // turns 3-5: one gentle exploratory question
	TurnBandLater TurnBand = "later" // turns 6+: deeper reframing permitted
)

// BandForTurn maps a 1-based user-turn counter onto its band.
// Bands are inclusive and non-overlapping.
func BandForTurn(turn int) TurnBand {
	switch {
	case turn <= 2:
		return TurnBandEarly
	case turn <= 5:
		return TurnBandMid
	default:
		return TurnBandLater
	}
}
