// Package policy evaluates the escalation policy with OPA. The policy maps a
// safety-screen verdict onto one of three conversation decisions: continue,
// restrict, escalate.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"

	"github.com/soulsync/orchestrator/internal/domain"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.escalation.decision"),
		rego.Module("escalation.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Input is the fact set the escalation policy evaluates.
type Input struct {
	Severity           string `json:"severity"`
	RequiresEscalation bool   `json:"requires_escalation"`
	RecommendedAction  string `json:"recommended_action"`
}

// Decide maps a crisis assessment onto a policy decision: "continue",
// "restrict", or "escalate". A policy that yields nothing defaults to
// continue.
func (e *Engine) Decide(ctx context.Context, assessment domain.CrisisAssessment) (string, error) {
	input := Input{
		Severity:           string(assessment.Severity),
		RequiresEscalation: assessment.RequiresEscalation(),
		RecommendedAction:  string(assessment.Action),
	}

	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return "continue", nil
	}
	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return "continue", nil
}

// DefaultPolicy is the default escalation policy content.
const DefaultPolicy = `
package escalation

default decision = "continue"

decision = "escalate" {
	input.requires_escalation == true
}

decision = "restrict" {
	not input.requires_escalation
	input.severity == "medium"
}
`
