package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulsync/orchestrator/internal/domain"
)

func TestDefaultPolicyDecisions(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	require.NoError(t, err)

	cases := []struct {
		severity domain.CrisisSeverity
		want     string
	}{
		{domain.CrisisSeverityCritical, "escalate"},
		{domain.CrisisSeverityHigh, "escalate"},
		{domain.CrisisSeverityMedium, "restrict"},
		{domain.CrisisSeverityLow, "continue"},
		{domain.CrisisSeverityNone, "continue"},
	}

	for _, tc := range cases {
		assessment := domain.CrisisAssessment{Severity: tc.severity}
		got, err := engine.Decide(ctx, assessment)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "severity %s", tc.severity)
	}
}

func TestBadPolicyFailsToPrepare(t *testing.T) {
	_, err := NewEngine(context.Background(), "this is not rego")
	assert.Error(t, err)
}
