package llm

import (
	"context"
	"fmt"
	"strings"
)

// MockClient is a deterministic Generator for local development and tests.
// If Reply is set it is consulted first; otherwise a canned response derived
// from the last user message is returned.
type MockClient struct {
	// Reply, when non-nil, computes the response. Returning ok=false falls
	// back to the canned output.
	Reply func(systemInstruction string, history []Message) (text string, ok bool)

	// Err, when non-nil, is returned from every call. Useful for testing
	// degraded-provider paths.
	Err error
}

// NewMockClient returns a mock with the default canned behavior.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Generate implements Generator.
func (m *MockClient) Generate(_ context.Context, systemInstruction string, history []Message) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != nil {
		if text, ok := m.Reply(systemInstruction, history); ok {
			return text, nil
		}
	}

	last := ""
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			last = history[i].Content
			break
		}
	}
	snippet := last
	if len(snippet) > 60 {
		snippet = snippet[:60]
	}
	snippet = strings.TrimSpace(snippet)
	if snippet == "" {
		return "I'm here with you. What's on your mind?", nil
	}
	return fmt.Sprintf("I hear you saying %q. That sounds like a lot to carry. What feels most pressing right now?", snippet), nil
}
