// Package llm abstracts the external text-generation capability. The core
// treats it as an opaque collaborator: given a system instruction and a
// message history, produce response text. Provider failure is fatal for the
// current turn; no retry policy lives here.
package llm

import "context"

// Message is one entry of the generation history.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Generator is the single operation the core depends on.
type Generator interface {
	Generate(ctx context.Context, systemInstruction string, history []Message) (string, error)
}
