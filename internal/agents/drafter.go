package agents

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/soulsync/orchestrator/internal/adapter/llm"
	"github.com/soulsync/orchestrator/internal/domain"
)

// Drafter fans one user turn out to every persona and collects their
// candidate responses. Drafts are independent of each other; a failed draft
// degrades to an empty string so the merge can still proceed.
type Drafter struct {
	gen    llm.Generator
	logger *zap.Logger
}

func NewDrafter(gen llm.Generator, logger *zap.Logger) *Drafter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Drafter{gen: gen, logger: logger}
}

// Draft runs every persona against the shared dialogue window and hint
// context. The window and hints must be finalized before calling; no draft
// reads another's output. Results come back in persona order.
func (d *Drafter) Draft(ctx context.Context, personas []Persona, window []domain.Message, hints HintContext) []domain.AgentDraft {
	history := toHistory(window)
	drafts := make([]domain.AgentDraft, len(personas))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range personas {
		i, p := i, p
		g.Go(func() error {
			system := p.System + hints.Render(p)
			text, err := d.gen.Generate(gctx, system, history)
			if err != nil {
				d.logger.Warn("agent draft failed, substituting empty draft",
					zap.String("agent", p.Name),
					zap.Error(err))
				text = ""
			}
			drafts[i] = domain.AgentDraft{AgentName: p.Name, Text: text}
			return nil
		})
	}
	// Errors never surface from the group; the barrier is what matters.
	_ = g.Wait()
	return drafts
}

func toHistory(window []domain.Message) []llm.Message {
	history := make([]llm.Message, 0, len(window))
	for _, m := range window {
		if m.Text == "" {
			continue
		}
		role := "assistant"
		if m.Role == domain.RoleUser {
			role = "user"
		}
		history = append(history, llm.Message{Role: role, Content: m.Text})
	}
	return history
}
