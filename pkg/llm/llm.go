package llm

import "context"

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It hides concrete providers to preserve dependency direction.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Named is implemented by models that can report the model they talk to.
type Named interface {
	ModelName() string
}

// ModelName returns the model name when the chain exposes one.
func ModelName(m ChatModel) string {
	if n, ok := m.(Named); ok {
		return n.ModelName()
	}
	return ""
}

// Func adapts a plain function to ChatModel.
type Func func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

func (f Func) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f(ctx, systemPrompt, userPrompt)
}
