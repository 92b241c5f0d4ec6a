package llm

import (
	"context"
	"log/slog"
	"time"
)

type loggingModel struct {
	next ChatModel
	log  *slog.Logger
}

// NewLoggingModel logs every call with its duration and outcome.
func NewLoggingModel(next ChatModel, log *slog.Logger) ChatModel {
	return &loggingModel{next: next, log: log}
}

func (m *loggingModel) ModelName() string { return ModelName(m.next) }

func (m *loggingModel) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	start := time.Now()
	out, err := m.next.Ask(ctx, systemPrompt, userPrompt)
	attrs := []any{
		"model", ModelName(m.next),
		"prompt_chars", len(systemPrompt) + len(userPrompt),
		"duration", time.Since(start).Round(time.Millisecond),
	}
	if err != nil {
		m.log.Warn("llm call failed", append(attrs, "error", err)...)
		return "", err
	}
	m.log.Debug("llm call", append(attrs, "reply_chars", len(out))...)
	return out, nil
}
