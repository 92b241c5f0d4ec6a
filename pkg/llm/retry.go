package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrPermanent marks provider errors that must not be retried (bad key, bad request).
var ErrPermanent = errors.New("permanent llm error")

type retryModel struct {
	next     ChatModel
	attempts int
	delay    time.Duration
}

// NewRetryModel retries failed calls with linear backoff: delay, 2*delay, ...
func NewRetryModel(next ChatModel, retries int, delay time.Duration) ChatModel {
	if retries < 0 {
		retries = 0
	}
	return &retryModel{next: next, attempts: retries + 1, delay: delay}
}

func (m *retryModel) ModelName() string { return ModelName(m.next) }

func (m *retryModel) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var lastErr error
	for i := 0; i < m.attempts; i++ {
		out, err := m.next.Ask(ctx, systemPrompt, userPrompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if errors.Is(err, ErrPermanent) || ctx.Err() != nil {
			break
		}
		if i == m.attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(i+1) * m.delay):
		}
	}
	if m.attempts > 1 {
		return "", fmt.Errorf("after %d attempts: %w", m.attempts, lastErr)
	}
	return "", lastErr
}
