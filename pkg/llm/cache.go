package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"
)

// ErrCacheMiss is returned by Cache implementations when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores model replies keyed by prompt hash.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type cachedModel struct {
	next ChatModel
	c    Cache
	ttl  time.Duration
	log  *slog.Logger
}

// NewCachedModel serves repeated prompts from cache. Cache failures never fail the call.
func NewCachedModel(next ChatModel, c Cache, ttl time.Duration, log *slog.Logger) ChatModel {
	return &cachedModel{next: next, c: c, ttl: ttl, log: log}
}

func (m *cachedModel) ModelName() string { return ModelName(m.next) }

func (m *cachedModel) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	key := CacheKey(ModelName(m.next), systemPrompt, userPrompt)
	if v, err := m.c.Get(ctx, key); err == nil {
		return v, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		m.log.Warn("llm cache read failed", "error", err)
	}
	out, err := m.next.Ask(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	if err := m.c.Set(ctx, key, out, m.ttl); err != nil {
		m.log.Warn("llm cache write failed", "error", err)
	}
	return out, nil
}

// CacheKey hashes model and prompts into a stable key.
func CacheKey(model, systemPrompt, userPrompt string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(systemPrompt))
	h.Write([]byte{0})
	h.Write([]byte(userPrompt))
	return "llm:" + hex.EncodeToString(h.Sum(nil))
}
