package checkers

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/artem13815/resumebuilder/pkg/health"
)

// Redis pings the LM response cache.
func Redis(rdb *redis.Client) health.Checker {
	return pingChecker{name: "redis", ping: func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}}
}
