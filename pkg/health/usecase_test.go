package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name string
	err  error
	wait time.Duration
}

func (s stubChecker) Name() string { return s.name }

func (s stubChecker) Check(ctx context.Context) error {
	if s.wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.wait):
		}
	}
	return s.err
}

func TestReadyAllHealthy(t *testing.T) {
	rep := NewService(stubChecker{name: "postgres"}, stubChecker{name: "redis"}).Ready(context.Background())
	assert.True(t, rep.Ready)
	require.Len(t, rep.Checks, 2)
	assert.Equal(t, "postgres", rep.Checks[0].Name)
	assert.Equal(t, "redis", rep.Checks[1].Name)
}

func TestReadyReportsEveryFailure(t *testing.T) {
	rep := NewService(
		stubChecker{name: "postgres", err: errors.New("connection refused")},
		stubChecker{name: "redis"},
		stubChecker{name: "s3", err: errors.New("no such bucket")},
	).Ready(context.Background())

	assert.False(t, rep.Ready)
	assert.False(t, rep.Checks[0].OK)
	assert.Equal(t, "connection refused", rep.Checks[0].Error)
	assert.True(t, rep.Checks[1].OK)
	assert.Empty(t, rep.Checks[1].Error)
	assert.Equal(t, "no such bucket", rep.Checks[2].Error)
}

func TestReadyTimesOutSlowCheck(t *testing.T) {
	rep := NewService(stubChecker{name: "slow", wait: time.Minute}).Ready(context.Background())
	assert.False(t, rep.Ready)
	assert.Contains(t, rep.Checks[0].Error, "deadline")
}

func TestReadyWithoutCheckers(t *testing.T) {
	rep := NewService().Ready(context.Background())
	assert.True(t, rep.Ready)
	assert.Empty(t, rep.Checks)
}
