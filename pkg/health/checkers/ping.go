package checkers

import "context"

// pingChecker adapts a client's ping call to health.Checker.
type pingChecker struct {
	name string
	ping func(ctx context.Context) error
}

func (c pingChecker) Name() string { return c.name }

func (c pingChecker) Check(ctx context.Context) error { return c.ping(ctx) }
