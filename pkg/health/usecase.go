package health

import (
	"context"
	"sync"
	"time"
)

const checkTimeout = time.Second

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckResult is one dependency in a readiness report.
type CheckResult struct {
	Name      string `json:"name"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

// Report is ready only when every check passed.
type Report struct {
	Ready  bool          `json:"ready"`
	Checks []CheckResult `json:"checks"`
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) Report
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

// Ready runs all checks in parallel, each under its own timeout, and keeps
// the order they were registered in.
func (s *service) Ready(ctx context.Context) Report {
	rep := Report{Ready: true, Checks: make([]CheckResult, len(s.checkers))}
	var wg sync.WaitGroup
	for i, ch := range s.checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()
			start := time.Now()
			err := ch.Check(cctx)
			res := CheckResult{Name: ch.Name(), OK: err == nil, LatencyMS: time.Since(start).Milliseconds()}
			if err != nil {
				res.Error = err.Error()
			}
			rep.Checks[i] = res
		}()
	}
	wg.Wait()
	for _, c := range rep.Checks {
		if !c.OK {
			rep.Ready = false
		}
	}
	return rep
}
