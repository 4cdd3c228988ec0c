package probe

import (
	"context"
	"time"
)

// RetryChecker re-invokes an inner checker on failure. The prober itself
// never retries; re-invocation is a caller decision, and this decorator is
// that caller.
type RetryChecker struct {
	Inner    Checker
	Attempts int
	Backoff  time.Duration
}

func (r *RetryChecker) Check(ctx context.Context, t Target) CheckResult {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var last CheckResult
	for i := 0; i < attempts; i++ {
		last = r.Inner.Check(ctx, t)
		if last.Success {
			return last
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return last
			case <-time.After(r.Backoff):
			}
		}
	}
	// annotate message so a retried series is visible in records
	last.Message = last.Message + " (after retries)"
	return last
}
