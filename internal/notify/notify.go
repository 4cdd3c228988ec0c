package notify

import (
	"context"
	"time"

	"go.uber.org/multierr"
)

// Event describes a probe state change worth telling a human about.
type Event struct {
	Addr           string
	Kind           string
	Recovered      bool
	Classification string
	LatencyMS      float64
	Message        string
	CheckedAt      time.Time
}

type Notifier interface {
	Send(ctx context.Context, ev Event) error
}

// Multi fans an event out to every configured sink and reports all failures,
// not just the first.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, ev Event) error {
	var errs error
	for _, n := range m {
		if n == nil {
			continue
		}
		errs = multierr.Append(errs, n.Send(ctx, ev))
	}
	return errs
}
