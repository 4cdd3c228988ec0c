package probe

import (
	"context"
	"fmt"
)

// CheckResult is the unified outcome of a single scheduled check.
type CheckResult struct {
	Success        bool
	Classification Classification
	LatencyMS      float64
	BytesReceived  int
	Message        string
}

// Checker is implemented by any endpoint check (TCP, echo, RTSP).
type Checker interface {
	Check(ctx context.Context, t Target) CheckResult
}

// Endpoint kinds understood by ForKind.
const (
	KindTCP  = "tcp"
	KindEcho = "echo"
	KindRTSP = "rtsp"
)

// ForKind returns the checker for an endpoint kind.
func ForKind(kind string) (Checker, error) {
	switch kind {
	case KindTCP:
		return &TCPChecker{}, nil
	case KindEcho:
		return &EchoChecker{}, nil
	case KindRTSP:
		return &RTSPChecker{}, nil
	default:
		return nil, fmt.Errorf("unknown endpoint kind %q", kind)
	}
}

func fromResult(r Result) CheckResult {
	return CheckResult{
		Success:        r.Succeeded,
		Classification: r.Classification,
		LatencyMS:      r.Elapsed.Seconds() * 1000,
		BytesReceived:  r.BytesReceived,
		Message:        r.Message,
	}
}

// TCPChecker verifies plain TCP connectivity.
type TCPChecker struct {
	Prober Prober
}

func (c *TCPChecker) Check(ctx context.Context, t Target) CheckResult {
	return fromResult(c.Prober.Probe(ctx, t, nil))
}

// EchoChecker verifies an echo endpoint returns the payload unchanged.
type EchoChecker struct {
	Prober  Prober
	Message string
}

// DefaultEchoMessage matches what the field tooling has always sent.
const DefaultEchoMessage = "Hello from test client"

func (c *EchoChecker) Check(ctx context.Context, t Target) CheckResult {
	msg := c.Message
	if msg == "" {
		msg = DefaultEchoMessage
	}
	return fromResult(c.Prober.Echo(ctx, t, []byte(msg)))
}

// RTSPChecker sends an OPTIONS request and verifies the reply carries the
// RTSP status-line prefix.
type RTSPChecker struct {
	Prober Prober
	Path   string
}

func (c *RTSPChecker) Check(ctx context.Context, t Target) CheckResult {
	req := OptionsRequest(StreamURL(t.Host, t.Port, c.Path), 1)
	return fromResult(c.Prober.Probe(ctx, t, &req))
}
