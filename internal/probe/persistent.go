package probe

import (
	"context"
	"errors"
	"io"
	"net"
	"time"
)

// DefaultSustainThreshold is the fraction of the requested window a
// connection must stay alive for to count as a sustained success. Policy
// constant, not a protocol requirement; override via the threshold argument.
const DefaultSustainThreshold = 0.8

// PersistentResult aggregates a duration-bounded read loop over one
// connection.
type PersistentResult struct {
	Sustained     bool           `json:"sustained"`
	Requested     time.Duration  `json:"requested"`
	Elapsed       time.Duration  `json:"elapsed"`
	Fraction      float64        `json:"fraction"`
	BytesReceived int            `json:"bytes_received"`
	LastClass     Classification `json:"last_classification"`
	Message       string         `json:"message,omitempty"`
}

// RunPersistent connects, optionally sends the request, then re-issues reads
// in a loop bounded by wall-clock duration, accumulating received bytes and
// recording the last classification seen. It terminates early on remote close
// or on a read that sees no data for the target timeout, whichever comes
// first. threshold <= 0 selects DefaultSustainThreshold.
func (p *Prober) RunPersistent(ctx context.Context, t Target, req *Request, duration time.Duration, threshold float64) PersistentResult {
	if threshold <= 0 {
		threshold = DefaultSustainThreshold
	}
	out := PersistentResult{Requested: duration, LastClass: ClassTCPOK}

	conn, class, err := p.Dial(ctx, t)
	if err != nil {
		out.LastClass = class
		out.Message = err.Error()
		return out
	}
	defer conn.Close()

	if req != nil {
		if _, err := p.Send(conn, req.Payload); err != nil {
			out.LastClass = ClassError
			out.Message = err.Error()
			return out
		}
	}

	start := time.Now()
	deadline := start.Add(duration)
	buf := make([]byte, p.maxResponse())

	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			out.Message = ctx.Err().Error()
			break
		}

		readTimeout := t.Timeout
		if remain := time.Until(deadline); remain < readTimeout {
			readTimeout = remain
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		n, err := conn.Read(buf)
		out.BytesReceived += n
		if n > 0 && req != nil && req.Marker != "" {
			out.LastClass = Classify(req.Marker, buf[:n])
		}
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			out.LastClass = ClassNoResponse
			out.Message = "connection closed by remote"
			break
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			// Expiry at the window boundary is completion, not failure.
			if time.Now().Before(deadline) {
				out.LastClass = ClassTCPTimeout
				out.Message = "no data within read timeout"
			}
			break
		}
		out.LastClass = ClassError
		out.Message = err.Error()
		break
	}

	out.Elapsed = time.Since(start)
	if out.Elapsed > duration {
		out.Elapsed = duration
	}
	if duration > 0 {
		out.Fraction = float64(out.Elapsed) / float64(duration)
	}
	out.Sustained = out.Fraction >= threshold
	return out
}
