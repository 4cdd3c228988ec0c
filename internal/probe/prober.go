package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"time"
)

// Prober performs single bounded network interactions against TCP endpoints.
// The zero value is usable. Each probe owns its socket exclusively for its
// lifetime and releases it on every exit path.
type Prober struct {
	// MaxResponse bounds a single read. Zero means DefaultMaxResponse.
	MaxResponse int
}

func (p *Prober) maxResponse() int {
	if p.MaxResponse > 0 {
		return p.MaxResponse
	}
	return DefaultMaxResponse
}

// Dial opens a TCP connection to the target, applying the target timeout to
// the connection attempt itself, not just subsequent reads. On failure the
// classification distinguishes an active refusal from a silent path.
func (p *Prober) Dial(ctx context.Context, t Target) (net.Conn, Classification, error) {
	d := net.Dialer{Timeout: t.Timeout}
	conn, err := d.DialContext(ctx, "tcp", t.Addr())
	if err != nil {
		return nil, classifyDialError(err), err
	}
	return conn, ClassTCPOK, nil
}

func classifyDialError(err error) Classification {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return ClassTCPRefused
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ClassTCPTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ClassTCPTimeout
	}
	return ClassError
}

// Send writes the whole payload. A short write is an error: silent truncation
// here would falsify any protocol check done on the reply.
func (p *Prober) Send(conn net.Conn, payload []byte) (int, error) {
	n, err := conn.Write(payload)
	if err != nil {
		return n, err
	}
	if n != len(payload) {
		return n, fmt.Errorf("short write: %d of %d bytes", n, len(payload))
	}
	return n, nil
}

// Receive performs a single read bounded by maxBytes and timeout. A clean
// close with zero bytes is NO_RESPONSE; a read that never returns within the
// timeout is TCP_TIMEOUT. Data, when present, comes back with ClassTCPOK.
func (p *Prober) Receive(conn net.Conn, maxBytes int, timeout time.Duration) ([]byte, Classification, error) {
	if maxBytes <= 0 {
		maxBytes = p.maxResponse()
	}
	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, ClassError, err
	}
	buf := make([]byte, maxBytes)
	n, err := conn.Read(buf)
	if n > 0 {
		return buf[:n], ClassTCPOK, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return nil, ClassNoResponse, nil
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return nil, ClassTCPTimeout, err
	}
	return nil, ClassError, err
}

// Probe runs one full interaction: connect, optionally send the request,
// read one bounded reply, classify. A nil request stops after the connect
// and yields TCP_OK. No retries; each invocation is a single deterministic
// attempt.
func (p *Prober) Probe(ctx context.Context, t Target, req *Request) Result {
	start := time.Now()

	conn, class, err := p.Dial(ctx, t)
	if err != nil {
		return failed(class, time.Since(start), err.Error())
	}
	defer conn.Close()

	if req == nil {
		return Result{
			Succeeded:      true,
			Classification: ClassTCPOK,
			Elapsed:        time.Since(start),
			Message:        "connected to " + t.Addr(),
		}
	}

	sent, err := p.Send(conn, req.Payload)
	if err != nil {
		res := failed(ClassError, time.Since(start), err.Error())
		res.BytesSent = sent
		return res
	}

	data, class, err := p.Receive(conn, 0, t.Timeout)
	elapsed := time.Since(start)

	res := Result{
		Classification: class,
		BytesSent:      sent,
		BytesReceived:  len(data),
		Elapsed:        elapsed,
		Response:       data,
	}
	switch class {
	case ClassTCPOK:
		if req.Marker != "" {
			res.Classification = Classify(req.Marker, data)
			if res.Classification == ClassProtocolMismatch {
				res.Message = fmt.Sprintf("reply does not contain %q", req.Marker)
			}
		}
		res.Succeeded = res.Classification.Success()
	case ClassNoResponse:
		res.Message = "connection closed with no data"
	case ClassTCPTimeout:
		res.Message = fmt.Sprintf("no reply within %s", t.Timeout)
	default:
		if err != nil {
			res.Message = err.Error()
		}
	}
	return res
}
