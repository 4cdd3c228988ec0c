package probe

import (
	"bytes"
	"context"
	"fmt"
)

// Echo sends message and verifies the endpoint echoes it back byte-for-byte,
// encoding included. Anything less than an exact echo is PROTOCOL_MISMATCH.
func (p *Prober) Echo(ctx context.Context, t Target, message []byte) Result {
	res := p.Probe(ctx, t, &Request{Payload: message, Description: "echo"})
	if !res.Succeeded {
		return res
	}
	if bytes.Equal(res.Response, message) {
		res.Classification = ClassProtocolOK
		res.Message = "echo matched"
		return res
	}
	res.Succeeded = false
	res.Classification = ClassProtocolMismatch
	res.Message = fmt.Sprintf("echo mismatch: sent %d bytes, got %d back", len(message), res.BytesReceived)
	return res
}
