package probe

import "time"

// Classification is the closed outcome taxonomy of a single probe.
// Refusal and timeout stay distinct: operators need to tell "nothing is
// listening" apart from "network path is silent".
type Classification string

const (
	ClassTCPOK            Classification = "TCP_OK"
	ClassTCPRefused       Classification = "TCP_REFUSED"
	ClassTCPTimeout       Classification = "TCP_TIMEOUT"
	ClassProtocolOK       Classification = "PROTOCOL_OK"
	ClassProtocolMismatch Classification = "PROTOCOL_MISMATCH"
	ClassNoResponse       Classification = "NO_RESPONSE"
	ClassError            Classification = "ERROR"
)

// Success reports whether the classification counts as a passed check.
func (c Classification) Success() bool {
	return c == ClassTCPOK || c == ClassProtocolOK
}

// Result is the outcome of one probe invocation. Created fresh per probe,
// never mutated after return, owned by the caller.
type Result struct {
	Succeeded      bool           `json:"succeeded"`
	Classification Classification `json:"classification"`
	BytesSent      int            `json:"bytes_sent"`
	BytesReceived  int            `json:"bytes_received"`
	Elapsed        time.Duration  `json:"elapsed"`
	Response       []byte         `json:"-"`
	Message        string         `json:"message,omitempty"`
}

func failed(c Classification, elapsed time.Duration, msg string) Result {
	return Result{Classification: c, Elapsed: elapsed, Message: msg}
}
