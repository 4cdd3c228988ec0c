package probe

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Defaults mirror the field diagnostic scripts this package replaces.
const (
	DefaultTimeout     = 10 * time.Second
	DefaultMaxResponse = 4096
)

// Target identifies one TCP endpoint to probe. Immutable once constructed.
type Target struct {
	Host    string
	Port    int
	Timeout time.Duration
}

// NewTarget validates host and port and fills in the default timeout.
func NewTarget(host string, port int, timeout time.Duration) (Target, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return Target{}, fmt.Errorf("empty host")
	}
	if port < 1 || port > 65535 {
		return Target{}, fmt.Errorf("port %d out of range 1-65535", port)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return Target{Host: host, Port: port, Timeout: timeout}, nil
}

// Addr returns the dialable "host:port" form.
func (t Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// Request is an optional application-layer payload sent once the TCP
// connection is up. Marker, when set, is the literal byte sequence whose
// presence in the reply distinguishes PROTOCOL_OK from PROTOCOL_MISMATCH.
type Request struct {
	Payload     []byte
	Marker      string
	Description string
}
