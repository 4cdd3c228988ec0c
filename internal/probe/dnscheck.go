package probe

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

// DNSStatus is supplementary diagnosis for a failed probe: when a dial can't
// even reach the host it helps to know whether the name resolves at all.
type DNSStatus struct {
	Host          string
	IPs           []net.IP
	Class         string // "RESOLVES" | "NXDOMAIN" | "SERVFAIL_or_TIMEOUT" | "INVALID_NAME" | "LITERAL_IP"
	ResolverError string
}

var dnsTimeout = 3 * time.Second

// CheckDNS resolves host with the OS resolver and classifies the outcome.
// Literal IP addresses short-circuit: there is nothing to resolve.
func CheckDNS(host string) DNSStatus {
	s := DNSStatus{Host: strings.TrimSpace(host)}
	if s.Host == "" || strings.Contains(s.Host, "://") {
		s.Class = "INVALID_NAME"
		return s
	}
	if ip := net.ParseIP(s.Host); ip != nil {
		s.IPs = []net.IP{ip}
		s.Class = "LITERAL_IP"
		return s
	}

	ctx, cancel := context.WithTimeout(context.Background(), dnsTimeout)
	defer cancel()

	r := &net.Resolver{}
	ips, err := r.LookupIP(ctx, "ip", s.Host)
	if err == nil && len(ips) > 0 {
		s.IPs = ips
		s.Class = "RESOLVES"
		return s
	}
	if err != nil {
		s.ResolverError = err.Error()
		var de *net.DNSError
		if errors.As(err, &de) {
			if de.IsNotFound {
				s.Class = "NXDOMAIN"
				return s
			}
			if de.IsTemporary || de.Timeout() {
				s.Class = "SERVFAIL_or_TIMEOUT"
				return s
			}
		}
	}
	s.Class = "SERVFAIL_or_TIMEOUT"
	return s
}
