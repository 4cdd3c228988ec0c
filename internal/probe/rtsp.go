package probe

import (
	"fmt"
	"strings"
)

// RTSPMarker is the literal status-line prefix a conforming RTSP reply
// starts with. Its presence anywhere in the reply counts as protocol
// conformance; full session semantics are out of scope.
const RTSPMarker = "RTSP/1.0"

// DefaultStreamPath is the stream path used when the caller gives none.
const DefaultStreamPath = "/stream1"

const rtspUserAgent = "endpointprobe/1.0"

// OptionsRequest builds an RTSP OPTIONS request for url.
func OptionsRequest(url string, cseq int) Request {
	return Request{
		Payload:     rtspRequest("OPTIONS", url, cseq),
		Marker:      RTSPMarker,
		Description: "RTSP OPTIONS",
	}
}

// DescribeRequest builds an RTSP DESCRIBE request for url, asking for SDP.
func DescribeRequest(url string, cseq int) Request {
	return Request{
		Payload:     rtspRequest("DESCRIBE", url, cseq, "Accept: application/sdp"),
		Marker:      RTSPMarker,
		Description: "RTSP DESCRIBE",
	}
}

func rtspRequest(method, url string, cseq int, extra ...string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s RTSP/1.0\r\n", method, url)
	fmt.Fprintf(&b, "CSeq: %d\r\n", cseq)
	for _, h := range extra {
		b.WriteString(h)
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "User-Agent: %s\r\n", rtspUserAgent)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// StreamURL builds the rtsp:// control URL for a forwarded camera port.
func StreamURL(host string, port int, path string) string {
	if path == "" {
		path = DefaultStreamPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("rtsp://%s:%d%s", host, port, path)
}
