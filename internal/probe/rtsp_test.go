package probe

import (
	"strings"
	"testing"
)

func TestOptionsRequest_Framing(t *testing.T) {
	req := OptionsRequest("rtsp://10.0.0.2:8551/stream1", 1)
	s := string(req.Payload)

	if !strings.HasPrefix(s, "OPTIONS rtsp://10.0.0.2:8551/stream1 RTSP/1.0\r\n") {
		t.Fatalf("bad request line: %q", s)
	}
	if !strings.Contains(s, "CSeq: 1\r\n") {
		t.Fatalf("missing CSeq: %q", s)
	}
	if !strings.HasSuffix(s, "\r\n\r\n") {
		t.Fatalf("request not terminated by blank line: %q", s)
	}
	if req.Marker != RTSPMarker {
		t.Fatalf("want marker %q, got %q", RTSPMarker, req.Marker)
	}
}

func TestDescribeRequest_AsksForSDP(t *testing.T) {
	req := DescribeRequest("rtsp://10.0.0.2:8551/stream1", 2)
	s := string(req.Payload)

	if !strings.HasPrefix(s, "DESCRIBE ") {
		t.Fatalf("bad method: %q", s)
	}
	if !strings.Contains(s, "CSeq: 2\r\n") {
		t.Fatalf("missing CSeq: %q", s)
	}
	if !strings.Contains(s, "Accept: application/sdp\r\n") {
		t.Fatalf("missing Accept header: %q", s)
	}
}

func TestStreamURL(t *testing.T) {
	if got := StreamURL("10.0.0.2", 8551, "/stream1"); got != "rtsp://10.0.0.2:8551/stream1" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := StreamURL("cam.local", 554, ""); got != "rtsp://cam.local:554/stream1" {
		t.Fatalf("default path wrong: %s", got)
	}
	if got := StreamURL("cam.local", 554, "live"); got != "rtsp://cam.local:554/live" {
		t.Fatalf("missing slash not normalized: %s", got)
	}
}
