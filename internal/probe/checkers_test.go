package probe

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestForKind(t *testing.T) {
	for _, kind := range []string{KindTCP, KindEcho, KindRTSP} {
		if _, err := ForKind(kind); err != nil {
			t.Fatalf("ForKind(%q): %v", kind, err)
		}
	}
	if _, err := ForKind("udp"); err == nil {
		t.Fatalf("want error for unknown kind")
	}
}

func TestRTSPChecker_AgainstFakeCamera(t *testing.T) {
	tgt := startServer(t, 2*time.Second, func(c net.Conn) {
		buf := make([]byte, 1024)
		_, _ = c.Read(buf)
		_, _ = c.Write([]byte("RTSP/1.0 200 OK\r\nCSeq: 1\r\nPublic: OPTIONS, DESCRIBE\r\n\r\n"))
		_ = c.Close()
	})

	chk := &RTSPChecker{}
	out := chk.Check(context.Background(), tgt)
	if !out.Success {
		t.Fatalf("want success, got %+v", out)
	}
	if out.Classification != ClassProtocolOK {
		t.Fatalf("want PROTOCOL_OK, got %s", out.Classification)
	}
	if out.LatencyMS < 0 {
		t.Fatalf("latency should be >= 0, got %f", out.LatencyMS)
	}
}

func TestEchoChecker_DefaultMessage(t *testing.T) {
	tgt := startServer(t, 2*time.Second, func(c net.Conn) {
		buf := make([]byte, 1024)
		n, err := c.Read(buf)
		if err == nil {
			_, _ = c.Write(buf[:n])
		}
		_ = c.Close()
	})

	chk := &EchoChecker{}
	out := chk.Check(context.Background(), tgt)
	if !out.Success {
		t.Fatalf("want success, got %+v", out)
	}
	if out.BytesReceived != len(DefaultEchoMessage) {
		t.Fatalf("want %d bytes, got %d", len(DefaultEchoMessage), out.BytesReceived)
	}
}

func TestTCPChecker_Refused(t *testing.T) {
	tgt := closedPort(t, time.Second)

	chk := &TCPChecker{}
	out := chk.Check(context.Background(), tgt)
	if out.Success {
		t.Fatalf("want failure, got %+v", out)
	}
	if out.Classification != ClassTCPRefused {
		t.Fatalf("want TCP_REFUSED, got %s", out.Classification)
	}
}
