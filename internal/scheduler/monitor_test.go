package scheduler

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/endpointprobe/internal/domain"
	"github.com/hamed0406/endpointprobe/internal/probe"
	"github.com/hamed0406/endpointprobe/internal/repo"
)

// --- fakes ---

type fakeEndpoints struct {
	eps []*domain.Endpoint
}

func (f *fakeEndpoints) Add(ctx context.Context, e *domain.Endpoint) error { return nil }
func (f *fakeEndpoints) Get(ctx context.Context, id domain.EndpointID) (*domain.Endpoint, error) {
	return nil, nil
}
func (f *fakeEndpoints) List(ctx context.Context) ([]*domain.Endpoint, error) {
	return f.eps, nil
}

type fakeRecords struct {
	mu   sync.Mutex
	n    int
	last *domain.ProbeRecord
	rows []repo.LatestRow
}

func (f *fakeRecords) Append(ctx context.Context, r *domain.ProbeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	cp := *r
	f.last = &cp
	return nil
}

func (f *fakeRecords) LastByEndpoint(ctx context.Context, id domain.EndpointID) (*domain.ProbeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, nil
}

func (f *fakeRecords) Latest(ctx context.Context) ([]repo.LatestRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows, nil
}

type fakeObserver struct {
	mu sync.Mutex
	n  int
}

func (f *fakeObserver) ObserveProbe(kind, addr string, out probe.CheckResult) {
	f.mu.Lock()
	f.n++
	f.mu.Unlock()
}

// --- tests ---

func TestMonitor_RunOnceViaLoop_AppendsRecord(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			_ = c.Close()
		}
	}()
	port := ln.Addr().(*net.TCPAddr).Port

	es := &fakeEndpoints{eps: []*domain.Endpoint{{
		ID:   domain.EndpointID("E1"),
		Host: "127.0.0.1",
		Port: port,
		Kind: probe.KindTCP,
	}}}
	rs := &fakeRecords{}
	obs := &fakeObserver{}

	m := NewMonitor(zap.NewNop(), es, rs, obs, 10*time.Millisecond, time.Second, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	m.Run(ctx)

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.n == 0 {
		t.Fatalf("expected at least one record appended")
	}
	if rs.last == nil || !rs.last.Succeeded {
		t.Fatalf("expected a successful probe record, got %+v", rs.last)
	}
	if rs.last.Classification != string(probe.ClassTCPOK) {
		t.Fatalf("want TCP_OK, got %s", rs.last.Classification)
	}

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if obs.n == 0 {
		t.Fatalf("expected observer to see probes")
	}
}

func TestMonitor_ChecksAllKinds(t *testing.T) {
	m := &Monitor{}
	if _, ok := m.checkerFor(&domain.Endpoint{Kind: probe.KindEcho}).(*probe.EchoChecker); !ok {
		t.Fatalf("echo endpoint should get EchoChecker")
	}
	if _, ok := m.checkerFor(&domain.Endpoint{Kind: probe.KindRTSP}).(*probe.RTSPChecker); !ok {
		t.Fatalf("rtsp endpoint should get RTSPChecker")
	}
	if _, ok := m.checkerFor(&domain.Endpoint{Kind: probe.KindTCP}).(*probe.TCPChecker); !ok {
		t.Fatalf("tcp endpoint should get TCPChecker")
	}

	m.RetryAttempts = 3
	if _, ok := m.checkerFor(&domain.Endpoint{Kind: probe.KindTCP}).(*probe.RetryChecker); !ok {
		t.Fatalf("retries configured should wrap in RetryChecker")
	}
}
