package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hamed0406/endpointprobe/internal/domain"
	"github.com/hamed0406/endpointprobe/internal/notify"
	"github.com/hamed0406/endpointprobe/internal/repo"
)

type fakeAlerts struct {
	mu sync.Mutex
	m  map[domain.EndpointID]*repo.AlertRecord
}

func newFakeAlerts() *fakeAlerts {
	return &fakeAlerts{m: make(map[domain.EndpointID]*repo.AlertRecord)}
}

func (f *fakeAlerts) GetAlert(ctx context.Context, id domain.EndpointID) (*repo.AlertRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.m[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeAlerts) SetAlert(ctx context.Context, id domain.EndpointID, lastState bool, sentAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.m[id]
	if rec == nil {
		rec = &repo.AlertRecord{EndpointID: id}
		f.m[id] = rec
	}
	rec.LastState = lastState
	if !sentAt.IsZero() {
		t := sentAt
		rec.LastSentAt = &t
	}
	return nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notify.Event
}

func (f *fakeNotifier) Send(ctx context.Context, ev notify.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, ev)
	return nil
}

func downRow() repo.LatestRow {
	return repo.LatestRow{
		EndpointID:     "E1",
		Addr:           "10.0.0.2:8551",
		Kind:           "rtsp",
		Succeeded:      false,
		Classification: "TCP_REFUSED",
		Message:        "connection refused",
		CheckedAt:      time.Now().UTC(),
	}
}

func TestAlerter_SendsDownOnce(t *testing.T) {
	rs := &fakeRecords{rows: []repo.LatestRow{downRow()}}
	db := newFakeAlerts()
	n := &fakeNotifier{}

	a := NewAlerter(rs, db, n, AlerterConfig{Cooldown: time.Hour, PollInterval: time.Minute})

	if err := a.scanOnce(context.Background()); err != nil {
		t.Fatalf("scanOnce: %v", err)
	}
	// same state again: cooldown plus unchanged state means no second send
	if err := a.scanOnce(context.Background()); err != nil {
		t.Fatalf("scanOnce: %v", err)
	}

	if len(n.sent) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(n.sent))
	}
	if n.sent[0].Recovered {
		t.Fatalf("expected a DOWN event, got %+v", n.sent[0])
	}
	if n.sent[0].Classification != "TCP_REFUSED" {
		t.Fatalf("classification should flow through, got %+v", n.sent[0])
	}
}

func TestAlerter_RecoveryBypassesCooldown(t *testing.T) {
	rs := &fakeRecords{rows: []repo.LatestRow{downRow()}}
	db := newFakeAlerts()
	n := &fakeNotifier{}

	a := NewAlerter(rs, db, n, AlerterConfig{
		AlertOnRecovery: true,
		Cooldown:        time.Hour,
		PollInterval:    time.Minute,
	})

	if err := a.scanOnce(context.Background()); err != nil {
		t.Fatalf("scanOnce: %v", err)
	}

	up := downRow()
	up.Succeeded = true
	up.Classification = "PROTOCOL_OK"
	rs.mu.Lock()
	rs.rows = []repo.LatestRow{up}
	rs.mu.Unlock()

	if err := a.scanOnce(context.Background()); err != nil {
		t.Fatalf("scanOnce: %v", err)
	}

	if len(n.sent) != 2 {
		t.Fatalf("expected down + recovery, got %d", len(n.sent))
	}
	if !n.sent[1].Recovered {
		t.Fatalf("expected recovery event, got %+v", n.sent[1])
	}
}

func TestAlerter_RecoveryDisabledRecordsState(t *testing.T) {
	rs := &fakeRecords{rows: []repo.LatestRow{downRow()}}
	db := newFakeAlerts()
	n := &fakeNotifier{}

	a := NewAlerter(rs, db, n, AlerterConfig{Cooldown: time.Hour, PollInterval: time.Minute})
	_ = a.scanOnce(context.Background())

	up := downRow()
	up.Succeeded = true
	rs.mu.Lock()
	rs.rows = []repo.LatestRow{up}
	rs.mu.Unlock()
	_ = a.scanOnce(context.Background())

	if len(n.sent) != 1 {
		t.Fatalf("recovery alerts disabled: expected only the down alert, got %d", len(n.sent))
	}
	rec, _ := db.GetAlert(context.Background(), domain.EndpointID("E1"))
	if rec == nil || !rec.LastState {
		t.Fatalf("state flip should still be recorded, got %+v", rec)
	}
}
