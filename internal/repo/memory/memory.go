package memory

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/hamed0406/endpointprobe/internal/domain"
	"github.com/hamed0406/endpointprobe/internal/repo"
)

var _ repo.EndpointStore = (*Store)(nil)
var _ repo.RecordStore = (*Store)(nil)
var _ repo.AlertStore = (*Store)(nil)

type Store struct {
	mu        sync.RWMutex
	endpoints map[domain.EndpointID]*domain.Endpoint
	records   []*domain.ProbeRecord
	alerts    map[domain.EndpointID]*repo.AlertRecord
}

func New() *Store {
	return &Store{
		endpoints: make(map[domain.EndpointID]*domain.Endpoint),
		records:   make([]*domain.ProbeRecord, 0, 128),
		alerts:    make(map[domain.EndpointID]*repo.AlertRecord),
	}
}

func (m *Store) Add(ctx context.Context, e *domain.Endpoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = domain.EndpointID(time.Now().UTC().Format("20060102T150405.000000000"))
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m.endpoints[e.ID] = e
	return nil
}

func (m *Store) Get(ctx context.Context, id domain.EndpointID) (*domain.Endpoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.endpoints[id]
	if !ok {
		return nil, fmt.Errorf("endpoint %s not found", id)
	}
	return e, nil
}

func (m *Store) List(ctx context.Context) ([]*domain.Endpoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Endpoint, 0, len(m.endpoints))
	for _, e := range m.endpoints {
		out = append(out, e)
	}
	return out, nil
}

func (m *Store) Append(ctx context.Context, r *domain.ProbeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r)
	return nil
}

func (m *Store) LastByEndpoint(ctx context.Context, id domain.EndpointID) (*domain.ProbeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var last *domain.ProbeRecord
	for _, r := range m.records {
		if r.EndpointID != id {
			continue
		}
		if last == nil || r.CheckedAt.After(last.CheckedAt) {
			last = r
		}
	}
	return last, nil
}

func (m *Store) Latest(ctx context.Context) ([]repo.LatestRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	latest := make(map[domain.EndpointID]*domain.ProbeRecord)
	for _, r := range m.records {
		cur := latest[r.EndpointID]
		if cur == nil || r.CheckedAt.After(cur.CheckedAt) {
			latest[r.EndpointID] = r
		}
	}

	out := make([]repo.LatestRow, 0, len(latest))
	for id, r := range latest {
		addr, kind := "", ""
		if e := m.endpoints[id]; e != nil {
			addr = net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
			kind = e.Kind
		}
		out = append(out, repo.LatestRow{
			EndpointID:     string(id),
			Addr:           addr,
			Kind:           kind,
			Succeeded:      r.Succeeded,
			Classification: r.Classification,
			LatencyMS:      r.LatencyMS,
			Message:        r.Message,
			CheckedAt:      r.CheckedAt,
		})
	}
	return out, nil
}

func (m *Store) GetAlert(ctx context.Context, id domain.EndpointID) (*repo.AlertRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.alerts[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *Store) SetAlert(ctx context.Context, id domain.EndpointID, lastState bool, sentAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.alerts[id]
	if rec == nil {
		rec = &repo.AlertRecord{EndpointID: id}
		m.alerts[id] = rec
	}
	rec.LastState = lastState
	if !sentAt.IsZero() {
		t := sentAt
		rec.LastSentAt = &t
	}
	return nil
}
