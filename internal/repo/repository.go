package repo

import (
	"context"
	"time"

	"github.com/hamed0406/endpointprobe/internal/domain"
)

// Ports (interfaces) — swap in any storage adapter later.
type EndpointStore interface {
	Add(ctx context.Context, e *domain.Endpoint) error
	Get(ctx context.Context, id domain.EndpointID) (*domain.Endpoint, error)
	List(ctx context.Context) ([]*domain.Endpoint, error)
}

type RecordStore interface {
	Append(ctx context.Context, r *domain.ProbeRecord) error
	LastByEndpoint(ctx context.Context, id domain.EndpointID) (*domain.ProbeRecord, error)
	Latest(ctx context.Context) ([]LatestRow, error)
}

// LatestRow joins an endpoint with its most recent probe record, shaped for
// the alerter and the API listing.
type LatestRow struct {
	EndpointID     string    `json:"endpoint_id"`
	Addr           string    `json:"addr"`
	Kind           string    `json:"kind"`
	Succeeded      bool      `json:"succeeded"`
	Classification string    `json:"classification"`
	LatencyMS      float64   `json:"latency_ms"`
	Message        string    `json:"message,omitempty"`
	CheckedAt      time.Time `json:"checked_at"`
}
