package repo

import (
	"context"
	"time"

	"github.com/hamed0406/endpointprobe/internal/domain"
)

// AlertRecord holds last-known state and the last time we sent a
// notification for an endpoint. LastState is the last up/down we saw,
// LastSentAt drives the cooldown.
type AlertRecord struct {
	EndpointID domain.EndpointID
	LastState  bool
	LastSentAt *time.Time
}

// AlertStore is implemented by a persistence layer to store alert state.
type AlertStore interface {
	// GetAlert returns nil, nil if there's no record yet.
	GetAlert(ctx context.Context, id domain.EndpointID) (*AlertRecord, error)
	// SetAlert upserts the record. A zero sentAt leaves LastSentAt untouched.
	SetAlert(ctx context.Context, id domain.EndpointID, lastState bool, sentAt time.Time) error
}
