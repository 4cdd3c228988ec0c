package scheduler

import (
	"context"
	"time"

	"github.com/hamed0406/endpointprobe/internal/domain"
	"github.com/hamed0406/endpointprobe/internal/notify"
	"github.com/hamed0406/endpointprobe/internal/repo"
)

type AlerterConfig struct {
	AlertOnRecovery bool
	Cooldown        time.Duration
	PollInterval    time.Duration
}

// Alerter watches the latest probe records and notifies on up/down flips.
type Alerter struct {
	records  repo.RecordStore
	alertDB  repo.AlertStore
	notifier notify.Notifier
	cfg      AlerterConfig
}

func NewAlerter(records repo.RecordStore, alertDB repo.AlertStore, notifier notify.Notifier, cfg AlerterConfig) *Alerter {
	return &Alerter{
		records:  records,
		alertDB:  alertDB,
		notifier: notifier,
		cfg:      cfg,
	}
}

func (a *Alerter) Run(ctx context.Context) error {
	t := time.NewTicker(a.cfg.PollInterval)
	defer t.Stop()

	// initial pass
	_ = a.scanOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			_ = a.scanOnce(ctx)
		}
	}
}

func (a *Alerter) scanOnce(ctx context.Context) error {
	rows, err := a.records.Latest(ctx)
	if err != nil {
		return err
	}

	now := time.Now()

	for _, r := range rows {
		id := domain.EndpointID(r.EndpointID)
		rec, _ := a.alertDB.GetAlert(ctx, id)

		// Has the up/down state changed compared to what we last recorded?
		stateChanged := rec == nil || rec.LastState != r.Succeeded

		// Cooldown only matters for DOWN alerts (suppresses noisy repeats).
		cooled := true
		if rec != nil && rec.LastSentAt != nil {
			cooled = now.Sub(*rec.LastSentAt) >= a.cfg.Cooldown
		}

		downAlert := stateChanged && !r.Succeeded && cooled
		recoveryAlert := stateChanged && r.Succeeded && a.cfg.AlertOnRecovery // bypass cooldown

		if downAlert || recoveryAlert {
			ev := notify.Event{
				Addr:           r.Addr,
				Kind:           r.Kind,
				Recovered:      r.Succeeded,
				Classification: r.Classification,
				LatencyMS:      r.LatencyMS,
				Message:        r.Message,
				CheckedAt:      r.CheckedAt,
			}
			// Best-effort send; the send time is recorded even on failure.
			_ = a.notifier.Send(ctx, ev)
			_ = a.alertDB.SetAlert(ctx, id, r.Succeeded, now)
			continue
		}

		// State changed but nothing sent (DOWN within cooldown, or recovery
		// alerts disabled): still record the new state without a send time.
		if stateChanged {
			_ = a.alertDB.SetAlert(ctx, id, r.Succeeded, time.Time{})
		}
	}

	return nil
}
