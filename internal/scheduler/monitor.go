package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/endpointprobe/internal/domain"
	"github.com/hamed0406/endpointprobe/internal/probe"
	"github.com/hamed0406/endpointprobe/internal/repo"
)

// Observer receives every finished probe; the metrics exporter implements it.
type Observer interface {
	ObserveProbe(kind, addr string, out probe.CheckResult)
}

// Monitor re-probes stored endpoints on a fixed interval.
type Monitor struct {
	Logger      *zap.Logger
	Endpoints   repo.EndpointStore
	Records     repo.RecordStore
	Observer    Observer
	Interval    time.Duration
	Timeout     time.Duration
	Concurrency int

	RetryAttempts int
	RetryBackoff  time.Duration
}

func NewMonitor(
	logger *zap.Logger,
	es repo.EndpointStore,
	rs repo.RecordStore,
	obs Observer,
	interval time.Duration,
	timeout time.Duration,
	concurrency int,
) *Monitor {
	if concurrency < 1 {
		concurrency = 1
	}
	if interval < 0 {
		interval = 0
	}
	if timeout <= 0 {
		timeout = probe.DefaultTimeout
	}
	return &Monitor{
		Logger:      logger,
		Endpoints:   es,
		Records:     rs,
		Observer:    obs,
		Interval:    interval,
		Timeout:     timeout,
		Concurrency: concurrency,
	}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	if m.Interval == 0 {
		// disabled
		m.Logger.Info("monitor_disabled")
		return
	}
	t := time.NewTicker(m.Interval)
	defer t.Stop()

	// immediate pass
	m.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			m.Logger.Info("monitor_stopped")
			return
		case <-t.C:
			m.runOnce(ctx)
		}
	}
}

func (m *Monitor) runOnce(ctx context.Context) {
	eps, err := m.Endpoints.List(ctx)
	if err != nil {
		m.Logger.Warn("monitor_list_error", zap.Error(err))
		return
	}
	if len(eps) == 0 {
		return
	}

	sem := make(chan struct{}, m.Concurrency)
	var wg sync.WaitGroup

	for _, ep := range eps {
		e := ep
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()
			m.probeOne(ctx, e)
		}()
	}

	wg.Wait()
}

func (m *Monitor) probeOne(ctx context.Context, e *domain.Endpoint) {
	tgt, err := probe.NewTarget(e.Host, e.Port, m.Timeout)
	if err != nil {
		m.Logger.Warn("monitor_bad_endpoint",
			zap.String("endpoint_id", string(e.ID)),
			zap.Error(err),
		)
		return
	}

	chk := m.checkerFor(e)
	out := chk.Check(ctx, tgt)

	// When a probe fails on a named host, resolve it: "port closed" and
	// "name gone" are different operator problems.
	msg := out.Message
	if !out.Success {
		if dns := probe.CheckDNS(e.Host); dns.Class != "LITERAL_IP" && dns.Class != "RESOLVES" {
			msg = strings.TrimSpace(fmt.Sprintf("%s dns=%s", msg, dns.Class))
		}
	}

	rec := &domain.ProbeRecord{
		EndpointID:     e.ID,
		Succeeded:      out.Success,
		Classification: string(out.Classification),
		LatencyMS:      out.LatencyMS,
		BytesReceived:  out.BytesReceived,
		Message:        msg,
		CheckedAt:      time.Now().UTC(),
	}
	if m.Observer != nil {
		m.Observer.ObserveProbe(e.Kind, tgt.Addr(), out)
	}
	if err := m.Records.Append(ctx, rec); err != nil {
		m.Logger.Warn("monitor_append_error",
			zap.String("endpoint_id", string(e.ID)),
			zap.String("addr", tgt.Addr()),
			zap.Error(err),
		)
		return
	}
	m.Logger.Debug("monitor_checked",
		zap.String("endpoint_id", string(e.ID)),
		zap.String("addr", tgt.Addr()),
		zap.String("kind", e.Kind),
		zap.String("classification", string(out.Classification)),
		zap.Bool("up", out.Success),
		zap.Float64("latency_ms", out.LatencyMS),
	)
}

func (m *Monitor) checkerFor(e *domain.Endpoint) probe.Checker {
	var inner probe.Checker
	switch e.Kind {
	case probe.KindEcho:
		inner = &probe.EchoChecker{}
	case probe.KindRTSP:
		inner = &probe.RTSPChecker{Path: e.Path}
	default:
		inner = &probe.TCPChecker{}
	}
	if m.RetryAttempts > 1 {
		return &probe.RetryChecker{Inner: inner, Attempts: m.RetryAttempts, Backoff: m.RetryBackoff}
	}
	return inner
}
