package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hamed0406/endpointprobe/internal/probe"
)

const prefix = "endpointprobe_"

// Metrics exposes probe outcomes to Prometheus.
type Metrics struct {
	reg *prometheus.Registry

	probesTotal  *prometheus.CounterVec
	probeLatency *prometheus.HistogramVec
	endpointUp   *prometheus.GaugeVec
}

func New() (*Metrics, error) {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		probesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "probes_total",
			Help: "Probes performed, by endpoint kind and outcome classification",
		}, []string{"kind", "classification"}),
		probeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "probe_duration_seconds",
			Help:    "Probe wall-clock duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		endpointUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: prefix + "endpoint_up",
			Help: "Last probe outcome for an endpoint (1: up, 0: down)",
		}, []string{"addr", "kind"}),
	}

	for _, c := range []prometheus.Collector{m.probesTotal, m.probeLatency, m.endpointUp} {
		if err := m.reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveProbe records one finished probe.
func (m *Metrics) ObserveProbe(kind, addr string, out probe.CheckResult) {
	m.probesTotal.WithLabelValues(kind, string(out.Classification)).Inc()
	m.probeLatency.WithLabelValues(kind).Observe(out.LatencyMS / 1000)
	up := 0.0
	if out.Success {
		up = 1.0
	}
	m.endpointUp.WithLabelValues(addr, kind).Set(up)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
