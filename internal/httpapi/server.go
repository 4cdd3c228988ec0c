package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/endpointprobe/internal/domain"
	"github.com/hamed0406/endpointprobe/internal/httpapi/middleware"
	"github.com/hamed0406/endpointprobe/internal/probe"
	"github.com/hamed0406/endpointprobe/internal/repo"
)

type Server struct {
	Logger         *zap.Logger
	Endpoints      repo.EndpointStore
	Records        repo.RecordStore
	Timeout        time.Duration
	MetricsHandler http.Handler

	// SustainThreshold applies to persistent ad-hoc probes. Zero selects
	// the package default.
	SustainThreshold float64

	// swappable in tests
	checkerFor func(kind, path string) (probe.Checker, error)
}

func NewServer(l *zap.Logger, es repo.EndpointStore, rs repo.RecordStore, timeout time.Duration, metrics http.Handler) *Server {
	if timeout <= 0 {
		timeout = probe.DefaultTimeout
	}
	return &Server{
		Logger:         l,
		Endpoints:      es,
		Records:        rs,
		Timeout:        timeout,
		MetricsHandler: metrics,
		checkerFor:     defaultCheckerFor,
	}
}

func defaultCheckerFor(kind, path string) (probe.Checker, error) {
	if kind == probe.KindRTSP {
		return &probe.RTSPChecker{Path: path}, nil
	}
	return probe.ForKind(kind)
}

func (s *Server) Router(keys middleware.Keys, publicRPM, publicBurst, adminRPM, adminBurst int) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", s.MetricsHandler)
	}

	// read surface
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAny(keys))
		pr.Use(middleware.RateLimit(publicRPM, publicBurst))
		pr.Get("/api/endpoints", s.handleListEndpoints)
		pr.Get("/api/endpoints/{id}/last", s.handleLastRecord)
		pr.Get("/api/results/latest", s.handleLatest)
	})

	// mutating surface
	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAdmin(keys))
		ar.Use(middleware.RateLimit(adminRPM, adminBurst))
		ar.Post("/api/endpoints", s.handleAddEndpoint)
		ar.Post("/api/probe", s.handleAdhocProbe)
	})

	return r
}

type endpointPayload struct {
	Host string `json:"host"`
	Port int    `json:"port"`
	Kind string `json:"kind"`
	Path string `json:"path,omitempty"`
}

func (p endpointPayload) target(timeout time.Duration) (probe.Target, error) {
	return probe.NewTarget(p.Host, p.Port, timeout)
}

func (s *Server) handleAddEndpoint(w http.ResponseWriter, r *http.Request) {
	var p endpointPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	if p.Kind == "" {
		p.Kind = probe.KindTCP
	}
	tgt, err := p.target(s.Timeout)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	chk, err := s.checkerFor(p.Kind, p.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// duplicate = same address and kind
	existing, err := s.Endpoints.List(r.Context())
	if err != nil {
		http.Error(w, "list error", http.StatusInternalServerError)
		return
	}
	for _, e := range existing {
		if e.Host == p.Host && e.Port == p.Port && e.Kind == p.Kind {
			http.Error(w, "endpoint already registered", http.StatusConflict)
			return
		}
	}

	ep := &domain.Endpoint{
		Host:      p.Host,
		Port:      p.Port,
		Kind:      p.Kind,
		Path:      p.Path,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Endpoints.Add(r.Context(), ep); err != nil {
		http.Error(w, "could not add", http.StatusInternalServerError)
		return
	}

	// Run a single probe synchronously for immediate feedback
	out := chk.Check(r.Context(), tgt)

	rec := &domain.ProbeRecord{
		EndpointID:     ep.ID,
		Succeeded:      out.Success,
		Classification: string(out.Classification),
		LatencyMS:      out.LatencyMS,
		BytesReceived:  out.BytesReceived,
		Message:        out.Message,
		CheckedAt:      time.Now().UTC(),
	}
	_ = s.Records.Append(r.Context(), rec)

	s.Logger.Info("added_endpoint",
		zap.String("addr", tgt.Addr()),
		zap.String("kind", p.Kind),
		zap.String("classification", string(out.Classification)),
		zap.Bool("up", out.Success),
		zap.Float64("latency_ms", out.LatencyMS),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"endpoint": ep, "record": rec,
	})
}

func (s *Server) handleAdhocProbe(w http.ResponseWriter, r *http.Request) {
	var p struct {
		endpointPayload
		TimeoutMS  int `json:"timeout_ms,omitempty"`
		DurationMS int `json:"duration_ms,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	if p.Kind == "" {
		p.Kind = probe.KindTCP
	}
	timeout := s.Timeout
	if p.TimeoutMS > 0 {
		timeout = time.Duration(p.TimeoutMS) * time.Millisecond
	}
	tgt, err := p.target(timeout)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// duration_ms switches to a persistent hold on the control channel
	if p.DurationMS > 0 {
		if p.Kind != probe.KindRTSP {
			http.Error(w, "persistent probe requires kind rtsp", http.StatusBadRequest)
			return
		}
		var pr probe.Prober
		req := probe.DescribeRequest(probe.StreamURL(tgt.Host, tgt.Port, p.Path), 1)
		out := pr.RunPersistent(r.Context(), tgt, &req,
			time.Duration(p.DurationMS)*time.Millisecond, s.SustainThreshold)

		s.Logger.Info("adhoc_persistent_probe",
			zap.String("addr", tgt.Addr()),
			zap.Bool("sustained", out.Sustained),
			zap.Duration("elapsed", out.Elapsed),
		)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
		return
	}

	chk, err := s.checkerFor(p.Kind, p.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out := chk.Check(r.Context(), tgt)

	s.Logger.Info("adhoc_probe",
		zap.String("addr", tgt.Addr()),
		zap.String("kind", p.Kind),
		zap.String("classification", string(out.Classification)),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleListEndpoints(w http.ResponseWriter, r *http.Request) {
	eps, err := s.Endpoints.List(r.Context())
	if err != nil {
		http.Error(w, "list error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(eps)
}

func (s *Server) handleLastRecord(w http.ResponseWriter, r *http.Request) {
	id := domain.EndpointID(chi.URLParam(r, "id"))
	rec, err := s.Records.LastByEndpoint(r.Context(), id)
	if err != nil {
		http.Error(w, "lookup error", http.StatusInternalServerError)
		return
	}
	if rec == nil {
		http.Error(w, "no records", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rec)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	rows, err := s.Records.Latest(r.Context())
	if err != nil {
		http.Error(w, "latest error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}
