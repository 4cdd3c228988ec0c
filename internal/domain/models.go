package domain

import "time"

type EndpointID string

// Endpoint is a monitored TCP endpoint: a forwarded camera port, an echo
// responder, or any plain socket worth watching.
type Endpoint struct {
	ID        EndpointID `json:"id"`
	Host      string     `json:"host"`
	Port      int        `json:"port"`
	Kind      string     `json:"kind"`           // "tcp" | "echo" | "rtsp"
	Path      string     `json:"path,omitempty"` // rtsp stream path, e.g. /stream1
	CreatedAt time.Time  `json:"created_at"`
}

// ProbeRecord is one stored probe outcome for an endpoint.
type ProbeRecord struct {
	EndpointID     EndpointID `json:"endpoint_id"`
	Succeeded      bool       `json:"succeeded"`
	Classification string     `json:"classification"`
	LatencyMS      float64    `json:"latency_ms"`
	BytesReceived  int        `json:"bytes_received"`
	Message        string     `json:"message,omitempty"`
	CheckedAt      time.Time  `json:"checked_at"`
}
