package main

import (
	"context"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/hamed0406/endpointprobe/internal/probe"
	"github.com/hamed0406/endpointprobe/internal/report"
)

var cli struct {
	Port      int           `arg:"" help:"Forwarded RTSP port."`
	Host      string        `arg:"" optional:"" default:"10.0.0.2" help:"Forwarder host."`
	CameraURL string        `arg:"" optional:"" help:"Camera control URL (default rtsp://<host>:<port>/stream1)."`
	Timeout   time.Duration `help:"Connect and read timeout." default:"30s"`
	Duration  time.Duration `help:"Persistent-connection window." default:"30s"`
	Threshold float64       `help:"Fraction of the window the connection must survive." env:"PROBE_SUSTAIN_THRESHOLD" default:"0.8"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("probe-rtsp-basic"),
		kong.Description("Check an RTSP control channel: one OPTIONS round trip, then a persistent DESCRIBE window."),
	)

	r := report.New(os.Stdout)

	tgt, err := probe.NewTarget(cli.Host, cli.Port, cli.Timeout)
	if err != nil {
		r.Fail("invalid target: %s", err)
		os.Exit(1)
	}
	cameraURL := cli.CameraURL
	if cameraURL == "" {
		cameraURL = probe.StreamURL(cli.Host, cli.Port, "")
	}

	r.Banner("RTSP connection test: %s (camera %s)", tgt.Addr(), cameraURL)

	var p probe.Prober
	ctx := context.Background()

	// Check 1: one OPTIONS round trip.
	r.Section("1. Basic RTSP connection (OPTIONS)")
	req := probe.OptionsRequest(cameraURL, 1)
	res := p.Probe(ctx, tgt, &req)
	switch res.Classification {
	case probe.ClassProtocolOK:
		r.Pass("valid RTSP response (%d bytes in %s)", res.BytesReceived, res.Elapsed.Round(time.Millisecond))
	case probe.ClassProtocolMismatch:
		r.Fail("reply is not RTSP: %s", res.Message)
	case probe.ClassTCPRefused:
		r.Fail("connection refused - port forwarder might not be running")
	case probe.ClassTCPTimeout:
		r.Fail("connection timeout - camera might be unreachable")
	case probe.ClassNoResponse:
		r.Fail("no response received")
	default:
		r.Fail("%s: %s", res.Classification, res.Message)
	}

	// Check 2: hold a DESCRIBE session open for the window.
	r.Section("2. Persistent connection (%s)", cli.Duration)
	describe := probe.DescribeRequest(cameraURL, 2)
	out := p.RunPersistent(ctx, tgt, &describe, cli.Duration, cli.Threshold)
	r.Step("Connection lasted %s, received %d bytes",
		out.Elapsed.Round(time.Millisecond), out.BytesReceived)
	if out.Sustained {
		r.Pass("persistent connection held (%.0f%% of window)", out.Fraction*100)
	} else {
		r.Fail("connection ended too early: %s (%.0f%% of window)", out.Message, out.Fraction*100)
	}

	if !r.Summary() {
		os.Exit(1)
	}
}
