package main

import (
	"context"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/hamed0406/endpointprobe/internal/probe"
	"github.com/hamed0406/endpointprobe/internal/report"
)

// rawProbe is the opaque payload used to confirm bytes travel through the
// forwarder at all, independent of RTSP.
const rawProbe = "TEST_DATA_FORWARDING"

var cli struct {
	Host        string        `arg:"" help:"Forwarder host."`
	Port        int           `arg:"" help:"Forwarded RTSP port."`
	Path        string        `arg:"" optional:"" default:"/stream1" help:"RTSP stream path."`
	TCPTimeout  time.Duration `help:"TCP connectivity timeout." default:"5s"`
	RTSPTimeout time.Duration `help:"RTSP request timeout." default:"10s"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("probe-rtsp-forward"),
		kong.Description("Walk a forwarded camera port through TCP, RTSP OPTIONS and raw-data checks. Only a TCP failure is fatal."),
	)

	r := report.New(os.Stdout)
	var p probe.Prober
	ctx := context.Background()

	r.Banner("Testing RTSP port forwarding: %s:%d%s", cli.Host, cli.Port, cli.Path)

	// Check 1: TCP connectivity. Fatal: nothing else can work without it.
	r.Section("1. TCP connectivity")
	tcpTgt, err := probe.NewTarget(cli.Host, cli.Port, cli.TCPTimeout)
	if err != nil {
		r.Fail("invalid target: %s", err)
		os.Exit(1)
	}
	if res := p.Probe(ctx, tcpTgt, nil); res.Succeeded {
		r.Pass("TCP connection successful (%s)", res.Elapsed.Round(time.Millisecond))
	} else {
		r.Fail("TCP connection failed: %s (%s)", res.Classification, res.Message)
		r.Summary()
		os.Exit(1)
	}

	// Check 2: RTSP OPTIONS. Reported but non-fatal; an authenticating
	// camera can refuse this while still forwarding fine.
	r.Section("2. RTSP OPTIONS request")
	rtspTgt, _ := probe.NewTarget(cli.Host, cli.Port, cli.RTSPTimeout)
	url := probe.StreamURL(cli.Host, cli.Port, cli.Path)
	req := probe.OptionsRequest(url, 1)
	r.Step("Sending RTSP OPTIONS to %s", url)
	if res := p.Probe(ctx, rtspTgt, &req); res.Classification == probe.ClassProtocolOK {
		r.Pass("RTSP OPTIONS successful")
	} else {
		r.Warn("RTSP OPTIONS failed: %s (might be authentication required)", res.Classification)
	}

	// Check 3: raw data forwarding. Cameras often stay silent on garbage
	// input; only a transport failure counts against forwarding.
	r.Section("3. Data forwarding")
	raw := probe.Request{Payload: []byte(rawProbe), Description: "raw data"}
	res := p.Probe(ctx, tcpTgt, &raw)
	switch res.Classification {
	case probe.ClassTCPOK, probe.ClassProtocolOK:
		r.Pass("data forwarding working (%d bytes back)", res.BytesReceived)
	case probe.ClassTCPTimeout, probe.ClassNoResponse:
		r.Pass("data accepted, no response (this is normal for cameras)")
	default:
		r.Warn("data forwarding check failed: %s (%s)", res.Classification, res.Message)
	}

	r.Summary()
	r.Step("If TCP works but RTSP fails, check camera credentials and the stream path.")
}
