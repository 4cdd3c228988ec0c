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
	Host    string        `arg:"" help:"Echo server host."`
	Port    int           `arg:"" optional:"" default:"7777" help:"Echo server port."`
	Message string        `arg:"" optional:"" default:"Hello from test client" help:"Payload to send."`
	Timeout time.Duration `help:"Connect and read timeout." default:"10s"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("probe-echo"),
		kong.Description("Verify an echo endpoint returns exactly what it was sent."),
	)

	r := report.New(os.Stdout)

	tgt, err := probe.NewTarget(cli.Host, cli.Port, cli.Timeout)
	if err != nil {
		r.Fail("invalid target: %s", err)
		os.Exit(1)
	}

	r.Banner("Testing echo server at %s", tgt.Addr())
	r.Step("Sending: %q", cli.Message)

	var p probe.Prober
	res := p.Echo(context.Background(), tgt, []byte(cli.Message))

	switch {
	case res.Succeeded:
		r.Step("Received: %q", string(res.Response))
		r.Pass("echo matched (%d bytes in %s)", res.BytesReceived, res.Elapsed.Round(time.Millisecond))
	case res.Classification == probe.ClassTCPRefused:
		r.Fail("connection refused - server may not be running or port blocked")
	case res.Classification == probe.ClassTCPTimeout:
		r.Fail("connection timed out")
	case res.Classification == probe.ClassProtocolMismatch:
		r.Step("Received: %q", string(res.Response))
		r.Fail("server response doesn't match sent message")
	case res.Classification == probe.ClassNoResponse:
		r.Fail("server closed the connection without echoing")
	default:
		r.Fail("%s: %s", res.Classification, res.Message)
	}

	if !r.Summary() {
		os.Exit(1)
	}
}
