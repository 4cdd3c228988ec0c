package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/alecthomas/kong"
)

var cli struct {
	Host string `arg:"" help:"Endpoint host."`
	Port int    `arg:"" help:"Endpoint port."`
	Kind string `help:"Endpoint kind." enum:"tcp,echo,rtsp" default:"tcp"`
	Path string `help:"RTSP stream path (rtsp kind only)."`
	API  string `env:"PROBE_API" default:"http://localhost:8080" help:"probed API base URL."`
	Key  string `env:"PROBE_API_KEY" help:"Admin API key."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("probectl"),
		kong.Description("Register an endpoint with a running probed daemon."),
	)

	body, _ := json.Marshal(map[string]any{
		"host": cli.Host,
		"port": cli.Port,
		"kind": cli.Kind,
		"path": cli.Path,
	})
	req, err := http.NewRequest(http.MethodPost, cli.API+"/api/endpoints", bytes.NewReader(body))
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad request:", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if cli.Key != "" {
		req.Header.Set("X-API-Key", cli.Key)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error contacting API:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Fprintln(os.Stderr, "API returned status:", resp.Status)
		os.Exit(1)
	}

	var out struct {
		Endpoint struct {
			ID string `json:"id"`
		} `json:"endpoint"`
		Record struct {
			Succeeded      bool   `json:"succeeded"`
			Classification string `json:"classification"`
		} `json:"record"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Fprintln(os.Stderr, "decode response:", err)
		os.Exit(1)
	}
	fmt.Printf("Registered %s:%d (%s) as %s; first probe: %s\n",
		cli.Host, cli.Port, cli.Kind, out.Endpoint.ID, out.Record.Classification)
}
