// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	admin := strings.TrimSpace(os.Getenv("ADMIN_API_KEYS"))
	pub := strings.TrimSpace(os.Getenv("PUBLIC_API_KEYS"))
	addr := strings.TrimSpace(os.Getenv("PROBE_API_ADDR"))
	timeout := strings.TrimSpace(os.Getenv("PROBE_TIMEOUT"))
	threshold := strings.TrimSpace(os.Getenv("PROBE_SUSTAIN_THRESHOLD"))
	webhook := strings.TrimSpace(os.Getenv("SLACK_WEBHOOK"))

	if admin == "" {
		fail("ADMIN_API_KEYS is empty (endpoint registration will 403).")
	}
	if pub == "" {
		fail("PUBLIC_API_KEYS is empty (read routes will 401).")
	}

	// Normalize and sanity-check lists (no spaces around commas).
	for name, v := range map[string]string{"ADMIN_API_KEYS": admin, "PUBLIC_API_KEYS": pub} {
		if strings.Contains(v, " ") {
			warn(name + " contains spaces; use comma-separated with no spaces, e.g. key1,key2")
		}
	}

	if addr == "" {
		warn("PROBE_API_ADDR is empty; the daemon default will be used.")
	} else {
		ok("PROBE_API_ADDR set: " + addr)
	}

	if timeout != "" {
		if d, err := time.ParseDuration(timeout); err != nil || d <= 0 {
			fail("PROBE_TIMEOUT is not a positive duration: " + timeout)
		} else {
			ok("PROBE_TIMEOUT set: " + d.String())
		}
	}

	if threshold != "" {
		f, err := strconv.ParseFloat(threshold, 64)
		if err != nil || f <= 0 || f > 1 {
			fail("PROBE_SUSTAIN_THRESHOLD must be in (0, 1]: " + threshold)
		}
		ok(fmt.Sprintf("PROBE_SUSTAIN_THRESHOLD set: %.2f", f))
	}

	if webhook == "" {
		warn("SLACK_WEBHOOK is empty; down/recovery alerts are disabled.")
	} else if !strings.HasPrefix(webhook, "https://") {
		warn("SLACK_WEBHOOK does not look like an https URL.")
	} else {
		ok("SLACK_WEBHOOK set.")
	}

	ok("preflight passed")
}
