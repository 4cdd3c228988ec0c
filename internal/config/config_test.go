package config

import (
	"testing"
	"time"
)

func TestLoad_ParsesAndDefaults(t *testing.T) {
	t.Setenv("PROBE_API_ADDR", ":9090")
	t.Setenv("PROBE_LOG_DIR", "./_testlogs")
	t.Setenv("PROBE_TIMEOUT", "5s")
	t.Setenv("PROBE_SUSTAIN_THRESHOLD", "0.9")
	t.Setenv("PUBLIC_API_KEYS", "pub_a,pub_b")
	t.Setenv("ADMIN_API_KEYS", "adm_x")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.LogDir != "./_testlogs" {
		t.Fatalf("addr/logdir wrong: %+v", cfg)
	}
	if cfg.ProbeTimeout != 5*time.Second {
		t.Fatalf("timeout wrong: %s", cfg.ProbeTimeout)
	}
	if cfg.SustainThreshold != 0.9 {
		t.Fatalf("threshold wrong: %f", cfg.SustainThreshold)
	}
	if len(cfg.PublicAPIKeys) != 2 || cfg.PublicAPIKeys[0] != "pub_a" {
		t.Fatalf("public keys wrong: %+v", cfg.PublicAPIKeys)
	}
	if len(cfg.AdminAPIKeys) != 1 || cfg.AdminAPIKeys[0] != "adm_x" {
		t.Fatalf("admin keys wrong: %+v", cfg.AdminAPIKeys)
	}
	// untouched knobs keep defaults
	if cfg.MonitorInterval != 30*time.Second || cfg.MonitorConcurrency != 4 {
		t.Fatalf("defaults wrong: %+v", cfg)
	}
}

func TestLoad_RejectsBadThreshold(t *testing.T) {
	t.Setenv("PROBE_SUSTAIN_THRESHOLD", "1.5")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for threshold > 1")
	}
}

func TestLoad_RejectsZeroTimeout(t *testing.T) {
	t.Setenv("PROBE_TIMEOUT", "0s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}
