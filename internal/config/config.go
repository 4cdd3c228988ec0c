package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the probed daemon configuration, read from the environment with
// an optional .env file for local runs.
type Config struct {
	Addr   string `env:"PROBE_API_ADDR" env-default:"127.0.0.1:8080"`
	LogDir string `env:"PROBE_LOG_DIR" env-default:"logs"`

	ProbeTimeout       time.Duration `env:"PROBE_TIMEOUT" env-default:"10s"`
	MonitorInterval    time.Duration `env:"PROBE_INTERVAL" env-default:"30s"`
	MonitorConcurrency int           `env:"PROBE_CONCURRENCY" env-default:"4"`
	RetryAttempts      int           `env:"PROBE_RETRY_ATTEMPTS" env-default:"1"`
	RetryBackoff       time.Duration `env:"PROBE_RETRY_BACKOFF" env-default:"300ms"`

	// SustainThreshold is the fraction of a persistent-probe window the
	// connection must survive to count as sustained.
	SustainThreshold float64 `env:"PROBE_SUSTAIN_THRESHOLD" env-default:"0.8"`

	PublicAPIKeys []string `env:"PUBLIC_API_KEYS" env-separator:","`
	AdminAPIKeys  []string `env:"ADMIN_API_KEYS" env-separator:","`
	PublicRPM     int      `env:"PUBLIC_RPM" env-default:"120"`
	PublicBurst   int      `env:"PUBLIC_BURST" env-default:"60"`
	AdminRPM      int      `env:"ADMIN_RPM" env-default:"60"`
	AdminBurst    int      `env:"ADMIN_BURST" env-default:"30"`

	SlackWebhook    string        `env:"SLACK_WEBHOOK"`
	AlertCooldown   time.Duration `env:"ALERT_COOLDOWN" env-default:"10m"`
	AlertOnRecovery bool          `env:"ALERT_ON_RECOVERY" env-default:"true"`
	AlertPoll       time.Duration `env:"ALERT_POLL_INTERVAL" env-default:"30s"`
}

// Load reads .env (best effort) then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("PROBE_TIMEOUT must be positive, got %s", c.ProbeTimeout)
	}
	if c.MonitorConcurrency < 1 {
		return fmt.Errorf("PROBE_CONCURRENCY must be at least 1, got %d", c.MonitorConcurrency)
	}
	if c.SustainThreshold <= 0 || c.SustainThreshold > 1 {
		return fmt.Errorf("PROBE_SUSTAIN_THRESHOLD must be in (0, 1], got %f", c.SustainThreshold)
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("PROBE_RETRY_ATTEMPTS must be at least 1, got %d", c.RetryAttempts)
	}
	return nil
}
