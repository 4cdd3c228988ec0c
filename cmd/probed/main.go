package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hamed0406/endpointprobe/internal/config"
	"github.com/hamed0406/endpointprobe/internal/httpapi"
	"github.com/hamed0406/endpointprobe/internal/httpapi/middleware"
	"github.com/hamed0406/endpointprobe/internal/logging"
	"github.com/hamed0406/endpointprobe/internal/metrics"
	"github.com/hamed0406/endpointprobe/internal/notify"
	"github.com/hamed0406/endpointprobe/internal/repo/memory"
	"github.com/hamed0406/endpointprobe/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir, zapcore.InfoLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	store := memory.New() // later: swap to a DB-backed store

	m, err := metrics.New()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	monitor := scheduler.NewMonitor(
		logger, store, store, m,
		cfg.MonitorInterval, cfg.ProbeTimeout, cfg.MonitorConcurrency,
	)
	monitor.RetryAttempts = cfg.RetryAttempts
	monitor.RetryBackoff = cfg.RetryBackoff
	go monitor.Run(ctx)

	if cfg.SlackWebhook != "" {
		alerter := scheduler.NewAlerter(store, store,
			notify.Multi{notify.NewSlack(cfg.SlackWebhook)},
			scheduler.AlerterConfig{
				AlertOnRecovery: cfg.AlertOnRecovery,
				Cooldown:        cfg.AlertCooldown,
				PollInterval:    cfg.AlertPoll,
			},
		)
		go func() { _ = alerter.Run(ctx) }()
	}

	api := httpapi.NewServer(logger, store, store, cfg.ProbeTimeout, m.Handler())
	api.SustainThreshold = cfg.SustainThreshold
	keys := middleware.Keys{Public: cfg.PublicAPIKeys, Admin: cfg.AdminAPIKeys}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.Router(keys, cfg.PublicRPM, cfg.PublicBurst, cfg.AdminRPM, cfg.AdminBurst),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	logger.Info("stopped")
}
