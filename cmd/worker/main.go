package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/passmeter/internal/config"
	"github.com/jwalitptl/passmeter/internal/repository"
	"github.com/jwalitptl/passmeter/internal/repository/backend"
	"github.com/jwalitptl/passmeter/internal/worker"
	"github.com/jwalitptl/passmeter/pkg/logger"
	"github.com/jwalitptl/passmeter/pkg/metrics"
)

const healthAddr = ":8081"

func setupHealthCheck(repo repository.HistoryRepository, reg *prometheus.Registry, appLog *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := repo.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: healthAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error(err, "health check server failed")
			os.Exit(1)
		}
	}()
	return srv
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("PASSMETER_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLog := logger.NewLogger(&logger.Config{
		Level: logger.ParseLevel(cfg.Log.Level),
		JSON:  cfg.Log.JSON,
	})
	log.Logger = *appLog.Zerolog()

	if !backend.Shared(cfg.History.Backend) {
		appLog.Fatal(errors.New("unshared history backend"),
			"the retention worker needs a redis or postgres store; the api prunes memory history itself",
			"backend", cfg.History.Backend)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := backend.Open(ctx, cfg)
	if err != nil {
		appLog.Fatal(err, "failed to open history store", "backend", cfg.History.Backend)
	}
	defer closeRepo()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(cfg.Metrics.Namespace, reg)

	health := setupHealthCheck(repo, reg, appLog)

	retention := worker.NewHistoryRetentionWorker(repo, cfg.History.Retention, cfg.History.PruneInterval, m, appLog)
	retention.Start(ctx)

	appLog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := health.Shutdown(shutdownCtx); err != nil {
		appLog.Error(err, "health server forced to shutdown")
	}
}
