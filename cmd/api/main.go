package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/passmeter/internal/config"
	"github.com/jwalitptl/passmeter/internal/handler/health"
	historyHandler "github.com/jwalitptl/passmeter/internal/handler/history"
	promHandler "github.com/jwalitptl/passmeter/internal/handler/prometheus"
	strengthHandler "github.com/jwalitptl/passmeter/internal/handler/strength"
	"github.com/jwalitptl/passmeter/internal/middleware"
	"github.com/jwalitptl/passmeter/internal/repository/backend"
	"github.com/jwalitptl/passmeter/internal/router"
	historyService "github.com/jwalitptl/passmeter/internal/service/history"
	strengthService "github.com/jwalitptl/passmeter/internal/service/strength"
	"github.com/jwalitptl/passmeter/internal/worker"
	"github.com/jwalitptl/passmeter/pkg/logger"
	"github.com/jwalitptl/passmeter/pkg/metrics"
	"github.com/jwalitptl/passmeter/pkg/security"
	"github.com/jwalitptl/passmeter/pkg/strength"
	"github.com/jwalitptl/passmeter/pkg/suggest"
)

func main() {
	// A missing .env is fine; real deployments use the environment.
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Scoring engine
	lexicon, err := strength.LoadLexiconFile(cfg.Strength.LexiconFile)
	if err != nil {
		appLog.Fatal(err, "failed to load lexicon", "path", cfg.Strength.LexiconFile)
	}
	analyzer := strength.NewAnalyzer(
		strength.WithEstimator(strength.NewZxcvbnEstimator(cfg.Strength.UserInputs...)),
		strength.WithLexicon(lexicon),
	)
	generator := suggest.New(suggest.WithLexicon(lexicon))

	// History storage
	sealer, generated, err := security.NewSealerFromBase64(cfg.History.SealKey)
	if err != nil {
		appLog.Fatal(err, "invalid history seal key")
	}
	if generated {
		appLog.Warn("history.seal_key is empty; using an ephemeral key, saved history will not survive a restart")
	}

	repo, closeRepo, err := backend.Open(ctx, cfg)
	if err != nil {
		appLog.Fatal(err, "failed to open history store", "backend", cfg.History.Backend)
	}
	defer closeRepo()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(cfg.Metrics.Namespace, reg)

	// Services
	strengthSvc := strengthService.NewService(analyzer, generator, m, appLog.With("service", "strength"))
	historySvc := historyService.NewService(repo, sealer, analyzer, m, appLog.With("service", "history"))

	if !backend.Shared(cfg.History.Backend) {
		retention := worker.NewHistoryRetentionWorker(repo, cfg.History.Retention, cfg.History.PruneInterval, m, appLog)
		go retention.Start(ctx)
	}

	// HTTP
	routerCfg := router.RouterConfig{
		Mode:           cfg.Server.Mode,
		CORSConfig:     corsConfig(cfg.CORS),
		RequestTimeout: cfg.Server.RequestTimeout,
		Metrics:        m,
	}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
		routerCfg.RateBurst = cfg.RateLimit.Burst
	}
	if cfg.Metrics.Enabled {
		routerCfg.MetricsHandler = promHandler.New(reg).Handler()
	}

	r := router.NewRouter(
		strengthHandler.NewHandler(strengthSvc),
		historyHandler.NewHandler(historySvc),
		health.NewHandler(historySvc),
		routerCfg,
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLog.Info("server listening", "addr", srv.Addr, "history_backend", cfg.History.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal(err, "failed to start server")
		}
	}()

	<-ctx.Done()
	appLog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error(err, "server forced to shutdown")
	}

	appLog.Info("server exited properly")
}

func corsConfig(c config.CORSConfig) middleware.CORSConfig {
	out := middleware.DefaultCORSConfig()
	if len(c.AllowedOrigins) > 0 {
		out.AllowOrigins = c.AllowedOrigins
	}
	if len(c.AllowedMethods) > 0 {
		out.AllowMethods = c.AllowedMethods
	}
	if len(c.AllowedHeaders) > 0 {
		out.AllowHeaders = c.AllowedHeaders
	}
	return out
}
