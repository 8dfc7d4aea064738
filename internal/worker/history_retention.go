package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/passmeter/pkg/logger"
	"github.com/jwalitptl/passmeter/pkg/metrics"
)

// Pruner removes history entries created before a cutoff.
type Pruner interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type HistoryRetentionWorker struct {
	repo          Pruner
	retention     time.Duration
	pruneInterval time.Duration
	metrics       *metrics.Metrics
	logger        *logger.Logger
	now           func() time.Time
}

func NewHistoryRetentionWorker(repo Pruner, retention, pruneInterval time.Duration, m *metrics.Metrics, log *logger.Logger) *HistoryRetentionWorker {
	return &HistoryRetentionWorker{
		repo:          repo,
		retention:     retention,
		pruneInterval: pruneInterval,
		metrics:       m,
		logger:        log.With("worker", "history_retention"),
		now:           time.Now,
	}
}

// Start prunes on every tick until ctx is cancelled. A failed pass is
// logged and retried on the next tick.
func (w *HistoryRetentionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pruneInterval)
	defer ticker.Stop()

	w.logger.Info("worker started", "retention", w.retention.String(), "interval", w.pruneInterval.String())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker shutting down")
			return
		case <-ticker.C:
			if err := w.prune(ctx); err != nil {
				w.logger.Error(err, "history retention pass failed")
			}
		}
	}
}

func (w *HistoryRetentionWorker) prune(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { w.metrics.ObserveHistory("prune", start, err) }()

	cutoff := w.now().Add(-w.retention)

	rows, err := w.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	w.metrics.HistoryPruned.Add(float64(rows))

	w.logger.Info("pruned history", "removed", rows, "cutoff", cutoff)
	return nil
}
