package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/passmeter/pkg/logger"
	"github.com/jwalitptl/passmeter/pkg/metrics"
)

type recordingPruner struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (p *recordingPruner) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cutoffs = append(p.cutoffs, cutoff)
	return 3, p.err
}

func (p *recordingPruner) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cutoffs)
}

func newMetrics() *metrics.Metrics {
	return metrics.New("test", prometheus.NewRegistry())
}

func TestPruneUsesRetentionCutoff(t *testing.T) {
	p := &recordingPruner{}
	m := newMetrics()
	w := NewHistoryRetentionWorker(p, 24*time.Hour, time.Hour, m, logger.Nop())
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	require.NoError(t, w.prune(context.Background()))
	require.Len(t, p.cutoffs, 1)
	assert.Equal(t, now.Add(-24*time.Hour), p.cutoffs[0])
	assert.Equal(t, 3.0, testutil.ToFloat64(m.HistoryPruned))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryOperations.WithLabelValues("prune", "success")))
}

func TestPruneWrapsErrors(t *testing.T) {
	cause := errors.New("redis down")
	m := newMetrics()
	w := NewHistoryRetentionWorker(&recordingPruner{err: cause}, time.Hour, time.Hour, m, logger.Nop())

	assert.ErrorIs(t, w.prune(context.Background()), cause)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HistoryPruned))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryOperations.WithLabelValues("prune", "error")))
}

func TestStartKeepsRunningAfterFailure(t *testing.T) {
	p := &recordingPruner{err: errors.New("redis down")}
	w := NewHistoryRetentionWorker(p, time.Hour, 5*time.Millisecond, newMetrics(), logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return p.calls() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
