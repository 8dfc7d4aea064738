package history

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/passmeter/internal/model"
	"github.com/jwalitptl/passmeter/internal/repository"
	"github.com/jwalitptl/passmeter/internal/repository/memory"
	"github.com/jwalitptl/passmeter/pkg/errors"
	"github.com/jwalitptl/passmeter/pkg/logger"
	"github.com/jwalitptl/passmeter/pkg/metrics"
	"github.com/jwalitptl/passmeter/pkg/security"
	"github.com/jwalitptl/passmeter/pkg/strength"
)

var errDown = stderrors.New("connection refused")

type failingRepo struct{}

func (failingRepo) Add(context.Context, *model.HistoryEntry) error { return errDown }
func (failingRepo) List(context.Context, uuid.UUID, int) ([]*model.HistoryEntry, error) {
	return nil, errDown
}
func (failingRepo) Clear(context.Context, uuid.UUID) error                { return errDown }
func (failingRepo) DeleteBefore(context.Context, time.Time) (int64, error) { return 0, errDown }
func (failingRepo) Ping(context.Context) error                            { return errDown }

func newSealer(t *testing.T) *security.Sealer {
	t.Helper()
	key, err := security.GenerateKey()
	require.NoError(t, err)
	s, err := security.NewSealer(key)
	require.NoError(t, err)
	return s
}

func newService(t *testing.T, repo repository.HistoryRepository) (*Service, *metrics.Metrics) {
	t.Helper()
	est := strength.EstimatorFunc(func(string) strength.Estimate { return strength.Estimate{Score: 2} })
	m := metrics.New("test", prometheus.NewRegistry())
	svc := NewService(repo, newSealer(t), strength.NewAnalyzer(strength.WithEstimator(est)), m, logger.Nop())
	return svc, m
}

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t, memory.NewHistoryRepository(50, time.Hour, time.Minute))
	client := uuid.New()

	first, err := svc.Record(ctx, client, "correct-horse", "general")
	require.NoError(t, err)
	assert.Empty(t, first.Password)
	assert.Equal(t, "cor•••••••rse", first.Masked)
	assert.Equal(t, strength.Label(first.Strength), first.Label)

	_, err = svc.Record(ctx, client, "second-password!", "general")
	require.NoError(t, err)

	items, err := svc.List(ctx, client, 0, false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "sec••••••••••rd!", items[0].Masked)
	assert.Empty(t, items[0].Password)
	assert.Equal(t, first.ID, items[1].ID)

	revealed, err := svc.List(ctx, client, 1, true)
	require.NoError(t, err)
	require.Len(t, revealed, 1)
	assert.Equal(t, "second-password!", revealed[0].Password)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HistoryOperations.WithLabelValues("add", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HistoryOperations.WithLabelValues("list", "success")))
}

func TestRecordStoresSealedPassword(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewHistoryRepository(50, time.Hour, time.Minute)
	svc, _ := newService(t, repo)
	client := uuid.New()

	_, err := svc.Record(ctx, client, "plaintext-secret", "general")
	require.NoError(t, err)

	stored, err := repo.List(ctx, client, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.NotContains(t, stored[0].Sealed, "plaintext-secret")
	assert.NotEmpty(t, stored[0].Sealed)
}

func TestRecordRejectsEmptyPassword(t *testing.T) {
	svc, _ := newService(t, memory.NewHistoryRepository(50, time.Hour, time.Minute))

	_, err := svc.Record(context.Background(), uuid.New(), "", "general")

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, errors.As(err).StatusCode())
}

func TestEntriesAreBoundToClient(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewHistoryRepository(50, time.Hour, time.Minute)
	svc, _ := newService(t, repo)
	owner, other := uuid.New(), uuid.New()

	_, err := svc.Record(ctx, owner, "correct-horse", "general")
	require.NoError(t, err)

	stored, _ := repo.List(ctx, owner, 0)
	moved := *stored[0]
	moved.ClientID = other
	require.NoError(t, repo.Add(ctx, &moved))

	items, err := svc.List(ctx, other, 0, true)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, memory.NewHistoryRepository(50, time.Hour, time.Minute))
	client := uuid.New()

	_, err := svc.Record(ctx, client, "correct-horse", "general")
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, client))

	items, err := svc.List(ctx, client, 0, false)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRepositoryFailuresAreUnavailable(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t, failingRepo{})
	client := uuid.New()

	_, err := svc.Record(ctx, client, "correct-horse", "general")
	assert.Equal(t, http.StatusServiceUnavailable, errors.As(err).StatusCode())
	assert.ErrorIs(t, err, errDown)

	_, err = svc.List(ctx, client, 0, false)
	assert.Equal(t, http.StatusServiceUnavailable, errors.As(err).StatusCode())

	err = svc.Clear(ctx, client)
	assert.Equal(t, http.StatusServiceUnavailable, errors.As(err).StatusCode())

	assert.ErrorIs(t, svc.Ping(ctx), errDown)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryOperations.WithLabelValues("add", "error")))
}

func TestMask(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "•••"},
		{"abcdef", "••••••"},
		{"abcdefg", "abc•efg"},
		{"abcdefghijklmnopqrstuvwxyz", "abc••••••••••xyz"},
		{"ñandú-pass", "ñan••••ass"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Mask(tt.in), tt.in)
	}
}
