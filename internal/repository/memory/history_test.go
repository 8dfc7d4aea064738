package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/passmeter/internal/model"
)

func entry(client uuid.UUID, strength int, at time.Time) *model.HistoryEntry {
	return &model.HistoryEntry{
		ID:        uuid.New(),
		ClientID:  client,
		Sealed:    "sealed",
		Strength:  strength,
		CreatedAt: at,
	}
}

func TestAddListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(10, time.Hour, time.Minute)
	client := uuid.New()
	now := time.Now()

	for i := range 3 {
		require.NoError(t, repo.Add(ctx, entry(client, i*10, now.Add(time.Duration(i)*time.Second))))
	}

	list, err := repo.List(ctx, client, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 20, list[0].Strength)
	assert.Equal(t, 10, list[1].Strength)
	assert.Equal(t, 0, list[2].Strength)

	limited, err := repo.List(ctx, client, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestAddCapsAtMaxEntries(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(2, time.Hour, time.Minute)
	client := uuid.New()

	for i := range 5 {
		require.NoError(t, repo.Add(ctx, entry(client, i, time.Now())))
	}

	list, err := repo.List(ctx, client, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 4, list[0].Strength)
	assert.Equal(t, 3, list[1].Strength)
}

func TestClientsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(10, time.Hour, time.Minute)
	a, b := uuid.New(), uuid.New()

	require.NoError(t, repo.Add(ctx, entry(a, 1, time.Now())))
	require.NoError(t, repo.Add(ctx, entry(b, 2, time.Now())))
	require.NoError(t, repo.Clear(ctx, a))

	listA, err := repo.List(ctx, a, 0)
	require.NoError(t, err)
	assert.Empty(t, listA)

	listB, err := repo.List(ctx, b, 0)
	require.NoError(t, err)
	assert.Len(t, listB, 1)
}

func TestReturnedEntriesAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(10, time.Hour, time.Minute)
	client := uuid.New()
	e := entry(client, 50, time.Now())
	require.NoError(t, repo.Add(ctx, e))

	e.Strength = 0
	list, _ := repo.List(ctx, client, 0)
	list[0].Strength = 1

	again, _ := repo.List(ctx, client, 0)
	assert.Equal(t, 50, again[0].Strength)
}

func TestDeleteBefore(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(10, time.Hour, time.Minute)
	a, b := uuid.New(), uuid.New()
	now := time.Now()

	require.NoError(t, repo.Add(ctx, entry(a, 1, now.Add(-3*time.Hour))))
	require.NoError(t, repo.Add(ctx, entry(a, 2, now)))
	require.NoError(t, repo.Add(ctx, entry(b, 3, now.Add(-2*time.Hour))))

	removed, err := repo.DeleteBefore(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	listA, _ := repo.List(ctx, a, 0)
	require.Len(t, listA, 1)
	assert.Equal(t, 2, listA[0].Strength)

	listB, _ := repo.List(ctx, b, 0)
	assert.Empty(t, listB)
}

func TestConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(1000, time.Hour, time.Minute)
	client := uuid.New()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Add(ctx, entry(client, i, time.Now()))
		}()
	}
	wg.Wait()

	list, err := repo.List(ctx, client, 0)
	require.NoError(t, err)
	assert.Len(t, list, 50)
}

func TestPing(t *testing.T) {
	assert.NoError(t, NewHistoryRepository(1, 0, time.Minute).Ping(context.Background()))
}
