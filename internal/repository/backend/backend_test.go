package backend

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/passmeter/internal/config"
	"github.com/jwalitptl/passmeter/internal/model"
	"github.com/jwalitptl/passmeter/internal/repository/memory"
	redisRepo "github.com/jwalitptl/passmeter/internal/repository/redis"
)

func baseConfig(backend string) *config.Config {
	return &config.Config{
		History: config.HistoryConfig{
			Backend:       backend,
			MaxEntries:    5,
			Retention:     time.Hour,
			PruneInterval: time.Minute,
		},
		Redis: config.RedisConfig{KeyPrefix: "t:"},
	}
}

func TestOpenMemory(t *testing.T) {
	repo, closeFn, err := Open(context.Background(), baseConfig(Memory))
	require.NoError(t, err)
	assert.IsType(t, &memory.HistoryRepository{}, repo)
	assert.NoError(t, closeFn())
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baseConfig(Redis)
	cfg.Redis.Addr = mr.Addr()

	repo, closeFn, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &redisRepo.HistoryRepository{}, repo)

	client := uuid.New()
	require.NoError(t, repo.Add(context.Background(), &model.HistoryEntry{ID: uuid.New(), ClientID: client, CreatedAt: time.Now()}))
	assert.True(t, mr.Exists("t:"+client.String()))
}

func TestOpenRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baseConfig(Redis)
	cfg.Redis.Addr = mr.Addr()
	mr.Close()

	_, _, err := Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpenUnknown(t *testing.T) {
	_, _, err := Open(context.Background(), baseConfig("mongo"))
	assert.ErrorContains(t, err, "mongo")
}

func TestShared(t *testing.T) {
	assert.False(t, Shared(Memory))
	assert.True(t, Shared(Redis))
	assert.True(t, Shared(Postgres))
}
