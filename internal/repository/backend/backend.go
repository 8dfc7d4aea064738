// Package backend opens the history store named in configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/jwalitptl/passmeter/internal/config"
	"github.com/jwalitptl/passmeter/internal/repository"
	"github.com/jwalitptl/passmeter/internal/repository/memory"
	"github.com/jwalitptl/passmeter/internal/repository/postgres"
	redisRepo "github.com/jwalitptl/passmeter/internal/repository/redis"
)

const (
	Memory   = "memory"
	Redis    = "redis"
	Postgres = "postgres"
)

// Open builds the history repository for cfg.History.Backend. The returned
// func releases its connections.
func Open(ctx context.Context, cfg *config.Config) (repository.HistoryRepository, func() error, error) {
	h := cfg.History

	switch h.Backend {
	case Memory, "":
		repo := memory.NewHistoryRepository(h.MaxEntries, h.Retention, h.PruneInterval)
		return repo, func() error { return nil }, nil

	case Redis:
		client, err := redisRepo.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		repo := redisRepo.NewHistoryRepository(client, cfg.Redis.KeyPrefix, h.MaxEntries, h.Retention)
		return repo, client.Close, nil

	case Postgres:
		db, err := postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		repo := postgres.NewHistoryRepository(postgres.NewBaseRepository(db), h.MaxEntries)
		return repo, db.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown history backend %q", h.Backend)
}

// Shared reports whether the backend outlives a single API process, in
// which case retention runs in the standalone worker.
func Shared(name string) bool {
	return name == Redis || name == Postgres
}
