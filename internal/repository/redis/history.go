package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwalitptl/passmeter/internal/config"
	"github.com/jwalitptl/passmeter/internal/model"
	"github.com/jwalitptl/passmeter/internal/repository"
)

const scanBatch = 100

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// HistoryRepository keeps one list per client, newest entry at the head.
type HistoryRepository struct {
	client     redis.UniversalClient
	prefix     string
	maxEntries int
	retention  time.Duration
}

var _ repository.HistoryRepository = (*HistoryRepository)(nil)

func NewHistoryRepository(client redis.UniversalClient, prefix string, maxEntries int, retention time.Duration) *HistoryRepository {
	return &HistoryRepository{
		client:     client,
		prefix:     prefix,
		maxEntries: max(maxEntries, 1),
		retention:  retention,
	}
}

func (r *HistoryRepository) key(clientID uuid.UUID) string {
	return r.prefix + clientID.String()
}

func (r *HistoryRepository) Add(ctx context.Context, entry *model.HistoryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	key := r.key(entry.ClientID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, payload)
		pipe.LTrim(ctx, key, 0, int64(r.maxEntries-1))
		if r.retention > 0 {
			pipe.Expire(ctx, key, r.retention)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add history entry: %w", err)
	}
	return nil
}

func (r *HistoryRepository) List(ctx context.Context, clientID uuid.UUID, limit int) ([]*model.HistoryEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	raw, err := r.client.LRange(ctx, r.key(clientID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return decode(raw)
}

func (r *HistoryRepository) Clear(ctx context.Context, clientID uuid.UUID) error {
	if err := r.client.Del(ctx, r.key(clientID)).Err(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// DeleteBefore trims every client list past its first entry older than
// cutoff. Lists are newest-first, so the tail is always the oldest part.
func (r *HistoryRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var (
		removed int64
		cursor  uint64
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", scanBatch).Result()
		if err != nil {
			return removed, fmt.Errorf("failed to scan history keys: %w", err)
		}

		for _, key := range keys {
			n, err := r.trimKey(ctx, key, cutoff)
			if err != nil {
				return removed, err
			}
			removed += n
		}

		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}

func (r *HistoryRepository) trimKey(ctx context.Context, key string, cutoff time.Time) (int64, error) {
	var removed int64
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return err
		}
		entries, err := decode(raw)
		if err != nil {
			return err
		}

		keep := len(entries)
		for i, e := range entries {
			if e.CreatedAt.Before(cutoff) {
				keep = i
				break
			}
		}
		if keep == len(entries) {
			removed = 0
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if keep == 0 {
				pipe.Del(ctx, key)
			} else {
				pipe.LTrim(ctx, key, 0, int64(keep-1))
			}
			return nil
		})
		removed = int64(len(entries) - keep)
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		// Written to concurrently; the next pass picks it up.
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to prune %s: %w", key, err)
	}
	return removed, nil
}

func (r *HistoryRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func decode(raw []string) ([]*model.HistoryEntry, error) {
	entries := make([]*model.HistoryEntry, 0, len(raw))
	for _, s := range raw {
		var e model.HistoryEntry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("failed to decode history entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, nil
}
