package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/passmeter/internal/model"
	"github.com/jwalitptl/passmeter/internal/repository"
)

// HistoryRepository keeps history in process memory. Each client's list
// expires retention after its last write.
type HistoryRepository struct {
	mu         sync.Mutex
	cache      *cache.Cache
	maxEntries int
}

var _ repository.HistoryRepository = (*HistoryRepository)(nil)

func NewHistoryRepository(maxEntries int, retention, cleanupInterval time.Duration) *HistoryRepository {
	if retention <= 0 {
		retention = cache.NoExpiration
	}
	maxEntries = max(maxEntries, 1)
	return &HistoryRepository{
		cache:      cache.New(retention, cleanupInterval),
		maxEntries: maxEntries,
	}
}

func (r *HistoryRepository) Add(_ context.Context, entry *model.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entry.ClientID.String()
	existing := r.entries(key)

	n := min(len(existing)+1, r.maxEntries)
	list := make([]*model.HistoryEntry, 0, n)
	e := *entry
	list = append(list, &e)
	list = append(list, existing[:n-1]...)

	r.cache.Set(key, list, cache.DefaultExpiration)
	return nil
}

func (r *HistoryRepository) List(_ context.Context, clientID uuid.UUID, limit int) ([]*model.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.entries(clientID.String())
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}

	out := make([]*model.HistoryEntry, len(list))
	for i, e := range list {
		c := *e
		out[i] = &c
	}
	return out, nil
}

func (r *HistoryRepository) Clear(_ context.Context, clientID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Delete(clientID.String())
	return nil
}

// DeleteBefore drops old entries from every list. Surviving lists keep
// their current expiration.
func (r *HistoryRepository) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for key, item := range r.cache.Items() {
		list, ok := item.Object.([]*model.HistoryEntry)
		if !ok {
			continue
		}

		kept := make([]*model.HistoryEntry, 0, len(list))
		for _, e := range list {
			if e.CreatedAt.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == len(list) {
			continue
		}
		if len(kept) == 0 {
			r.cache.Delete(key)
			continue
		}

		ttl := cache.NoExpiration
		if item.Expiration > 0 {
			ttl = time.Until(time.Unix(0, item.Expiration))
			if ttl <= 0 {
				continue
			}
		}
		r.cache.Set(key, kept, ttl)
	}
	return removed, nil
}

func (r *HistoryRepository) Ping(context.Context) error {
	return nil
}

func (r *HistoryRepository) entries(key string) []*model.HistoryEntry {
	v, ok := r.cache.Get(key)
	if !ok {
		return nil
	}
	list, _ := v.([]*model.HistoryEntry)
	return list
}
