package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/passmeter/internal/model"
)

// ErrInvalidClientID is returned when a client identifier is not a UUID.
var ErrInvalidClientID = errors.New("invalid client id")

// HistoryRepository stores saved passwords per client, newest first.
type HistoryRepository interface {
	Add(ctx context.Context, entry *model.HistoryEntry) error
	List(ctx context.Context, clientID uuid.UUID, limit int) ([]*model.HistoryEntry, error)
	Clear(ctx context.Context, clientID uuid.UUID) error
	// DeleteBefore removes entries created before cutoff across all clients
	// and returns how many were removed.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
	Ping(ctx context.Context) error
}

// ParseClientID validates a caller-supplied client identifier.
func ParseClientID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidClientID, raw)
	}
	return id, nil
}

// Limit clamps a requested list size to [1, max]. Zero or negative means max.
func Limit(requested, max int) int {
	if requested <= 0 || requested > max {
		return max
	}
	return requested
}
