package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/passmeter/internal/model"
	"github.com/jwalitptl/passmeter/internal/repository"
)

type historyRepository struct {
	BaseRepository
	maxEntries int
}

func NewHistoryRepository(base BaseRepository, maxEntries int) repository.HistoryRepository {
	return &historyRepository{BaseRepository: base, maxEntries: max(maxEntries, 1)}
}

func (r *historyRepository) Add(ctx context.Context, entry *model.HistoryEntry) error {
	insert := `
        INSERT INTO password_history (id, client_id, sealed_password, strength, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	trim := `
        DELETE FROM password_history
        WHERE client_id = $1 AND id NOT IN (
            SELECT id FROM password_history
            WHERE client_id = $1
            ORDER BY created_at DESC
            LIMIT $2
        )
    `

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, insert,
			entry.ID,
			entry.ClientID,
			entry.Sealed,
			entry.Strength,
			entry.CreatedAt,
		); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, trim, entry.ClientID, r.maxEntries)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to add history entry: %w", err)
	}
	return nil
}

func (r *historyRepository) List(ctx context.Context, clientID uuid.UUID, limit int) ([]*model.HistoryEntry, error) {
	query := `
        SELECT id, client_id, sealed_password, strength, created_at
        FROM password_history
        WHERE client_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `

	var entries []*model.HistoryEntry
	if err := r.GetDB().SelectContext(ctx, &entries, query, clientID, repository.Limit(limit, r.maxEntries)); err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}

func (r *historyRepository) Clear(ctx context.Context, clientID uuid.UUID) error {
	if _, err := r.GetDB().ExecContext(ctx, `DELETE FROM password_history WHERE client_id = $1`, clientID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (r *historyRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.GetDB().ExecContext(ctx, `DELETE FROM password_history WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	return result.RowsAffected()
}

func (r *historyRepository) Ping(ctx context.Context) error {
	return r.GetDB().PingContext(ctx)
}
