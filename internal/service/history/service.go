package history

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/passmeter/internal/model"
	"github.com/jwalitptl/passmeter/internal/repository"
	"github.com/jwalitptl/passmeter/pkg/errors"
	"github.com/jwalitptl/passmeter/pkg/logger"
	"github.com/jwalitptl/passmeter/pkg/metrics"
	"github.com/jwalitptl/passmeter/pkg/security"
	"github.com/jwalitptl/passmeter/pkg/strength"
)

const maskRune = "•"

type HistoryServicer interface {
	Record(ctx context.Context, clientID uuid.UUID, password, accountType string) (*model.HistoryItem, error)
	List(ctx context.Context, clientID uuid.UUID, limit int, reveal bool) ([]*model.HistoryItem, error)
	Clear(ctx context.Context, clientID uuid.UUID) error
	Ping(ctx context.Context) error
}

type Service struct {
	repo     repository.HistoryRepository
	sealer   *security.Sealer
	analyzer *strength.Analyzer
	metrics  *metrics.Metrics
	logger   *logger.Logger
	now      func() time.Time
}

func NewService(
	repo repository.HistoryRepository,
	sealer *security.Sealer,
	analyzer *strength.Analyzer,
	m *metrics.Metrics,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:     repo,
		sealer:   sealer,
		analyzer: analyzer,
		metrics:  m,
		logger:   log,
		now:      time.Now,
	}
}

// Record scores password, seals it and stores it as the client's newest entry.
func (s *Service) Record(ctx context.Context, clientID uuid.UUID, password, accountType string) (_ *model.HistoryItem, err error) {
	if password == "" {
		return nil, errors.BadRequest("password is required", nil)
	}

	start := time.Now()
	defer func() { s.metrics.ObserveHistory("add", start, err) }()

	sealed, err := s.sealer.SealString(password, clientID.String())
	if err != nil {
		return nil, errors.Internal(err)
	}

	entry := &model.HistoryEntry{
		ID:        uuid.New(),
		ClientID:  clientID,
		Sealed:    sealed,
		Strength:  s.analyzer.Analyze(password, accountType).Score,
		CreatedAt: s.now().UTC(),
	}
	if err = s.repo.Add(ctx, entry); err != nil {
		return nil, errors.Unavailable("history store unavailable", err)
	}

	return toItem(entry, password, false), nil
}

// List returns the client's entries newest first. Passwords are only
// included when reveal is set; the masked form is always present. Entries
// that no longer open under the current key are skipped.
func (s *Service) List(ctx context.Context, clientID uuid.UUID, limit int, reveal bool) (_ []*model.HistoryItem, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveHistory("list", start, err) }()

	entries, err := s.repo.List(ctx, clientID, limit)
	if err != nil {
		return nil, errors.Unavailable("history store unavailable", err)
	}

	items := make([]*model.HistoryItem, 0, len(entries))
	for _, e := range entries {
		password, openErr := s.sealer.OpenString(e.Sealed, clientID.String())
		if openErr != nil {
			s.logger.Warn("skipping unreadable history entry", "entry_id", e.ID.String())
			continue
		}
		items = append(items, toItem(e, password, reveal))
	}
	return items, nil
}

func (s *Service) Clear(ctx context.Context, clientID uuid.UUID) (err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveHistory("clear", start, err) }()

	if err = s.repo.Clear(ctx, clientID); err != nil {
		return errors.Unavailable("history store unavailable", err)
	}
	return nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// Mask keeps the first and last three characters and replaces the middle
// with at most ten bullets. Passwords of six characters or fewer are fully
// masked.
func Mask(password string) string {
	r := []rune(password)
	if len(r) <= 6 {
		return strings.Repeat(maskRune, len(r))
	}
	return string(r[:3]) + strings.Repeat(maskRune, min(len(r)-6, 10)) + string(r[len(r)-3:])
}

func toItem(e *model.HistoryEntry, password string, reveal bool) *model.HistoryItem {
	item := &model.HistoryItem{
		ID:        e.ID,
		Masked:    Mask(password),
		Strength:  e.Strength,
		Label:     strength.Label(e.Strength),
		Timestamp: e.CreatedAt,
	}
	if reveal {
		item.Password = password
	}
	return item
}
