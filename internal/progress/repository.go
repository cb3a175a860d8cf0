package progress

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Tanmay1202/EnviRon/internal/metrics"
	"github.com/Tanmay1202/EnviRon/pkg/pagination"
	"github.com/Tanmay1202/EnviRon/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a progress repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "progress"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

// Record inserts the ledger row and applies the point award and badge grant
// in one transaction. Points use a database-side increment and the badge a
// guarded append, so concurrent classifications by the same user cannot lose
// updates or double-award the badge.
func (r *repo) Record(ctx context.Context, userID, category string) (*RecordResult, error) {
	outcome, points, weight := award(category)

	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*RecordResult, error) {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO classifications (user_id, category, result, weight)
			 VALUES ($1, $2, $3, $4)`,
			userID, category, outcome, weight,
		); err != nil {
			return nil, fmt.Errorf("insert classification event: %w", err)
		}

		var total int
		if err := tx.QueryRowContext(ctx,
			`UPDATE users
			 SET points = points + $2, updated_at = NOW()
			 WHERE id = $1
			 RETURNING points`,
			userID, points,
		).Scan(&total); err != nil {
			return nil, fmt.Errorf("update points: %w", err)
		}

		rec := &RecordResult{Points: total}

		if outcome == OutcomeRecyclable {
			awarded, err := repository.ExecCount(ctx, tx,
				`UPDATE users
				 SET badges = badges || to_jsonb($2::text)
				 WHERE id = $1 AND NOT jsonb_exists(badges, $2)`,
				userID, BadgeEcoWarrior,
			)
			if err != nil {
				return nil, fmt.Errorf("award badge: %w", err)
			}
			if awarded == 1 {
				badge := BadgeEcoWarrior
				rec.NewBadge = &badge
			}
		}

		return rec, nil
	})

	if err != nil {
		if mapped := repository.MapError(err, ErrUserNotFound, ErrPersistence); mapped == ErrUserNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if result.NewBadge != nil {
		metrics.BadgesAwardedTotal.WithLabelValues(*result.NewBadge).Inc()
	}

	r.logger.Info("classification recorded",
		"user_id", userID,
		"category", category,
		"result", outcome,
		"points", result.Points,
		"new_badge", result.NewBadge != nil,
	)
	return result, nil
}

func (r *repo) Find(ctx context.Context, userID string) (*Progress, error) {
	p, err := repository.QueryOne(ctx, r.db,
		`SELECT id, points, badges FROM users WHERE id = $1`,
		[]any{userID}, scanProgress,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrUserNotFound, ErrPersistence)
	}
	return &p, nil
}

func (r *repo) History(
	ctx context.Context,
	userID string,
	page pagination.PageRequest,
) (*pagination.PageResult[Event], error) {
	page.Normalize(r.pagination)

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM classifications WHERE user_id = $1`,
		userID,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("count classification events: %w", err)
	}

	items, err := repository.QueryMany(ctx, r.db,
		`SELECT id, user_id, category, result, weight, created_at
		 FROM classifications
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		[]any{userID, page.PageSize, page.Offset()}, scanEvent,
	)
	if err != nil {
		return nil, fmt.Errorf("query classification events: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func scanProgress(s repository.Scanner) (Progress, error) {
	var p Progress
	var badgesRaw []byte

	if err := s.Scan(&p.UserID, &p.Points, &badgesRaw); err != nil {
		return p, err
	}

	if len(badgesRaw) > 0 {
		if err := json.Unmarshal(badgesRaw, &p.Badges); err != nil {
			return p, fmt.Errorf("unmarshal badges: %w", err)
		}
	}

	if p.Badges == nil {
		p.Badges = []string{}
	}

	return p, nil
}

func scanEvent(s repository.Scanner) (Event, error) {
	var e Event
	err := s.Scan(&e.ID, &e.UserID, &e.Category, &e.Result, &e.Weight, &e.CreatedAt)
	return e, err
}
