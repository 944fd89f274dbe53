package repositories

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/prd11/dream11-bot/dreambot/database/models"
	"github.com/uptrace/bun"
)

const (
	historyEntity     = "history"
	pointsEntity      = "points"
	matchResultEntity = "match_result"
)

// Actor is whoever issued a point change.
type Actor struct {
	Name string
	ID   snowflake.ID
}

// LedgerRepository owns the point ledger: the append-only history, the match
// results derived from wins and the per-contestant totals. Every mutation keeps
// all three in step inside one transaction.
type LedgerRepository interface {
	RecordWin(ctx context.Context, username string, matchNumber int, by Actor) (*models.HistoryEntry, error)
	Adjust(ctx context.Context, username string, delta int64, by Actor) (*models.HistoryEntry, error)
	UndoLast(ctx context.Context) (*models.HistoryEntry, error)
	Clear(ctx context.Context) error
	Totals(ctx context.Context) ([]*models.PointTotal, error)
	Total(ctx context.Context, username string) (*models.PointTotal, error)
	History(ctx context.Context, username string, limit int) ([]*models.HistoryEntry, error)
	CountWins(ctx context.Context, username string) (int, error)
	MatchResults(ctx context.Context) ([]*models.MatchResult, error)
}

type ledgerRepository struct {
	*BaseRepository
}

func NewLedgerRepository(db *bun.DB) LedgerRepository {
	return &ledgerRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *ledgerRepository) RecordWin(ctx context.Context, username string, matchNumber int, by Actor) (*models.HistoryEntry, error) {
	now := r.now()
	entry := &models.HistoryEntry{
		Username:    username,
		Points:      1,
		MatchNumber: matchNumber,
		Kind:        models.HistoryKindWin,
		UpdatedBy:   by.Name,
		UpdatedByID: int64(by.ID),
		CreatedAt:   now,
	}

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.MatchResult)(nil)).
			Where("mr.match_number = ?", matchNumber).
			Where("mr.winner = ?", username).
			Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return &ConflictError{Entity: matchResultEntity, Field: "match_number", Value: matchNumber}
		}

		if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
			return err
		}

		result := &models.MatchResult{
			HistoryID:   entry.ID,
			MatchNumber: matchNumber,
			Winner:      username,
			CreatedAt:   now,
		}
		if _, err := tx.NewInsert().Model(result).Exec(ctx); err != nil {
			return err
		}

		return r.addToTotal(ctx, tx, username, entry.Points)
	})
	if err != nil {
		return nil, r.HandleErrorWithID("record_win", matchResultEntity, fmt.Sprintf("%s/%d", username, matchNumber), err)
	}

	slog.Info("Win recorded",
		slog.String("type", "db"),
		slog.String("username", username),
		slog.Int("match_number", matchNumber),
		slog.String("updated_by", by.Name))
	return entry, nil
}

func (r *ledgerRepository) Adjust(ctx context.Context, username string, delta int64, by Actor) (*models.HistoryEntry, error) {
	entry := &models.HistoryEntry{
		Username:    username,
		Points:      delta,
		Kind:        models.HistoryKindAdjust,
		UpdatedBy:   by.Name,
		UpdatedByID: int64(by.ID),
		CreatedAt:   r.now(),
	}

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
			return err
		}
		return r.addToTotal(ctx, tx, username, delta)
	})
	if err != nil {
		return nil, r.HandleErrorWithID("adjust", pointsEntity, username, err)
	}
	return entry, nil
}

// UndoLast removes the newest history entry and everything derived from it.
func (r *ledgerRepository) UndoLast(ctx context.Context) (*models.HistoryEntry, error) {
	entry := new(models.HistoryEntry)

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(entry).
			OrderExpr("h.created_at DESC, h.id DESC").
			Limit(1).
			Scan(ctx)
		if err != nil {
			return err
		}

		if err := r.addToTotal(ctx, tx, entry.Username, -entry.Points); err != nil {
			return err
		}

		if _, err := tx.NewDelete().
			Model((*models.MatchResult)(nil)).
			Where("history_id = ?", entry.ID).
			Exec(ctx); err != nil {
			return err
		}

		_, err = tx.NewDelete().
			Model((*models.HistoryEntry)(nil)).
			Where("id = ?", entry.ID).
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, r.HandleErrorWithID("undo", historyEntity, "latest", err)
	}

	slog.Info("Point change undone",
		slog.String("type", "db"),
		slog.String("username", entry.Username),
		slog.Int64("points", entry.Points),
		slog.Int64("history_id", entry.ID))
	return entry, nil
}

func (r *ledgerRepository) Clear(ctx context.Context) error {
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range []any{
			(*models.MatchResult)(nil),
			(*models.HistoryEntry)(nil),
			(*models.PointTotal)(nil),
		} {
			if _, err := tx.NewDelete().Model(model).Where("1 = 1").Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	return r.HandleErrorWithID("clear", pointsEntity, "all", err)
}

// Totals returns every contestant ordered by points, then name.
func (r *ledgerRepository) Totals(ctx context.Context) ([]*models.PointTotal, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var totals []*models.PointTotal
	err := r.db.NewSelect().
		Model(&totals).
		OrderExpr("p.points DESC, p.username ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("totals", pointsEntity, "all", err)
	}
	return totals, nil
}

func (r *ledgerRepository) Total(ctx context.Context, username string) (*models.PointTotal, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	total := new(models.PointTotal)
	err := r.db.NewSelect().
		Model(total).
		Where("p.username = ?", username).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("total", pointsEntity, username, err)
	}
	return total, nil
}

// History returns the newest entries for username, newest first.
func (r *ledgerRepository) History(ctx context.Context, username string, limit int) ([]*models.HistoryEntry, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var entries []*models.HistoryEntry
	q := r.db.NewSelect().
		Model(&entries).
		Where("h.username = ?", username).
		OrderExpr("h.created_at DESC, h.id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, r.HandleErrorWithID("history", historyEntity, username, err)
	}
	return entries, nil
}

func (r *ledgerRepository) CountWins(ctx context.Context, username string) (int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	n, err := r.db.NewSelect().
		Model((*models.MatchResult)(nil)).
		Where("mr.winner = ?", username).
		Count(ctx)
	if err != nil {
		return 0, r.HandleErrorWithID("count_wins", matchResultEntity, username, err)
	}
	return n, nil
}

func (r *ledgerRepository) MatchResults(ctx context.Context) ([]*models.MatchResult, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var results []*models.MatchResult
	err := r.db.NewSelect().
		Model(&results).
		OrderExpr("mr.match_number ASC, mr.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("match_results", matchResultEntity, "all", err)
	}
	return results, nil
}

// addToTotal applies delta to username's running total, creating the row on
// first use.
func (r *ledgerRepository) addToTotal(ctx context.Context, tx bun.Tx, username string, delta int64) error {
	now := r.now()
	res, err := tx.NewUpdate().
		Model((*models.PointTotal)(nil)).
		Set("points = points + ?", delta).
		Set("updated_at = ?", now).
		Where("username = ?", username).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	_, err = tx.NewInsert().
		Model(&models.PointTotal{
			Username:  username,
			Points:    delta,
			CreatedAt: now,
			UpdatedAt: now,
		}).
		Exec(ctx)
	return err
}
