// Package ledger is the points bookkeeping behind the bot's commands: wins,
// manual adjustments, undo, standings and per-contestant stats.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prd11/dream11-bot/dreambot/config"
	"github.com/prd11/dream11-bot/dreambot/database/models"
	"github.com/prd11/dream11-bot/dreambot/database/repositories"
	"github.com/sahilm/fuzzy"
)

type Limits struct {
	MaxPointsPerUpdate int64
	MaxMatchNumber     int
}

// Standing is one leaderboard row. Equal totals share a rank.
type Standing struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Points   int64  `json:"points"`
}

type Stats struct {
	Username string
	Points   int64
	Wins     int
	Rank     int
	Recent   []*models.HistoryEntry
}

// Snapshot is the full season state taken before a clear.
type Snapshot struct {
	TakenAt   time.Time             `json:"taken_at"`
	Standings []Standing            `json:"standings"`
	Results   []*models.MatchResult `json:"results"`
}

// Archiver stores a snapshot somewhere durable and returns where it went.
type Archiver interface {
	Archive(ctx context.Context, snap *Snapshot) (string, error)
}

type Service struct {
	repo     repositories.LedgerRepository
	limits   Limits
	archiver Archiver
	now      func() time.Time
}

func NewService(repo repositories.LedgerRepository, limits Limits) *Service {
	return &Service{
		repo:   repo,
		limits: limits,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SetArchiver enables archiving on Clear. A nil archiver disables it.
func (s *Service) SetArchiver(a Archiver) {
	s.archiver = a
}

func (s *Service) Limits() Limits {
	return s.limits
}

// ValidateMatch checks n against the configured match range.
func (s *Service) ValidateMatch(n int) error {
	return s.validateMatch(n)
}

func (s *Service) RecordWin(ctx context.Context, rawUsername string, matchNumber int, by repositories.Actor) (*models.HistoryEntry, error) {
	username, err := NormalizeUsername(rawUsername)
	if err != nil {
		return nil, err
	}
	if err := s.validateMatch(matchNumber); err != nil {
		return nil, err
	}

	entry, err := s.repo.RecordWin(ctx, username, matchNumber, by)
	if err != nil {
		return nil, fmt.Errorf("record win for %s in match %d: %w", username, matchNumber, err)
	}
	return entry, nil
}

func (s *Service) AdjustPoints(ctx context.Context, rawUsername string, delta int64, by repositories.Actor) (*models.HistoryEntry, error) {
	username, err := NormalizeUsername(rawUsername)
	if err != nil {
		return nil, err
	}
	if err := s.validateDelta(delta); err != nil {
		return nil, err
	}

	entry, err := s.repo.Adjust(ctx, username, delta, by)
	if err != nil {
		return nil, fmt.Errorf("adjust %s by %d: %w", username, delta, err)
	}
	return entry, nil
}

// Undo reverts the newest change and returns it.
func (s *Service) Undo(ctx context.Context) (*models.HistoryEntry, error) {
	entry, err := s.repo.UndoLast(ctx)
	if err != nil {
		return nil, fmt.Errorf("undo last change: %w", err)
	}
	return entry, nil
}

// Clear wipes the season. When an archiver is set the snapshot must be stored
// first; a failed upload leaves the data untouched.
func (s *Service) Clear(ctx context.Context) (string, error) {
	var location string
	if s.archiver != nil {
		snap, err := s.Snapshot(ctx)
		if err != nil {
			return "", err
		}
		location, err = s.archiver.Archive(ctx, snap)
		if err != nil {
			return "", fmt.Errorf("archive before clear: %w", err)
		}
		slog.Info("Season archived",
			slog.String("type", "sys"),
			slog.String("location", location),
			slog.Int("standings", len(snap.Standings)))
	}

	if err := s.repo.Clear(ctx); err != nil {
		return "", fmt.Errorf("clear points: %w", err)
	}
	return location, nil
}

func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	standings, err := s.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.MatchLog(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		TakenAt:   s.now(),
		Standings: standings,
		Results:   results,
	}, nil
}

// Leaderboard ranks contestants by points, then name. Ties share the rank of
// the first contestant with that total.
func (s *Service) Leaderboard(ctx context.Context) ([]Standing, error) {
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load totals: %w", err)
	}
	return rank(totals), nil
}

func rank(totals []*models.PointTotal) []Standing {
	standings := make([]Standing, len(totals))
	for i, t := range totals {
		r := i + 1
		if i > 0 && t.Points == totals[i-1].Points {
			r = standings[i-1].Rank
		}
		standings[i] = Standing{Rank: r, Username: t.Username, Points: t.Points}
	}
	return standings
}

func (s *Service) Stats(ctx context.Context, rawUsername string) (*Stats, error) {
	username, err := NormalizeUsername(rawUsername)
	if err != nil {
		return nil, err
	}

	standings, err := s.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	stats := &Stats{Username: username}
	for _, st := range standings {
		if st.Username == username {
			stats.Points = st.Points
			stats.Rank = st.Rank
			break
		}
	}
	if stats.Rank == 0 {
		return nil, fmt.Errorf("stats for %s: %w", username, &repositories.NotFoundError{Entity: "points", ID: username})
	}

	if stats.Wins, err = s.repo.CountWins(ctx, username); err != nil {
		return nil, fmt.Errorf("count wins for %s: %w", username, err)
	}
	if stats.Recent, err = s.repo.History(ctx, username, config.RecentHistorySize); err != nil {
		return nil, fmt.Errorf("history for %s: %w", username, err)
	}
	return stats, nil
}

func (s *Service) MatchLog(ctx context.Context) ([]*models.MatchResult, error) {
	results, err := s.repo.MatchResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("load match results: %w", err)
	}
	return results, nil
}

// Suggest returns up to limit known usernames that fuzzily match name, best
// match first.
func (s *Service) Suggest(ctx context.Context, name string, limit int) ([]string, error) {
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load totals: %w", err)
	}

	names := make([]string, len(totals))
	for i, t := range totals {
		names[i] = t.Username
	}

	matches := fuzzy.Find(name, names)
	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out, nil
}

// IsValidation reports whether err came from rejected user input.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
