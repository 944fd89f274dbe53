package models

import (
	"time"

	"github.com/uptrace/bun"
)

// MatchResult records a match winner. Each row comes from exactly one win in history.
type MatchResult struct {
	bun.BaseModel `bun:"table:match_results,alias:mr"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	HistoryID   int64     `bun:"history_id,notnull,unique" json:"history_id"`
	MatchNumber int       `bun:"match_number,notnull,unique:match_winner" json:"match_number"`
	Winner      string    `bun:"winner,notnull,unique:match_winner" json:"winner"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
}
