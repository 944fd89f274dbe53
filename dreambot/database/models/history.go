package models

import (
	"time"

	"github.com/uptrace/bun"
)

type HistoryKind string

const (
	HistoryKindWin    HistoryKind = "win"
	HistoryKindAdjust HistoryKind = "adjust"
)

// HistoryEntry is one append-only point change. MatchNumber is 0 for manual adjustments.
type HistoryEntry struct {
	bun.BaseModel `bun:"table:history,alias:h"`

	ID          int64       `bun:"id,pk,autoincrement" json:"id"`
	Username    string      `bun:"username,notnull" json:"username"`
	Points      int64       `bun:"points,notnull" json:"points"`
	MatchNumber int         `bun:"match_number,notnull,default:0" json:"match_number"`
	Kind        HistoryKind `bun:"kind,notnull" json:"kind"`
	UpdatedBy   string      `bun:"updated_by,notnull" json:"updated_by"`
	UpdatedByID int64       `bun:"updated_by_id,notnull,default:0" json:"updated_by_id"`
	CreatedAt   time.Time   `bun:"created_at,notnull" json:"created_at"`
}
