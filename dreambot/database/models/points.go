package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PointTotal is the running total for one contestant. It always equals the sum of
// that contestant's history entries.
type PointTotal struct {
	bun.BaseModel `bun:"table:points,alias:p"`

	Username  string    `bun:"username,pk" json:"username"`
	Points    int64     `bun:"points,notnull,default:0" json:"points"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
