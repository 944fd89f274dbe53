package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserAlert is a member's opt-in for match start alerts. One row per Discord user.
type UserAlert struct {
	bun.BaseModel `bun:"table:user_alerts,alias:ua"`

	UserID    int64     `bun:"user_id,pk" json:"user_id"`
	Enabled   bool      `bun:"enabled,notnull,default:false" json:"enabled"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
