package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prd11/dream11-bot/dreambot/database"
	"github.com/uptrace/bun"
)

func openTestDB(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	t.Cleanup(db.Close)
	if err := db.InitializeSchema(ctx); err != nil {
		t.Fatalf("InitializeSchema() error = %v", err)
	}
	return db.BunDB()
}

// stepClock returns a new instant, one second apart, on every call.
type stepClock struct {
	mu   sync.Mutex
	next time.Time
}

func newStepClock() *stepClock {
	return &stepClock{next: time.Date(2025, 3, 22, 14, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(time.Second)
	return t
}
