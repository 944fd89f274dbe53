// Package cooldown throttles command use per member: a rolling per-minute
// budget across all commands plus a short cooldown per command.
package cooldown

import (
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/prd11/dream11-bot/dreambot/config"
)

type window struct {
	count   int
	resetAt time.Time
}

type cooldownKey struct {
	user    snowflake.ID
	command string
}

type Limiter struct {
	mu        sync.Mutex
	windows   *lru.Cache
	cooldowns *lru.Cache
	perMinute int
	cooldown  time.Duration
	now       func() time.Time
}

// New returns a limiter allowing perMinute commands per member per window and
// one use of each command every cooldown.
func New(perMinute int, cooldown time.Duration) *Limiter {
	windows, _ := lru.New(config.LimiterCacheSize)
	cooldowns, _ := lru.New(config.LimiterCacheSize)
	return &Limiter{
		windows:   windows,
		cooldowns: cooldowns,
		perMinute: perMinute,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// SetClock swaps the time source.
func (l *Limiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	l.now = now
	l.mu.Unlock()
}

func (l *Limiter) CooldownPeriod() time.Duration {
	return l.cooldown
}

// Allow counts one command against userID's budget and reports whether it
// fits in the current window.
func (l *Limiter) Allow(userID snowflake.ID) bool {
	if l.perMinute <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, _ := l.windows.Get(userID)
	win, ok := w.(*window)
	if !ok || now.After(win.resetAt) {
		win = &window{resetAt: now.Add(config.RateLimitWindow)}
		l.windows.Add(userID, win)
	}

	if win.count >= l.perMinute {
		return false
	}
	win.count++
	return true
}

// Cooldown starts the cooldown of command for userID. When one is already
// running it returns the time left and false.
func (l *Limiter) Cooldown(userID snowflake.ID, command string) (time.Duration, bool) {
	if l.cooldown <= 0 {
		return 0, true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := cooldownKey{user: userID, command: command}
	if v, ok := l.cooldowns.Get(key); ok {
		if until := v.(time.Time); now.Before(until) {
			return until.Sub(now), false
		}
	}
	l.cooldowns.Add(key, now.Add(l.cooldown))
	return 0, true
}
