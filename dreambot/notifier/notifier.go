// Package notifier DMs members who opted in shortly before each scheduled
// match starts.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/prd11/dream11-bot/dreambot/access"
	"github.com/prd11/dream11-bot/dreambot/config"
	"github.com/prd11/dream11-bot/dreambot/schedule"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Sender delivers a direct message.
type Sender interface {
	SendDM(ctx context.Context, userID snowflake.ID, msg discord.MessageCreate) error
}

// Subscribers lists members with alerts enabled.
type Subscribers interface {
	ListEnabled(ctx context.Context, caller access.Caller) ([]snowflake.ID, error)
}

type Options struct {
	Interval    time.Duration
	Lead        time.Duration
	MaxParallel int
}

type Notifier struct {
	sched  *schedule.Schedule
	subs   Subscribers
	sender Sender
	opts   Options
	now    func() time.Time

	mu    sync.Mutex
	last  time.Time
	fired map[int]struct{}
}

func New(sched *schedule.Schedule, subs Subscribers, sender Sender, opts Options) *Notifier {
	if opts.Interval <= 0 {
		opts.Interval = time.Minute
	}
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = 1
	}
	return &Notifier{
		sched:  sched,
		subs:   subs,
		sender: sender,
		opts:   opts,
		now:    time.Now,
		fired:  map[int]struct{}{},
	}
}

// Run checks the schedule every interval until ctx is done. Alerts whose time
// passed before Run started are not sent.
func (n *Notifier) Run(ctx context.Context) {
	n.mu.Lock()
	n.last = n.now()
	n.mu.Unlock()

	slog.Info("Match notifier started",
		slog.String("type", "sys"),
		slog.Duration("interval", n.opts.Interval),
		slog.Duration("lead", n.opts.Lead))

	ticker := time.NewTicker(n.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := n.Tick(ctx); err != nil {
				slog.Error("Match notifier tick failed",
					slog.String("type", "sys"),
					slog.Any("error", err))
			}
		case <-ctx.Done():
			slog.Info("Match notifier stopped", slog.String("type", "sys"))
			return
		}
	}
}

// Tick sends alerts for matches whose alert time fell since the previous tick.
// Each match is alerted at most once per process.
func (n *Notifier) Tick(ctx context.Context) error {
	n.mu.Lock()
	now := n.now()
	from := n.last
	n.last = now
	var due []schedule.Match
	for _, m := range n.sched.AlertsBetween(from, now, n.opts.Lead) {
		if _, done := n.fired[m.Number]; done {
			continue
		}
		n.fired[m.Number] = struct{}{}
		due = append(due, m)
	}
	n.mu.Unlock()

	if len(due) == 0 {
		return nil
	}

	users, err := n.subs.ListEnabled(ctx, access.Service)
	if err != nil {
		n.retry(from, due)
		return fmt.Errorf("list alert subscribers: %w", err)
	}

	for _, m := range due {
		sent, failed := n.notify(ctx, m, users)
		slog.Info("Match alert sent",
			slog.String("type", "sys"),
			slog.Int("match", m.Number),
			slog.Int("sent", sent),
			slog.Int("failed", failed))
	}
	return nil
}

// retry puts due back so the next tick picks it up again.
func (n *Notifier) retry(from time.Time, due []schedule.Match) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, m := range due {
		delete(n.fired, m.Number)
	}
	if from.Before(n.last) {
		n.last = from
	}
}

func (n *Notifier) notify(ctx context.Context, m schedule.Match, users []snowflake.ID) (int, int) {
	msg := Message(m, n.opts.Lead)
	sem := semaphore.NewWeighted(int64(n.opts.MaxParallel))
	var g errgroup.Group
	var sent, failed atomic.Int32

	for _, userID := range users {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)

			sendCtx, cancel := context.WithTimeout(ctx, config.NotifierSendTimeout)
			defer cancel()

			if err := n.sender.SendDM(sendCtx, userID, msg); err != nil {
				failed.Add(1)
				slog.Warn("Failed to send match alert",
					slog.String("type", "sys"),
					slog.Int("match", m.Number),
					slog.String("user_id", userID.String()),
					slog.Any("error", err))
				return fmt.Errorf("alert %s: %w", userID, err)
			}
			sent.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	return int(sent.Load()), int(failed.Load())
}

// Message is the DM sent for m.
func Message(m schedule.Match, lead time.Duration) discord.MessageCreate {
	desc := fmt.Sprintf("**Match %d: %s vs %s** starts in %d minutes (%s).",
		m.Number, m.HomeShort(), m.AwayShort(), int(lead.Minutes()), m.Start)
	if m.Venue != "" {
		desc += "\nVenue: " + m.Venue
	}
	return discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "🏏 Match starting soon",
			Description: desc + "\n\nPick your Dream11 team now! Turn these off with `/alerts enabled:false`.",
			Color:       config.InfoColor,
		}},
	}
}
