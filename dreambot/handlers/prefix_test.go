package handlers

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
)

func TestParsePrefix(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantCmd string
		wantArg []string
		wantOK  bool
	}{
		{name: "command with args", content: "!win rahul 12", wantCmd: "win", wantArg: []string{"rahul", "12"}, wantOK: true},
		{name: "case folded", content: "!D11", wantCmd: "d11", wantArg: []string{}, wantOK: true},
		{name: "extra spaces", content: "  !points   sam   -3 ", wantCmd: "points", wantArg: []string{"sam", "-3"}, wantOK: true},
		{name: "no prefix", content: "win rahul 12"},
		{name: "prefix only", content: "!"},
		{name: "empty", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, ok := ParsePrefix("!", tt.content)
			if ok != tt.wantOK {
				t.Fatalf("ParsePrefix(%q) ok = %v, want %v", tt.content, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if cmd != tt.wantCmd || !reflect.DeepEqual(args, tt.wantArg) {
				t.Errorf("ParsePrefix(%q) = %q %q, want %q %q", tt.content, cmd, args, tt.wantCmd, tt.wantArg)
			}
		})
	}
}

func TestWrapPrefixWithLoggingPassesResult(t *testing.T) {
	boom := errors.New("boom")
	var seen *PrefixEvent

	h := WrapPrefixWithLogging("win", func(ctx context.Context, e *PrefixEvent) error {
		seen = e
		if _, ok := ctx.Deadline(); !ok {
			t.Error("handler context has no deadline")
		}
		return boom
	})

	e := &PrefixEvent{AuthorID: 1, AuthorName: "amy", Command: "win"}
	if err := h(context.Background(), e); !errors.Is(err, boom) {
		t.Errorf("wrapped handler error = %v, want %v", err, boom)
	}
	if seen == nil || seen.AuthorName != "amy" || seen.Command != "win" {
		t.Errorf("handler received %+v", seen)
	}
}

type recordingReplier struct {
	mu   sync.Mutex
	msgs []discord.MessageCreate
}

func (r *recordingReplier) Reply(_ context.Context, msg discord.MessageCreate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recordingReplier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func TestWrapPrefixWithLoggingDropsLateReply(t *testing.T) {
	saved := commandTimeout
	commandTimeout = 20 * time.Millisecond
	t.Cleanup(func() { commandTimeout = saved })

	replies := &recordingReplier{}
	release := make(chan struct{})
	lateErr := make(chan error, 1)
	h := WrapPrefixWithLogging("slow", func(ctx context.Context, e *PrefixEvent) error {
		<-release
		err := e.Reply(context.Background(), discord.MessageCreate{Content: "finally"})
		lateErr <- err
		return err
	})

	e := &PrefixEvent{Replier: replies, AuthorID: 1, AuthorName: "amy"}
	if err := h(context.Background(), e); err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("wrapped handler error = %v, want timeout", err)
	}
	close(release)

	select {
	case err := <-lateErr:
		if !errors.Is(err, ErrLateReply) {
			t.Errorf("late reply error = %v, want ErrLateReply", err)
		}
	case <-time.After(time.Second):
		t.Fatal("handler never attempted its reply")
	}
	if n := replies.count(); n != 0 {
		t.Errorf("%d late replies delivered", n)
	}

	// the router's own failure message still goes out on the original event
	if err := e.Reply(context.Background(), discord.MessageCreate{Content: "failed"}); err != nil || replies.count() != 1 {
		t.Errorf("direct reply err = %v, delivered = %d", err, replies.count())
	}
}

func TestWrapPrefixWithLoggingRepliesInTime(t *testing.T) {
	replies := &recordingReplier{}
	h := WrapPrefixWithLogging("about", func(ctx context.Context, e *PrefixEvent) error {
		return e.Reply(ctx, discord.MessageCreate{Content: "hi"})
	})

	if err := h(context.Background(), &PrefixEvent{Replier: replies}); err != nil {
		t.Fatalf("wrapped handler error = %v", err)
	}
	if replies.count() != 1 {
		t.Errorf("delivered %d replies, want 1", replies.count())
	}
}
