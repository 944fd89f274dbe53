// Package access decides who may touch which rows.
//
// Member-owned rows (alert preferences) follow a single owner policy: a caller
// sees and writes only the row whose user id equals its own Discord id. There is
// no permissive mode. The service identity exists for background jobs that must
// read across members, such as the match notifier.
package access

import (
	"context"
	"errors"

	"github.com/disgoorg/snowflake/v2"
)

var ErrNoCaller = errors.New("no caller identity in context")

// Caller is the authenticated identity an operation runs as.
type Caller struct {
	ID      snowflake.ID
	Service bool
}

// Member returns the caller identity of a Discord user.
func Member(id snowflake.ID) Caller {
	return Caller{ID: id}
}

// Service is the identity of the bot's own background jobs.
var Service = Caller{Service: true}

// Owns reports whether c may read or write the row owned by userID.
func (c Caller) Owns(userID snowflake.ID) bool {
	if c.Service {
		return true
	}
	return c.ID != 0 && c.ID == userID
}

type callerKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

func CallerFrom(ctx context.Context) (Caller, error) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	if !ok || (!c.Service && c.ID == 0) {
		return Caller{}, ErrNoCaller
	}
	return c, nil
}
