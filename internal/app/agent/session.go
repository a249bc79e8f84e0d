package agent

import (
	"context"
	"errors"
)

// Session is one synthetic participant's run inside a room. Implementations
// are independent tiers behind the same flat interface; there is no
// inheritance between them.
type Session interface {
	Start(ctx context.Context) error
	Say(ctx context.Context, text string) error
	Stop(ctx context.Context) error

	// Kind names the tier ("voice_ai", "tts", "mock") for logs and
	// status responses.
	Kind() string
}

// Factory constructs an unstarted session for a room, or reports
// ErrTierUnavailable when its tier cannot run under the current
// configuration/credentials.
type Factory func(roomName, identity string) (Session, error)

// ErrTierUnavailable makes the manager move on to the next tier.
var ErrTierUnavailable = errors.New("agent tier unavailable")
