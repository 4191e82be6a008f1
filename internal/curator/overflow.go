package curator

import (
	"context"

	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/story"
)

// Action is the operator's answer to a full target day.
type Action string

const (
	ActionSwap    Action = "swap"    // incoming takes the target mini's place; the mini goes back to the source day
	ActionReplace Action = "replace" // incoming takes the target mini's place; the mini is discarded
	ActionCancel  Action = "cancel"
)

// Decision resolves an overflow. Target names a mini of the target day and
// is ignored for ActionCancel.
type Decision struct {
	Action Action   `json:"action"`
	Target StoryRef `json:"target"`
}

// OverflowRequest describes a move into a day at capacity.
type OverflowRequest struct {
	Story   *story.Story
	FromDay int
	ToDay   int
	Target  *edition.Day // read-only
}

// OverflowResolver decides what to do when a move targets a full day.
// It is consulted before anything is detached.
type OverflowResolver interface {
	ResolveOverflow(ctx context.Context, req OverflowRequest) (Decision, error)
}

// OverflowFunc adapts a function to OverflowResolver.
type OverflowFunc func(ctx context.Context, req OverflowRequest) (Decision, error)

// ResolveOverflow implements OverflowResolver.
func (f OverflowFunc) ResolveOverflow(ctx context.Context, req OverflowRequest) (Decision, error) {
	return f(ctx, req)
}

// StaticResolver always returns the same decision.
type StaticResolver Decision

// ResolveOverflow implements OverflowResolver.
func (s StaticResolver) ResolveOverflow(context.Context, OverflowRequest) (Decision, error) {
	return Decision(s), nil
}
