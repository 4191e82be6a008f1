package curator

import (
	"context"
	"fmt"

	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/errors"
)

// Outcome is what a move ended up doing.
type Outcome string

const (
	OutcomeMoved     Outcome = "moved"
	OutcomeSwapped   Outcome = "swapped"
	OutcomeReplaced  Outcome = "replaced"
	OutcomeDropped   Outcome = "dropped"
	OutcomeCancelled Outcome = "cancelled"
)

// MoveInput contains parameters for the MoveStory operation.
type MoveInput struct {
	Story StoryRef
	ToDay int
}

// MoveOutput contains the result of the MoveStory operation.
type MoveOutput struct {
	StoryID     string  `json:"story_id"`
	FromDay     int     `json:"from_day"`
	ToDay       int     `json:"to_day"`
	Outcome     Outcome `json:"outcome"`
	Index       int     `json:"index,omitempty"` // display index in the target day
	DisplacedID string  `json:"displaced_id,omitempty"`
}

// MoveStory moves a story from one day to the minis of another. When the
// target day is at capacity the overflow resolver decides between swap,
// replace and cancel before anything is touched.
func (c *Curator) MoveStory(ctx context.Context, input MoveInput) (*MoveOutput, error) {
	if !edition.ValidDay(input.ToDay) {
		return nil, errors.NewInvalidDay(input.ToDay)
	}

	r, err := c.Resolve(input.Story)
	if err != nil {
		return nil, err
	}
	if r.Day == 0 {
		return nil, errors.NewInvalidRequest("story is in the unused pool; restore it instead")
	}
	if r.Day == input.ToDay {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("story is already in day %d", input.ToDay))
	}

	src := c.working.Day(r.Day)
	id := r.Story.ID
	out := &MoveOutput{StoryID: id, FromDay: r.Day, ToDay: input.ToDay}

	target := c.working.Day(input.ToDay)
	if target != nil && target.AtCapacity() {
		return c.overflow(ctx, src, target, r, out)
	}

	dt := c.detach(src, id)
	target = c.working.EnsureDay(input.ToDay, c.themeName(input.ToDay))
	target.Minis = append(target.Minis, dt.story)

	out.Outcome = OutcomeMoved
	out.Index, _ = target.IndexOf(id)
	c.record(ctx, ChangeMove, input.ToDay, id,
		fmt.Sprintf("Moved %q from day %d to day %d%s", dt.story.ShortTitle(), r.Day, input.ToDay, dt.note()))
	return out, nil
}

func (c *Curator) overflow(ctx context.Context, src, target *edition.Day, r *Resolved, out *MoveOutput) (*MoveOutput, error) {
	decision := Decision{Action: ActionCancel}
	if c.resolver != nil {
		var err error
		decision, err = c.resolver.ResolveOverflow(ctx, OverflowRequest{
			Story:   r.Story,
			FromDay: src.Number,
			ToDay:   target.Number,
			Target:  target,
		})
		if err != nil {
			return nil, err
		}
	}

	id := r.Story.ID
	switch decision.Action {
	case ActionSwap, ActionReplace:
		victim, err := c.resolveInDay(decision.Target, target.Number)
		if err != nil {
			return nil, err
		}
		if victim.Slot != edition.SlotMini {
			return nil, errors.NewInvalidRequest("overflow target must be a mini story")
		}

		dt := c.detach(src, id)
		pos := target.MiniPos(victim.Story.ID)
		target.Minis[pos] = dt.story
		out.DisplacedID = victim.Story.ID
		out.Index, _ = target.IndexOf(id)

		if decision.Action == ActionSwap {
			src.Minis = append(src.Minis, victim.Story)
			out.Outcome = OutcomeSwapped
			c.record(ctx, ChangeSwap, target.Number, id,
				fmt.Sprintf("Swapped %q (day %d) with %q (day %d)%s",
					dt.story.ShortTitle(), src.Number, victim.Story.ShortTitle(), target.Number, dt.note()))
		} else {
			out.Outcome = OutcomeReplaced
			c.record(ctx, ChangeReplace, target.Number, id,
				fmt.Sprintf("Replaced %q in day %d with %q from day %d%s",
					victim.Story.ShortTitle(), target.Number, dt.story.ShortTitle(), src.Number, dt.note()))
		}
		return out, nil

	case ActionCancel, "":
		if c.cfg.RestoreOnCancel {
			out.Outcome = OutcomeCancelled
			c.warn(target.Number, fmt.Sprintf("Move of %q cancelled; day %d is full", r.Story.ShortTitle(), target.Number))
			return out, nil
		}
		dt := c.detach(src, id)
		out.Outcome = OutcomeDropped
		c.warn(src.Number, fmt.Sprintf("%q was dropped: day %d is full and the move was cancelled", dt.story.ShortTitle(), target.Number))
		c.record(ctx, ChangeDrop, src.Number, id,
			fmt.Sprintf("Dropped %q from day %d (day %d full)%s", dt.story.ShortTitle(), src.Number, target.Number, dt.note()))
		return out, nil

	default:
		return nil, errors.NewInvalidRequest(fmt.Sprintf("unknown overflow action %q", decision.Action))
	}
}
