package curator

import (
	"context"
	"fmt"

	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/errors"
)

// UnuseInput contains parameters for the MoveToUnused operation.
type UnuseInput struct {
	Story StoryRef
}

// UnuseOutput contains the result of the MoveToUnused operation.
type UnuseOutput struct {
	StoryID     string `json:"story_id"`
	FromDay     int    `json:"from_day"`
	UnusedIndex int    `json:"unused_index"`
}

// MoveToUnused takes a story out of its day and appends it to the unused pool.
func (c *Curator) MoveToUnused(ctx context.Context, input UnuseInput) (*UnuseOutput, error) {
	r, err := c.Resolve(input.Story)
	if err != nil {
		return nil, err
	}
	if r.Day == 0 {
		return nil, errors.NewInvalidRequest("story is already unused")
	}

	dt := c.detach(c.working.Day(r.Day), r.Story.ID)
	c.working.Unused = append(c.working.Unused, dt.story)

	c.record(ctx, ChangeUnuse, r.Day, dt.story.ID,
		fmt.Sprintf("Moved %q from day %d to unused%s", dt.story.ShortTitle(), r.Day, dt.note()))
	return &UnuseOutput{
		StoryID:     dt.story.ID,
		FromDay:     r.Day,
		UnusedIndex: len(c.working.Unused),
	}, nil
}

// RestoreInput contains parameters for the RestoreFromUnused operation.
// Story is an ID or an unused-pool position (UnusedAt).
type RestoreInput struct {
	Story StoryRef
	ToDay int
}

// RestoreOutput contains the result of the RestoreFromUnused operation.
type RestoreOutput struct {
	StoryID      string `json:"story_id"`
	ToDay        int    `json:"to_day"`
	Index        int    `json:"index"`
	OverCapacity bool   `json:"over_capacity"`
}

// RestoreFromUnused appends an unused story to a day's minis, creating the
// day if needed. Capacity is not enforced here; exceeding it is a warning.
func (c *Curator) RestoreFromUnused(ctx context.Context, input RestoreInput) (*RestoreOutput, error) {
	if !edition.ValidDay(input.ToDay) {
		return nil, errors.NewInvalidDay(input.ToDay)
	}
	r, err := c.Resolve(input.Story)
	if err != nil {
		return nil, err
	}
	if r.Day != 0 {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("story is in day %d, not in the unused pool", r.Day))
	}

	s := c.working.RemoveUnused(r.Story.ID)
	d := c.working.EnsureDay(input.ToDay, c.themeName(input.ToDay))
	d.Minis = append(d.Minis, s)

	out := &RestoreOutput{StoryID: s.ID, ToDay: input.ToDay, OverCapacity: d.OverCapacity()}
	out.Index, _ = d.IndexOf(s.ID)
	if out.OverCapacity {
		c.warn(d.Number, fmt.Sprintf("day %d is over capacity (%d/%d)", d.Number, d.Total(), d.Limit()))
	}
	c.record(ctx, ChangeRestore, input.ToDay, s.ID,
		fmt.Sprintf("Restored %q from unused to day %d", s.ShortTitle(), input.ToDay))
	return out, nil
}
