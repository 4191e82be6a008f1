package curator

import (
	"context"
	"fmt"

	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/errors"
)

// PromoteInput contains parameters for the PromoteSecond operation.
type PromoteInput struct {
	Day   int
	Story StoryRef
}

// PromoteOutput contains the result of the PromoteSecond operation.
type PromoteOutput struct {
	SecondID string `json:"second_id"`
}

// PromoteSecond moves a mini into the empty second slot.
func (c *Curator) PromoteSecond(ctx context.Context, input PromoteInput) (*PromoteOutput, error) {
	d, err := c.existingDay(input.Day)
	if err != nil {
		return nil, err
	}
	r, err := c.resolveInDay(input.Story, input.Day)
	if err != nil {
		return nil, err
	}
	if d.HasSecond() {
		return nil, errors.NewConflict(fmt.Sprintf("day %d already has a second story", input.Day))
	}
	if r.Slot != edition.SlotMini {
		return nil, errors.NewInvalidRequest("only a mini story can become the second story")
	}

	s, _ := d.RemoveMini(r.Story.ID)
	d.Second = s

	c.record(ctx, ChangePromote, input.Day, s.ID,
		fmt.Sprintf("Promoted %q to second story of day %d", s.ShortTitle(), input.Day))
	return &PromoteOutput{SecondID: s.ID}, nil
}

// DemoteInput contains parameters for the DemoteSecond operation.
type DemoteInput struct {
	Day int
}

// DemoteOutput contains the result of the DemoteSecond operation.
type DemoteOutput struct {
	StoryID      string `json:"story_id"`
	Index        int    `json:"index"`
	OverCapacity bool   `json:"over_capacity"`
}

// DemoteSecond moves the second story to the front of the minis.
func (c *Curator) DemoteSecond(ctx context.Context, input DemoteInput) (*DemoteOutput, error) {
	d, err := c.existingDay(input.Day)
	if err != nil {
		return nil, err
	}
	if !d.HasSecond() {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("day %d has no second story", input.Day))
	}

	s := d.Second
	d.Second = nil
	d.InsertMini(0, s)

	out := &DemoteOutput{StoryID: s.ID, OverCapacity: d.OverCapacity()}
	out.Index, _ = d.IndexOf(s.ID)
	if out.OverCapacity {
		c.warn(d.Number, fmt.Sprintf("day %d is over capacity (%d/%d)", d.Number, d.Total(), d.Limit()))
	}
	c.record(ctx, ChangeDemote, input.Day, s.ID,
		fmt.Sprintf("Demoted %q to a mini in day %d", s.ShortTitle(), input.Day))
	return out, nil
}
