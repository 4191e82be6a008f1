package curator

import (
	"context"
	"fmt"

	"github.com/ftnpaper/curator/internal/edition"
)

// SwapInput contains parameters for the SwapMain operation.
// An index-only Story ref is read within Day.
type SwapInput struct {
	Day   int
	Story StoryRef
}

// SwapOutput contains the result of the SwapMain operation.
type SwapOutput struct {
	Swapped   bool   `json:"swapped"`
	MainID    string `json:"main_id"`
	DemotedID string `json:"demoted_id,omitempty"`
}

// SwapMain makes a story the day's main story, putting the old main where
// that story was. Choosing the main story itself is a no-op.
func (c *Curator) SwapMain(ctx context.Context, input SwapInput) (*SwapOutput, error) {
	d, err := c.existingDay(input.Day)
	if err != nil {
		return nil, err
	}
	r, err := c.resolveInDay(input.Story, input.Day)
	if err != nil {
		return nil, err
	}

	old := d.Main
	switch r.Slot {
	case edition.SlotMain:
		return &SwapOutput{Swapped: false, MainID: r.Story.ID}, nil

	case edition.SlotSecond:
		// An empty main leaves the second slot absent.
		d.Main, d.Second = d.Second, old

	case edition.SlotMini:
		pos := d.MiniPos(r.Story.ID)
		if old != nil {
			d.Main, d.Minis[pos] = d.Minis[pos], old
		} else {
			d.Main, _ = d.RemoveMini(r.Story.ID)
		}
	}

	out := &SwapOutput{Swapped: true, MainID: r.Story.ID}
	msg := fmt.Sprintf("Made %q the main story of day %d", r.Story.ShortTitle(), input.Day)
	if old != nil {
		out.DemotedID = old.ID
		msg = fmt.Sprintf("Swapped main %q with %s %q in day %d", old.ShortTitle(), r.Slot, r.Story.ShortTitle(), input.Day)
	}
	c.record(ctx, ChangeMain, input.Day, r.Story.ID, msg)
	return out, nil
}
