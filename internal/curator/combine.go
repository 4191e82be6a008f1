package curator

import (
	"context"
	"fmt"
	"sort"

	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/errors"
	"github.com/ftnpaper/curator/internal/story"
)

// CombineInput contains parameters for the Combine operation.
// Index-only refs are read within Day.
type CombineInput struct {
	Day     int
	Stories []StoryRef
}

// CombineOutput contains the result of the Combine operation.
type CombineOutput struct {
	StoryID  string           `json:"story_id"`
	Title    string           `json:"title"`
	Slot     edition.SlotKind `json:"slot"`
	Index    int              `json:"index"`
	Replaced []string         `json:"replaced"`
}

// Combine merges two or more stories of one day into a single new story.
// Stories are merged in display order. If the main story was selected the
// merged story becomes main; otherwise it is inserted among the minis at the
// first selected display index, clamped to the remaining minis. A second slot
// emptied by the combine is refilled from the first remaining mini first.
func (c *Curator) Combine(ctx context.Context, input CombineInput) (*CombineOutput, error) {
	d, err := c.existingDay(input.Day)
	if err != nil {
		return nil, err
	}
	if len(input.Stories) < 2 {
		return nil, errors.NewInvalidRequest("combine needs at least two stories")
	}

	selected := make(map[string]*Resolved, len(input.Stories))
	picked := make([]*Resolved, 0, len(input.Stories))
	for _, ref := range input.Stories {
		r, err := c.resolveInDay(ref, input.Day)
		if err != nil {
			return nil, err
		}
		if _, dup := selected[r.Story.ID]; dup {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("story %s selected twice", r.Story.ID))
		}
		selected[r.Story.ID] = r
		picked = append(picked, r)
	}
	sort.Slice(picked, func(i, j int) bool { return picked[i].Index < picked[j].Index })

	parts := make([]*story.Story, len(picked))
	for i, r := range picked {
		parts[i] = r.Story
	}
	merged, err := story.Combine(parts)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	mainSelected := d.Main != nil && selected[d.Main.ID] != nil
	secondSelected := d.Second != nil && selected[d.Second.ID] != nil

	remaining := make([]*story.Story, 0, len(d.Minis))
	for _, m := range d.Minis {
		if selected[m.ID] == nil {
			remaining = append(remaining, m)
		}
	}
	d.Minis = remaining
	if mainSelected {
		d.Main = nil
	}
	if secondSelected {
		d.Second = nil
		if len(d.Minis) > 0 {
			d.Second = d.Minis[0]
			d.Minis = append([]*story.Story(nil), d.Minis[1:]...)
		}
	}

	if mainSelected {
		d.Main = merged
	} else {
		// The first selected display index, mapped onto the remaining minis.
		d.InsertMini(picked[0].Index-d.MiniStartIndex(), merged)
	}

	out := &CombineOutput{StoryID: merged.ID, Title: merged.Title}
	out.Index, out.Slot = d.IndexOf(merged.ID)
	for _, r := range picked {
		out.Replaced = append(out.Replaced, r.Story.ID)
	}

	c.record(ctx, ChangeCombine, input.Day, merged.ID,
		fmt.Sprintf("Combined %d stories in day %d into %q", len(picked), input.Day, merged.ShortTitle()))
	return out, nil
}
