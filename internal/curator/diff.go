package curator

import (
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/story"
)

// Position is a story's place in an edition. Day 0 is the unused pool.
type Position struct {
	Day   int              `json:"day"`
	Slot  edition.SlotKind `json:"slot"`
	Index int              `json:"index"`
}

// Placement is a story whose day or slot differs between original and working
// copy. Index shifts alone are not reported.
// Before is nil for stories created during the session (combines); After is
// nil for stories no longer present (dropped, replaced, combined away).
type Placement struct {
	StoryID  string    `json:"story_id"`
	Headline string    `json:"headline"`
	Before   *Position `json:"before,omitempty"`
	After    *Position `json:"after,omitempty"`
}

// Diff compares story positions between the original and the working copy.
func (c *Curator) Diff() []Placement {
	before := positions(c.original)
	after := positions(c.working)

	var out []Placement
	seen := make(map[string]bool)
	for _, s := range c.working.AllStories() {
		seen[s.ID] = true
		b, a := before[s.ID], after[s.ID]
		if b != nil && b.Day == a.Day && b.Slot == a.Slot {
			continue
		}
		out = append(out, Placement{StoryID: s.ID, Headline: s.ShortTitle(), Before: b, After: a})
	}
	for _, s := range c.original.AllStories() {
		if !seen[s.ID] {
			out = append(out, Placement{StoryID: s.ID, Headline: s.ShortTitle(), Before: before[s.ID]})
		}
	}
	return out
}

func positions(e *edition.Edition) map[string]*Position {
	out := make(map[string]*Position)
	add := func(s *story.Story, p Position) {
		out[s.ID] = &p
	}
	for _, d := range e.Days {
		if d == nil {
			continue
		}
		for i := 1; i <= d.Total(); i++ {
			if s, slot := d.StoryAt(i); s != nil {
				add(s, Position{Day: d.Number, Slot: slot, Index: i})
			}
		}
	}
	for i, s := range e.Unused {
		add(s, Position{Day: 0, Slot: edition.SlotUnused, Index: i + 1})
	}
	return out
}
