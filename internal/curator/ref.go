package curator

import (
	"fmt"
	"strings"

	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/errors"
	"github.com/ftnpaper/curator/internal/story"
)

// StoryRef addresses a story either by ID or by (Day, Index). Day 0 with an
// Index addresses the unused pool by 1-based position.
type StoryRef struct {
	ID    string `json:"id,omitempty"`
	Day   int    `json:"day,omitempty"`
	Index int    `json:"index,omitempty"`
}

// ByID addresses a story by its ID.
func ByID(id string) StoryRef {
	return StoryRef{ID: id}
}

// At addresses a story by display index within a day.
func At(day, index int) StoryRef {
	return StoryRef{Day: day, Index: index}
}

// UnusedAt addresses a story in the unused pool by 1-based position.
func UnusedAt(index int) StoryRef {
	return StoryRef{Index: index}
}

// inDay fills in the day for an index ref that names none.
func (r StoryRef) inDay(day int) StoryRef {
	if strings.TrimSpace(r.ID) == "" && r.Day == 0 && r.Index != 0 {
		r.Day = day
	}
	return r
}

func (r StoryRef) String() string {
	if r.ID != "" {
		return r.ID
	}
	if r.Day == 0 {
		return fmt.Sprintf("unused #%d", r.Index)
	}
	return fmt.Sprintf("day %d #%d", r.Day, r.Index)
}

// Resolved is where a ref currently points.
type Resolved struct {
	Story *story.Story
	Day   int // 0 for the unused pool
	Index int
	Slot  edition.SlotKind
}

// Resolve turns a ref into the story it addresses. Index refs are resolved
// against the current projection once; callers act on the returned ID.
func (c *Curator) Resolve(ref StoryRef) (*Resolved, error) {
	id := strings.TrimSpace(ref.ID)
	hasID := id != ""
	hasIndex := ref.Index != 0 || ref.Day != 0

	// Strict: id must be alone
	if hasID && hasIndex {
		return nil, errors.NewAmbiguousAddressing()
	}
	if !hasID && ref.Index == 0 {
		return nil, errors.NewInvalidRequest("must specify either id or day and index")
	}

	if hasID {
		loc, ok := c.working.Locate(id)
		if !ok {
			return nil, errors.NewNotFound(id)
		}
		return &Resolved{Story: loc.Story, Day: loc.Day, Index: loc.Index, Slot: loc.Slot}, nil
	}

	if ref.Day == 0 {
		s := c.working.UnusedAt(ref.Index)
		if s == nil {
			return nil, errors.NewInvalidIndex(0, ref.Index, len(c.working.Unused))
		}
		return &Resolved{Story: s, Day: 0, Index: ref.Index, Slot: edition.SlotUnused}, nil
	}

	if !edition.ValidDay(ref.Day) {
		return nil, errors.NewInvalidDay(ref.Day)
	}
	d := c.working.Day(ref.Day)
	if d == nil {
		return nil, errors.NewInvalidIndex(ref.Day, ref.Index, 0)
	}
	s, slot := d.StoryAt(ref.Index)
	if s == nil {
		return nil, errors.NewInvalidIndex(ref.Day, ref.Index, d.Total())
	}
	return &Resolved{Story: s, Day: ref.Day, Index: ref.Index, Slot: slot}, nil
}

// resolveInDay resolves ref and requires it to live in day.
func (c *Curator) resolveInDay(ref StoryRef, day int) (*Resolved, error) {
	r, err := c.Resolve(ref.inDay(day))
	if err != nil {
		return nil, err
	}
	if r.Day != day {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("story %s is not in day %d", r.Story.ID, day))
	}
	return r, nil
}

// StoryAt is the read view of a day's display index.
func (c *Curator) StoryAt(day, index int) (*story.Story, edition.SlotKind) {
	d := c.working.Day(day)
	if d == nil {
		return nil, edition.SlotNone
	}
	return d.StoryAt(index)
}

// existingDay returns day n or a structural error.
func (c *Curator) existingDay(n int) (*edition.Day, error) {
	if !edition.ValidDay(n) {
		return nil, errors.NewInvalidDay(n)
	}
	d := c.working.Day(n)
	if d == nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("day %d is not part of this edition", n))
	}
	return d, nil
}
