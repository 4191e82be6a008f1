// Package edition models the four daily editions and the unused pool built
// from one newsletter issue, plus the snapshot JSON codec.
package edition

import (
	"github.com/ftnpaper/curator/internal/story"
	"github.com/ftnpaper/curator/internal/theme"
)

// Edition is the full curation structure.
type Edition struct {
	// Days holds day 1..4 at index 0..3; nil means the day is absent.
	Days [theme.NumDays]*Day

	// Unused holds stories excluded from every day, in insertion order.
	Unused []*story.Story

	// ThemeMeta is descriptive per-day theme bookkeeping keyed by day number.
	ThemeMeta map[int]*theme.Meta
}

// Location is where a story currently lives.
type Location struct {
	Day   int // 0 for the unused pool
	Index int // display index within the day, or 1-based unused position
	Slot  SlotKind
	Story *story.Story
}

// New returns an empty edition.
func New() *Edition {
	return &Edition{ThemeMeta: make(map[int]*theme.Meta)}
}

// ValidDay reports whether n names one of the daily editions.
func ValidDay(n int) bool {
	return n >= 1 && n <= theme.NumDays
}

// Day returns day n, or nil if n is invalid or the day is absent.
func (e *Edition) Day(n int) *Day {
	if !ValidDay(n) {
		return nil
	}
	return e.Days[n-1]
}

// EnsureDay returns day n, creating the empty skeleton when it is absent.
func (e *Edition) EnsureDay(n int, themeName string) *Day {
	if !ValidDay(n) {
		return nil
	}
	if e.Days[n-1] == nil {
		e.Days[n-1] = NewDay(n, themeName)
	}
	return e.Days[n-1]
}

// UnusedAt returns the unused story at 1-based position index.
func (e *Edition) UnusedAt(index int) *story.Story {
	if index < 1 || index > len(e.Unused) {
		return nil
	}
	return e.Unused[index-1]
}

// RemoveUnused deletes a story from the unused pool by ID.
func (e *Edition) RemoveUnused(id string) *story.Story {
	for i, s := range e.Unused {
		if s.ID == id {
			e.Unused = append(e.Unused[:i:i], e.Unused[i+1:]...)
			return s
		}
	}
	return nil
}

// Locate finds a story by ID anywhere in the edition.
func (e *Edition) Locate(id string) (Location, bool) {
	for _, d := range e.Days {
		if d == nil {
			continue
		}
		if idx, slot := d.IndexOf(id); slot != SlotNone {
			s, _ := d.StoryAt(idx)
			return Location{Day: d.Number, Index: idx, Slot: slot, Story: s}, true
		}
	}
	for i, s := range e.Unused {
		if s.ID == id {
			return Location{Day: 0, Index: i + 1, Slot: SlotUnused, Story: s}, true
		}
	}
	return Location{}, false
}

// AllStories returns every story: days in order (display order), then unused.
func (e *Edition) AllStories() []*story.Story {
	var out []*story.Story
	for _, d := range e.Days {
		if d != nil {
			out = append(out, d.Stories()...)
		}
	}
	return append(out, e.Unused...)
}

// Meta returns the theme metadata for day n, or nil.
func (e *Edition) Meta(n int) *theme.Meta {
	if e.ThemeMeta == nil {
		return nil
	}
	return e.ThemeMeta[n]
}

// SetMeta stores theme metadata for day n.
func (e *Edition) SetMeta(n int, m *theme.Meta) {
	if e.ThemeMeta == nil {
		e.ThemeMeta = make(map[int]*theme.Meta)
	}
	e.ThemeMeta[n] = m
}

// Clone returns a structural deep copy. Story IDs are preserved so the copy
// can be diffed against the original.
func (e *Edition) Clone() *Edition {
	c := New()
	for i, d := range e.Days {
		c.Days[i] = d.Clone()
	}
	if e.Unused != nil {
		c.Unused = make([]*story.Story, len(e.Unused))
		for i, s := range e.Unused {
			c.Unused[i] = s.Clone()
		}
	}
	for n, m := range e.ThemeMeta {
		c.ThemeMeta[n] = m.Clone()
	}
	return c
}
