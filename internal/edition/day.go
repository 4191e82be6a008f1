package edition

import (
	"encoding/json"

	"github.com/ftnpaper/curator/internal/comics"
	"github.com/ftnpaper/curator/internal/story"
)

// SlotKind names the position a story occupies.
type SlotKind string

const (
	SlotNone   SlotKind = ""
	SlotMain   SlotKind = "main"
	SlotSecond SlotKind = "second"
	SlotMini   SlotKind = "mini"
	SlotUnused SlotKind = "unused"
)

// Capacity limits: total stories (main counted) a day may hold.
const (
	CapacityWithoutSecond = 5
	CapacityWithSecond    = 6
)

// Day is one themed daily edition.
// Second == nil is the only representation of an absent second story.
type Day struct {
	Number int
	Theme  string

	Main   *story.Story
	Second *story.Story
	Minis  []*story.Story

	// Passed through to the renderer untouched.
	FrontPage      []json.RawMessage
	Statistics     []json.RawMessage
	TomorrowTeaser string
	Comic          *comics.Comic
}

// NewDay returns the empty skeleton for a day.
func NewDay(number int, themeName string) *Day {
	return &Day{Number: number, Theme: themeName}
}

// HasSecond reports whether the second slot is occupied.
func (d *Day) HasSecond() bool {
	return d.Second != nil
}

// IsEmpty reports whether no slot holds a story.
func (d *Day) IsEmpty() bool {
	return d.Main == nil && d.Second == nil && len(d.Minis) == 0
}

// Total is the slot count: 1 for main (even if transiently empty),
// plus the second story if present, plus the minis.
func (d *Day) Total() int {
	n := 1 + len(d.Minis)
	if d.HasSecond() {
		n++
	}
	return n
}

// Limit is the capacity for the day's current shape.
func (d *Day) Limit() int {
	if d.HasSecond() {
		return CapacityWithSecond
	}
	return CapacityWithoutSecond
}

// AtCapacity reports whether one more story would exceed the limit.
func (d *Day) AtCapacity() bool {
	return d.Total() >= d.Limit()
}

// OverCapacity reports a soft capacity violation.
func (d *Day) OverCapacity() bool {
	return d.Total() > d.Limit()
}

// MiniStartIndex is the display index of the first mini.
func (d *Day) MiniStartIndex() int {
	if d.HasSecond() {
		return 3
	}
	return 2
}

// StoryAt resolves a 1-based display index. Index 1 is main; index 2 is the
// second story when present, otherwise the first mini; then minis in order.
// Out-of-range indices (and an empty main) return (nil, SlotNone).
func (d *Day) StoryAt(index int) (*story.Story, SlotKind) {
	if index < 1 || index > d.Total() {
		return nil, SlotNone
	}
	if index == 1 {
		if d.Main == nil {
			return nil, SlotNone
		}
		return d.Main, SlotMain
	}
	if index == 2 && d.HasSecond() {
		return d.Second, SlotSecond
	}
	return d.Minis[index-d.MiniStartIndex()], SlotMini
}

// IndexOf is the inverse of StoryAt: the display index and slot of a story ID.
func (d *Day) IndexOf(id string) (int, SlotKind) {
	if d.Main != nil && d.Main.ID == id {
		return 1, SlotMain
	}
	if d.Second != nil && d.Second.ID == id {
		return 2, SlotSecond
	}
	if pos := d.miniPos(id); pos >= 0 {
		return d.MiniStartIndex() + pos, SlotMini
	}
	return 0, SlotNone
}

// Stories returns the occupied slots in display order.
func (d *Day) Stories() []*story.Story {
	out := make([]*story.Story, 0, d.Total())
	if d.Main != nil {
		out = append(out, d.Main)
	}
	if d.Second != nil {
		out = append(out, d.Second)
	}
	return append(out, d.Minis...)
}

// Summaries lists the day's stories with their display indices.
func (d *Day) Summaries() []story.Summary {
	var out []story.Summary
	for i := 1; i <= d.Total(); i++ {
		s, slot := d.StoryAt(i)
		if s == nil {
			continue
		}
		out = append(out, s.ToSummary(i, string(slot)))
	}
	return out
}

// MiniPos returns the position of a story in the minis list, or -1.
func (d *Day) MiniPos(id string) int {
	return d.miniPos(id)
}

func (d *Day) miniPos(id string) int {
	for i, s := range d.Minis {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// RemoveMini deletes the mini with the given ID, returning its former position.
func (d *Day) RemoveMini(id string) (*story.Story, int) {
	pos := d.miniPos(id)
	if pos < 0 {
		return nil, -1
	}
	s := d.Minis[pos]
	d.Minis = append(d.Minis[:pos:pos], d.Minis[pos+1:]...)
	return s, pos
}

// InsertMini places a story at pos in the minis list, clamped to valid bounds.
func (d *Day) InsertMini(pos int, s *story.Story) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(d.Minis) {
		pos = len(d.Minis)
	}
	d.Minis = append(d.Minis[:pos:pos], append([]*story.Story{s}, d.Minis[pos:]...)...)
}

// Clone returns a deep copy of the day. Story IDs are preserved.
func (d *Day) Clone() *Day {
	if d == nil {
		return nil
	}
	c := &Day{
		Number:         d.Number,
		Theme:          d.Theme,
		Main:           d.Main.Clone(),
		Second:         d.Second.Clone(),
		FrontPage:      cloneRaw(d.FrontPage),
		Statistics:     cloneRaw(d.Statistics),
		TomorrowTeaser: d.TomorrowTeaser,
		Comic:          d.Comic.Clone(),
	}
	if d.Minis != nil {
		c.Minis = make([]*story.Story, len(d.Minis))
		for i, s := range d.Minis {
			c.Minis[i] = s.Clone()
		}
	}
	return c
}

func cloneRaw(in []json.RawMessage) []json.RawMessage {
	if in == nil {
		return nil
	}
	out := make([]json.RawMessage, len(in))
	for i, m := range in {
		out[i] = append(json.RawMessage(nil), m...)
	}
	return out
}
