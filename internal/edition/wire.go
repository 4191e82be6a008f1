package edition

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ftnpaper/curator/internal/comics"
	"github.com/ftnpaper/curator/internal/story"
	"github.com/ftnpaper/curator/internal/theme"
)

// dayRecord is the JSON shape of one day.
type dayRecord struct {
	Theme            string            `json:"theme"`
	MainStory        *story.Record     `json:"main_story,omitempty"`
	SecondStory      *story.Record     `json:"second_story,omitempty"`
	FrontPageStories []json.RawMessage `json:"front_page_stories"`
	MiniArticles     []*story.Record   `json:"mini_articles"`
	Statistics       []json.RawMessage `json:"statistics"`
	TomorrowTeaser   string            `json:"tomorrow_teaser"`
	Comic            *comics.Comic     `json:"comic,omitempty"`
}

// unusedRecord is the JSON shape of the unused pool.
type unusedRecord struct {
	Stories []*story.Record `json:"stories"`
}

// snapshot is the JSON shape of a whole edition.
type snapshot struct {
	Day1          *dayRecord             `json:"day_1,omitempty"`
	Day2          *dayRecord             `json:"day_2,omitempty"`
	Day3          *dayRecord             `json:"day_3,omitempty"`
	Day4          *dayRecord             `json:"day_4,omitempty"`
	Unused        *unusedRecord          `json:"unused,omitempty"`
	ThemeMetadata map[string]*theme.Meta `json:"theme_metadata,omitempty"`
}

func (s *snapshot) days() []**dayRecord {
	return []**dayRecord{&s.Day1, &s.Day2, &s.Day3, &s.Day4}
}

// EncodeOptions controls snapshot encoding.
type EncodeOptions struct {
	// IncludeUnused writes the unused pool (session files). Final output omits it.
	IncludeUnused bool
}

// Decode parses a snapshot into an Edition, assigning fresh story IDs.
//
// Presence rules: a main story is kept when its object carries anything at all
// (an untitled main is left for validation to flag); a second story is present
// only with a non-blank title, so a missing key, "{}" and an untitled object
// all decode to nil.
func Decode(data []byte) (*Edition, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}

	e := New()
	for i, dr := range snap.days() {
		if *dr == nil {
			continue
		}
		e.Days[i] = decodeDay(i+1, *dr)
	}

	if snap.Unused != nil {
		e.Unused = decodeList(snap.Unused.Stories)
	}

	for key, m := range snap.ThemeMetadata {
		n, err := strconv.Atoi(key)
		if err != nil || !ValidDay(n) || m == nil {
			continue
		}
		e.ThemeMeta[n] = m.Clone()
	}

	return e, nil
}

func decodeDay(n int, r *dayRecord) *Day {
	d := &Day{
		Number:         n,
		Theme:          r.Theme,
		FrontPage:      r.FrontPageStories,
		Statistics:     r.Statistics,
		TomorrowTeaser: r.TomorrowTeaser,
		Comic:          r.Comic,
		Minis:          decodeList(r.MiniArticles),
	}
	if !r.MainStory.IsZero() {
		d.Main = r.MainStory.ToStory()
	}
	if r.SecondStory.HasTitle() {
		d.Second = r.SecondStory.ToStory()
	}
	return d
}

func decodeList(records []*story.Record) []*story.Story {
	var out []*story.Story
	for _, r := range records {
		if r.IsZero() {
			continue
		}
		out = append(out, r.ToStory())
	}
	return out
}

// Encode renders an edition as indented snapshot JSON.
func Encode(e *Edition, opts EncodeOptions) ([]byte, error) {
	var snap snapshot
	for i, dr := range snap.days() {
		if d := e.Days[i]; d != nil {
			*dr = encodeDay(d)
		}
	}

	if opts.IncludeUnused {
		snap.Unused = &unusedRecord{Stories: story.ToRecords(e.Unused)}
	}

	if len(e.ThemeMeta) > 0 {
		snap.ThemeMetadata = make(map[string]*theme.Meta, len(e.ThemeMeta))
		for n, m := range e.ThemeMeta {
			if m != nil {
				snap.ThemeMetadata[strconv.Itoa(n)] = m
			}
		}
	}

	data, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func encodeDay(d *Day) *dayRecord {
	r := &dayRecord{
		Theme:            d.Theme,
		MainStory:        story.ToRecord(d.Main),
		SecondStory:      story.ToRecord(d.Second),
		FrontPageStories: d.FrontPage,
		MiniArticles:     story.ToRecords(d.Minis),
		Statistics:       d.Statistics,
		TomorrowTeaser:   d.TomorrowTeaser,
		Comic:            d.Comic,
	}
	if r.FrontPageStories == nil {
		r.FrontPageStories = []json.RawMessage{}
	}
	if r.Statistics == nil {
		r.Statistics = []json.RawMessage{}
	}
	return r
}
