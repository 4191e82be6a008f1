package output

import (
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/story"
)

// DayView is one day of an edition in machine-readable form.
type DayView struct {
	Day          int             `json:"day"`
	Theme        string          `json:"theme"`
	Total        int             `json:"total"`
	Limit        int             `json:"limit"`
	OverCapacity bool            `json:"over_capacity"`
	Teaser       string          `json:"tomorrow_teaser,omitempty"`
	Stories      []story.Summary `json:"stories"`
}

// EditionView is the JSON form of `show`.
type EditionView struct {
	Days   []DayView       `json:"days"`
	Unused []story.Summary `json:"unused,omitempty"`
}

// View lists every present day (or only day `only` when non-zero) with
// display indexes, and the unused pool when withUnused is set.
func View(e *edition.Edition, only int, withUnused bool) EditionView {
	out := EditionView{Days: make([]DayView, 0, len(e.Days))}
	for _, d := range e.Days {
		if d == nil || (only != 0 && d.Number != only) {
			continue
		}
		stories := d.Summaries()
		if stories == nil {
			stories = []story.Summary{}
		}
		out.Days = append(out.Days, DayView{
			Day:          d.Number,
			Theme:        d.Theme,
			Total:        d.Total(),
			Limit:        d.Limit(),
			OverCapacity: d.OverCapacity(),
			Teaser:       d.TomorrowTeaser,
			Stories:      stories,
		})
	}
	if withUnused {
		for i, s := range e.Unused {
			out.Unused = append(out.Unused, s.ToSummary(i+1, string(edition.SlotUnused)))
		}
	}
	return out
}
