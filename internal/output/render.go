package output

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ftnpaper/curator/internal/curator"
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/story"
)

// Day prints one day's stories with their display indexes.
func (p *Printer) Day(d *edition.Day, meta string) {
	if d == nil {
		return
	}
	title := fmt.Sprintf("Day %d: %s (%d/%d)", d.Number, d.Theme, d.Total(), d.Limit())
	p.Header(title)
	if meta != "" {
		p.Print("%s", p.Dim(meta))
	}
	if d.Main == nil {
		p.Warning("day %d has no main story", d.Number)
	}
	p.stories(d.Summaries())
	if d.OverCapacity() {
		p.Warning("day %d is over capacity (%d/%d)", d.Number, d.Total(), d.Limit())
	}
	if d.TomorrowTeaser != "" {
		p.Print("%s %s", p.Dim("teaser:"), d.TomorrowTeaser)
	}
	if d.Comic != nil {
		p.Print("%s %s", p.Dim("comic:"), d.Comic.Title)
	}
}

// Unused prints the unused pool.
func (p *Printer) Unused(stories []*story.Story) {
	p.Header(fmt.Sprintf("Unused (%d)", len(stories)))
	if len(stories) == 0 {
		p.Print("%s", p.Dim("(empty)"))
		return
	}
	summaries := make([]story.Summary, len(stories))
	for i, s := range stories {
		summaries[i] = s.ToSummary(i+1, string(edition.SlotUnused))
	}
	p.stories(summaries)
}

// Edition prints every present day followed by the unused pool.
func (p *Printer) Edition(e *edition.Edition, withUnused bool) {
	for _, d := range e.Days {
		if d == nil {
			continue
		}
		meta := ""
		if m := e.Meta(d.Number); m != nil {
			meta = fmt.Sprintf("%s, %s", m.Source, m.Status)
		}
		p.Day(d, meta)
	}
	if withUnused {
		p.Unused(e.Unused)
	}
}

func (p *Printer) stories(summaries []story.Summary) {
	t := p.NewTable([]string{"#", "Slot", "Headline", "Chars", "Link"})
	for _, s := range summaries {
		slot := s.Slot
		if slot == string(edition.SlotMain) {
			slot = p.Bold(slot)
		}
		t.AddRow(strconv.Itoa(s.Index), slot, s.Headline, strconv.Itoa(s.Chars), s.SourceURL)
	}
	t.Render()
}

// Themes prints the theme review table.
func (p *Printer) Themes(views []curator.ThemeView) {
	p.Header("Themes")
	t := p.NewTable([]string{"Day", "Theme", "Stories", "Source", "Status"})
	for _, v := range views {
		source, status := "-", "unknown"
		if v.Meta != nil {
			source, status = string(v.Meta.Source), string(v.Meta.Status)
		}
		t.AddRow(strconv.Itoa(v.Day), v.Name, strconv.Itoa(v.StoryCount), source, p.StatusBadge(status))
	}
	t.Render()
}

// Changes prints the change log.
func (p *Printer) Changes(changes []curator.Change) {
	p.Header(fmt.Sprintf("Changes (%d)", len(changes)))
	if len(changes) == 0 {
		p.Print("%s", p.Dim("no changes"))
		return
	}
	for _, c := range changes {
		p.Print("%3d. %s %s", c.Seq, p.Dim(c.At.Local().Format(time.Kitchen)), c.Message)
	}
}

// Diff prints placements that differ between the original and working copy.
func (p *Printer) Diff(placements []curator.Placement) {
	p.Header("Placement changes")
	if len(placements) == 0 {
		p.Print("%s", p.Dim("no placement changes"))
		return
	}
	t := p.NewTable([]string{"Story", "Before", "After"})
	for _, pl := range placements {
		t.AddRow(pl.Headline, position(pl.Before), position(pl.After))
	}
	t.Render()
}

func position(pos *curator.Position) string {
	switch {
	case pos == nil:
		return "-"
	case pos.Day == 0:
		return fmt.Sprintf("unused #%d", pos.Index)
	default:
		return fmt.Sprintf("day %d %s #%d", pos.Day, pos.Slot, pos.Index)
	}
}

// Validation prints a validation report.
func (p *Printer) Validation(r *curator.ValidationReport) {
	for _, e := range r.Errors {
		p.Error("%s", e)
	}
	for _, w := range r.Warnings {
		p.Warning("%s", w)
	}
	if r.Valid {
		p.Success("edition is valid")
	}
}
