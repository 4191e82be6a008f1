package curator

import (
	"fmt"

	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/story"
)

// detached describes a story taken out of a day.
type detached struct {
	story    *story.Story
	slot     edition.SlotKind
	miniPos  int          // former mini position, -1 otherwise
	promoted *story.Story // story moved up into main, if any
}

// detach removes story id from day d. Taking the main story promotes the
// second story, else the first mini; with neither the main slot is left
// empty and a warning is emitted.
func (c *Curator) detach(d *edition.Day, id string) detached {
	switch {
	case d.Main != nil && d.Main.ID == id:
		out := detached{story: d.Main, slot: edition.SlotMain, miniPos: -1}
		switch {
		case d.Second != nil:
			d.Main, d.Second = d.Second, nil
			out.promoted = d.Main
		case len(d.Minis) > 0:
			d.Main = d.Minis[0]
			d.Minis = append([]*story.Story(nil), d.Minis[1:]...)
			out.promoted = d.Main
		default:
			d.Main = nil
			c.warn(d.Number, fmt.Sprintf("day %d has no main story", d.Number))
		}
		return out

	case d.Second != nil && d.Second.ID == id:
		out := detached{story: d.Second, slot: edition.SlotSecond, miniPos: -1}
		d.Second = nil
		return out

	default:
		s, pos := d.RemoveMini(id)
		return detached{story: s, slot: edition.SlotMini, miniPos: pos}
	}
}

func (dt detached) note() string {
	if dt.promoted == nil {
		return ""
	}
	return fmt.Sprintf(" (promoted %q to main)", dt.promoted.ShortTitle())
}
