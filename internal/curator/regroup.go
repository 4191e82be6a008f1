package curator

import (
	"context"
	"fmt"

	"github.com/ftnpaper/curator/internal/collab"
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/errors"
	"github.com/ftnpaper/curator/internal/story"
	"github.com/ftnpaper/curator/internal/theme"
)

// RegroupInput contains parameters for the Regroup operation.
type RegroupInput struct {
	// Themes defaults to the configured theme table.
	Themes      []theme.Definition
	Blocklisted []string
}

// RegroupOutput contains the result of the Regroup operation.
type RegroupOutput struct {
	Placed  int      `json:"placed"`
	Unused  int      `json:"unused"`
	Ignored []string `json:"ignored,omitempty"`
}

// Regroup hands every story to the classifier and replaces the days and the
// unused pool wholesale with its answer. Stories the answer does not place
// land in the unused pool; unknown IDs are ignored. On classifier failure the
// working copy is left as it was.
func (c *Curator) Regroup(ctx context.Context, input RegroupInput) (*RegroupOutput, error) {
	if c.classifier == nil {
		return nil, errors.NewInvalidRequest("no classifier configured")
	}
	defs := input.Themes
	if len(defs) == 0 {
		defs = c.cfg.ThemeTable()
	}

	grouping, err := c.classifier.Classify(ctx, collab.ClassifyRequest{
		Stories:     c.classifyItems(defs),
		Blocklisted: input.Blocklisted,
		Themes:      defs,
	})
	if err != nil {
		c.warn(0, fmt.Sprintf("regroup failed, keeping current assignments: %v", err))
		return nil, errors.NewCollaboratorFailed("classifier", err)
	}
	if grouping == nil {
		grouping = &collab.Grouping{}
	}

	pool := make(map[string]*story.Story)
	order := c.working.AllStories()
	for _, s := range order {
		pool[s.ID] = s
	}
	out := &RegroupOutput{}
	take := func(id string) *story.Story {
		if id == "" {
			return nil
		}
		s, ok := pool[id]
		if !ok {
			out.Ignored = append(out.Ignored, id)
			return nil
		}
		delete(pool, id)
		return s
	}

	rebuilt := edition.New()
	for _, g := range grouping.Days {
		if !edition.ValidDay(g.Day) || rebuilt.Day(g.Day) != nil {
			continue
		}
		name := g.Theme
		if name == "" {
			if def, ok := theme.ForDay(defs, g.Day); ok {
				name = def.Name
			}
		}
		d := rebuilt.EnsureDay(g.Day, name)
		if prev := c.working.Day(g.Day); prev != nil {
			d.FrontPage, d.Statistics = prev.FrontPage, prev.Statistics
			d.TomorrowTeaser, d.Comic = prev.TomorrowTeaser, prev.Comic
		}

		d.Main = take(g.Main)
		d.Second = take(g.Second)
		for _, id := range g.Minis {
			if s := take(id); s != nil {
				d.Minis = append(d.Minis, s)
			}
		}
		if d.Main == nil {
			switch {
			case d.Second != nil:
				d.Main, d.Second = d.Second, nil
			case len(d.Minis) > 0:
				d.Main, d.Minis = d.Minis[0], d.Minis[1:]
			}
		}

		source := theme.SourceGenerated
		if theme.IsDefaultName(g.Day, name) {
			source = theme.SourceDefault
		}
		meta := theme.NewMeta(name, source)
		meta.StoryCount = len(d.Stories())
		meta.HighStrengthCount = g.HighStrengthCount
		meta.Status = theme.Assess(meta.StoryCount, meta.HighStrengthCount)
		rebuilt.SetMeta(g.Day, meta)
		out.Placed += meta.StoryCount
	}

	for _, id := range grouping.Unused {
		if s := take(id); s != nil {
			rebuilt.Unused = append(rebuilt.Unused, s)
		}
	}
	// Nothing is lost: unplaced stories go to the unused pool in their old order.
	for _, s := range order {
		if _, left := pool[s.ID]; left {
			rebuilt.Unused = append(rebuilt.Unused, s)
		}
	}
	out.Unused = len(rebuilt.Unused)

	c.working.Days = rebuilt.Days
	c.working.Unused = rebuilt.Unused
	c.working.ThemeMeta = rebuilt.ThemeMeta

	c.record(ctx, ChangeRegroup, 0, "",
		fmt.Sprintf("Regrouped stories: %d placed, %d unused", out.Placed, out.Unused))
	return out, nil
}

// classifyItems flattens every story, tagged with its current day's theme key.
// Strength comes from the story's current slot; secondary themes are the
// other themes its keywords match.
func (c *Curator) classifyItems(defs []theme.Definition) []collab.Item {
	var items []collab.Item
	add := func(s *story.Story, key string, slot edition.SlotKind) {
		var secondary []string
		for _, k := range collab.MatchThemes(s.Title+" "+s.Content, defs) {
			if k != key {
				secondary = append(secondary, k)
			}
		}
		items = append(items, collab.Item{
			ID:              s.ID,
			Headline:        s.Title,
			Content:         s.Content,
			PrimaryTheme:    key,
			SecondaryThemes: secondary,
			Strength:        slotStrength(slot),
			Length:          story.CountChars(s.Content),
		})
	}
	for _, d := range c.working.Days {
		if d == nil {
			continue
		}
		key := theme.Key(d.Theme)
		if d.Main != nil {
			add(d.Main, key, edition.SlotMain)
		}
		if d.Second != nil {
			add(d.Second, key, edition.SlotSecond)
		}
		for _, s := range d.Minis {
			add(s, key, edition.SlotMini)
		}
	}
	for _, s := range c.working.Unused {
		add(s, "", edition.SlotUnused)
	}
	return items
}

// Editorial strength by placement: leads are strong, minis weak.
const (
	strengthLead   = 3
	strengthSecond = 2
	strengthMini   = 1
)

func slotStrength(slot edition.SlotKind) int {
	switch slot {
	case edition.SlotMain:
		return strengthLead
	case edition.SlotSecond:
		return strengthSecond
	case edition.SlotMini:
		return strengthMini
	default:
		return 0
	}
}
