package curator

import (
	"context"
	"fmt"

	"github.com/ftnpaper/curator/internal/comics"
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/errors"
	"github.com/ftnpaper/curator/internal/story"
	"github.com/ftnpaper/curator/internal/theme"
)

// ThemeInput contains parameters for the RenameTheme operation.
type ThemeInput struct {
	Day  int
	Name string
}

// ThemeOutput contains the result of the RenameTheme operation.
type ThemeOutput struct {
	Day     int         `json:"day"`
	Changed bool        `json:"changed"`
	Meta    *theme.Meta `json:"meta"`
}

// RenameTheme sets a day's theme name and marks its metadata as edited.
func (c *Curator) RenameTheme(ctx context.Context, input ThemeInput) (*ThemeOutput, error) {
	d, err := c.existingDay(input.Day)
	if err != nil {
		return nil, err
	}
	name := story.CollapseSpace(input.Name)
	if name == "" {
		return nil, errors.NewInvalidRequest("theme name is required")
	}

	meta := c.working.Meta(input.Day).Clone()
	if name == d.Theme {
		return &ThemeOutput{Day: input.Day, Changed: false, Meta: meta}, nil
	}
	if meta == nil {
		meta = theme.NewMeta(name, theme.SourceEdited)
		meta.StoryCount = len(d.Stories())
	}
	meta.Name = name
	meta.Key = theme.Key(name)
	meta.Source = theme.SourceEdited

	old := d.Theme
	d.Theme = name
	c.working.SetMeta(input.Day, meta)

	c.record(ctx, ChangeTheme, input.Day, "",
		fmt.Sprintf("Renamed day %d theme from %q to %q", input.Day, old, name))
	return &ThemeOutput{Day: input.Day, Changed: true, Meta: meta.Clone()}, nil
}

// ThemeView is one day's theme as shown in the theme review.
type ThemeView struct {
	Day        int         `json:"day"`
	Name       string      `json:"name"`
	StoryCount int         `json:"story_count"`
	Meta       *theme.Meta `json:"meta,omitempty"`
}

// Themes lists the theme of every present day.
func (c *Curator) Themes() []ThemeView {
	var out []ThemeView
	for _, d := range c.working.Days {
		if d == nil {
			continue
		}
		out = append(out, ThemeView{
			Day:        d.Number,
			Name:       d.Theme,
			StoryCount: len(d.Stories()),
			Meta:       c.working.Meta(d.Number).Clone(),
		})
	}
	return out
}

// ComicInput contains parameters for the SetComic operation. A nil Comic clears it.
type ComicInput struct {
	Day   int
	Comic *comics.Comic
}

// SetComic attaches the picked comic to a day.
func (c *Curator) SetComic(ctx context.Context, input ComicInput) (*edition.Day, error) {
	d, err := c.existingDay(input.Day)
	if err != nil {
		return nil, err
	}
	d.Comic = input.Comic.Clone()

	msg := fmt.Sprintf("Cleared the comic of day %d", input.Day)
	if d.Comic != nil {
		msg = fmt.Sprintf("Set day %d comic to %q", input.Day, d.Comic.Title)
	}
	c.record(ctx, ChangeComic, input.Day, "", msg)
	return d, nil
}
