package curator

import (
	"context"
	"fmt"

	"github.com/ftnpaper/curator/internal/collab"
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/errors"
	"github.com/ftnpaper/curator/internal/story"
)

// RewriteInput contains parameters for the RewriteStory operation.
// An index-only Story ref is read within Day.
type RewriteInput struct {
	Day   int
	Story StoryRef
}

// RewriteOutput contains the result of the RewriteStory operation.
type RewriteOutput struct {
	StoryID string `json:"story_id"`
	Title   string `json:"title"`
	Changed bool   `json:"changed"`
}

// RewriteStory runs a placed story through the rewriter for its day's theme
// and puts the rewritten copy in the same slot. The copy keeps the story's ID
// and links; a new title clears the TUI headline. On rewriter failure the
// story is left as it was.
func (c *Curator) RewriteStory(ctx context.Context, input RewriteInput) (*RewriteOutput, error) {
	d, err := c.existingDay(input.Day)
	if err != nil {
		return nil, err
	}
	r, err := c.resolveInDay(input.Story, input.Day)
	if err != nil {
		return nil, err
	}
	if c.rewriter == nil {
		return nil, errors.NewInvalidRequest("no rewriter configured")
	}

	src := r.Story
	res, err := c.rewriter.Rewrite(ctx, collab.RewriteRequest{
		Content:   src.Content,
		SourceURL: firstURL(src),
		Theme:     d.Theme,
		Title:     src.Title,
	})
	if err == nil && (res == nil || story.CollapseSpace(res.Content) == "") {
		err = fmt.Errorf("empty rewrite")
	}
	if err != nil {
		c.warn(input.Day, fmt.Sprintf("rewrite of %q failed, keeping the original: %v", src.ShortTitle(), err))
		return nil, errors.NewCollaboratorFailed("rewriter", err)
	}

	title := story.CollapseSpace(res.Title)
	if title == "" {
		title = src.Title
	}
	out := &RewriteOutput{StoryID: src.ID, Title: title}
	if title == src.Title && res.Content == src.Content {
		return out, nil
	}

	rewritten := src.Clone()
	rewritten.Title, rewritten.Content = title, res.Content
	if title != src.Title {
		rewritten.TUIHeadline = ""
	}
	replaceInSlot(d, r.Slot, src.ID, rewritten)
	out.Changed = true

	c.record(ctx, ChangeRewrite, input.Day, src.ID,
		fmt.Sprintf("Rewrote %q in day %d", rewritten.ShortTitle(), input.Day))
	return out, nil
}

func replaceInSlot(d *edition.Day, slot edition.SlotKind, id string, s *story.Story) {
	switch slot {
	case edition.SlotMain:
		d.Main = s
	case edition.SlotSecond:
		d.Second = s
	case edition.SlotMini:
		if pos := d.MiniPos(id); pos >= 0 {
			d.Minis[pos] = s
		}
	}
}

func firstURL(s *story.Story) string {
	if urls := s.URLs(); len(urls) > 0 {
		return urls[0]
	}
	return ""
}
