package curator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ftnpaper/curator/internal/collab"
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/errors"
	"github.com/ftnpaper/curator/internal/persist"
	"github.com/ftnpaper/curator/internal/theme"
)

// SaveInput contains parameters for the Save operation.
type SaveInput struct {
	// Path defaults to config output_path.
	Path string

	// Teasers generates tomorrow teasers for days 1-3 before writing.
	Teasers bool
}

// SaveOutput contains the result of the Save operation.
type SaveOutput struct {
	Path        string   `json:"path"`
	Bytes       int      `json:"bytes"`
	TeaserDays  []int    `json:"teaser_days,omitempty"`
	TeaserFails []int    `json:"teaser_failures,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Save validates the working copy and writes the final output (no unused
// pool). A failed validation writes nothing. Teaser failures leave the field
// blank and never abort the save.
func (c *Curator) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	path := input.Path
	if path == "" {
		path = c.cfg.OutputPath
	}
	if path == "" {
		return nil, errors.NewInvalidRequest("output path is required")
	}

	report := c.ValidateData()
	if !report.Valid {
		return nil, errors.NewValidationFailed(report.Errors)
	}

	out := &SaveOutput{Path: path, Warnings: report.Warnings}
	if input.Teasers {
		out.TeaserDays, out.TeaserFails = c.generateTeasers(ctx)
	}

	w, err := persist.Write(ctx, path, c.cfg, c.working, edition.EncodeOptions{})
	if err != nil {
		return nil, err
	}
	out.Bytes = w.Bytes

	c.log.Info("saved edition", zap.String("path", path), zap.Int("bytes", w.Bytes))
	return out, nil
}

// generateTeasers fills tomorrow_teaser for each day that has a following day.
func (c *Curator) generateTeasers(ctx context.Context) (done, failed []int) {
	if c.rewriter == nil {
		c.warn(0, "no rewriter configured; teasers skipped")
		return nil, nil
	}

	for n := 1; n < theme.NumDays; n++ {
		d, next := c.working.Day(n), c.working.Day(n+1)
		if d == nil || next == nil {
			continue
		}

		req := collab.TeaserRequest{TomorrowTheme: next.Theme}
		if next.Main != nil {
			req.MainTitle = next.Main.Title
		}
		if next.Second != nil {
			req.SecondTitle = next.Second.Title
		}

		teaser, err := c.rewriter.Teaser(ctx, req)
		if err != nil {
			d.TomorrowTeaser = ""
			failed = append(failed, n)
			c.warn(n, fmt.Sprintf("teaser for day %d failed: %v", n, err))
			continue
		}
		d.TomorrowTeaser = teaser
		done = append(done, n)
	}
	return done, failed
}
