// Package collab defines the external collaborators the curator calls out to:
// a content rewriter (story rewrites and tomorrow teasers) and a classifier
// that regroups stories into days. Deterministic defaults are provided so the
// curator runs without a model behind it.
package collab

import (
	"context"

	"github.com/ftnpaper/curator/internal/theme"
)

// RewriteRequest carries a story to rewrite for a day's theme.
type RewriteRequest struct {
	Content   string
	SourceURL string
	Theme     string
	Title     string // optional
}

// Rewritten is a rewriter's answer.
type Rewritten struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// TeaserRequest describes tomorrow's edition.
type TeaserRequest struct {
	TomorrowTheme string
	MainTitle     string // optional
	SecondTitle   string // optional
}

// Rewriter produces rewritten stories and tomorrow teasers.
type Rewriter interface {
	Rewrite(ctx context.Context, req RewriteRequest) (*Rewritten, error)
	Teaser(ctx context.Context, req TeaserRequest) (string, error)
}

// Item is one story handed to the classifier.
type Item struct {
	ID              string   `json:"id"`
	Headline        string   `json:"headline"`
	Content         string   `json:"content,omitempty"`
	PrimaryTheme    string   `json:"primary_theme"`
	SecondaryThemes []string `json:"secondary_themes,omitempty"`
	Strength        int      `json:"story_strength"`
	Length          int      `json:"length"`
}

// ClassifyRequest is everything the classifier needs to regroup an edition.
type ClassifyRequest struct {
	Stories     []Item
	Blocklisted []string
	Themes      []theme.Definition
}

// DayGroup is one day of a classifier's answer, by story ID.
type DayGroup struct {
	Day               int      `json:"day"`
	Theme             string   `json:"theme"`
	Main              string   `json:"main"`
	Second            string   `json:"second,omitempty"`
	Minis             []string `json:"minis"`
	HighStrengthCount int      `json:"high_strength_count"`
}

// Grouping is a classifier's answer: enough to rebuild the four days.
// Stories it does not mention end up in the unused pool.
type Grouping struct {
	Days   []DayGroup `json:"days"`
	Unused []string   `json:"unused,omitempty"`
}

// Classifier regroups stories into themed days.
type Classifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (*Grouping, error)
}
