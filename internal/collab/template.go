package collab

import (
	"context"
	"fmt"
	"strings"

	"github.com/ftnpaper/curator/internal/story"
)

// TemplateRewriter is a Rewriter that never calls out: rewrites normalise
// whitespace and teasers are assembled from a fixed template.
type TemplateRewriter struct {
	// MaxTitle truncates teaser headlines; 0 means story.ShortTitleMax.
	MaxTitle int
}

// Rewrite implements Rewriter.
func (t *TemplateRewriter) Rewrite(ctx context.Context, req RewriteRequest) (*Rewritten, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content := story.CollapseSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("nothing to rewrite")
	}
	title := story.CollapseSpace(req.Title)
	if title == "" {
		title = story.Truncate(content, t.maxTitle())
	}
	return &Rewritten{Title: title, Content: content}, nil
}

// Teaser implements Rewriter.
func (t *TemplateRewriter) Teaser(ctx context.Context, req TeaserRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	themeName := story.CollapseSpace(req.TomorrowTheme)
	if themeName == "" {
		return "", fmt.Errorf("tomorrow's theme is required")
	}

	var heads []string
	for _, h := range []string{req.MainTitle, req.SecondTitle} {
		if h = story.CollapseSpace(h); h != "" {
			heads = append(heads, story.Truncate(h, t.maxTitle()))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tomorrow in %s", themeName)
	if len(heads) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(heads, " and "))
	}
	b.WriteString(".")
	return b.String(), nil
}

func (t *TemplateRewriter) maxTitle() int {
	if t.MaxTitle > 0 {
		return t.MaxTitle
	}
	return story.ShortTitleMax
}
