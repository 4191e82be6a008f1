// Package proof renders a finalized edition as a single HTML page for
// proofreading before it goes to the PDF renderer.
package proof

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/ftnpaper/curator/internal/comics"
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/story"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData is the template data for the proof page.
type PageData struct {
	Title       string
	GeneratedAt string
	Days        []DayData
}

// DayData is one day section.
type DayData struct {
	Number   int
	Theme    string
	Warnings []string
	Stories  []StoryData
	Teaser   string
	Comic    *comics.Comic
}

// StoryData is one rendered story.
type StoryData struct {
	Index int
	Slot  edition.SlotKind
	Title string
	Body  template.HTML
	Chars int
	Links []string
}

// Renderer converts story content (markdown) to sanitised HTML and lays the
// edition out with the embedded template.
type Renderer struct {
	tmpl   *template.Template
	md     goldmark.Markdown
	policy *bluemonday.Policy
	now    func() time.Time
}

// NewRenderer parses the embedded template.
func NewRenderer() *Renderer {
	funcMap := template.FuncMap{
		"formatChars": formatChars,
	}
	tmpl := template.Must(template.New("proof").Funcs(funcMap).ParseFS(templateFS, "templates/proof.html"))

	// Story content comes from scraped newsletters; allow UGC markup only.
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{tmpl: tmpl, md: goldmark.New(), policy: p, now: time.Now}
}

// Render writes the proof page for every present day. The unused pool is not shown.
func (r *Renderer) Render(w io.Writer, e *edition.Edition, title string) error {
	if title == "" {
		title = "Edition proof"
	}
	data := PageData{
		Title:       title,
		GeneratedAt: r.now().UTC().Format("2006-01-02 15:04 MST"),
	}
	for _, d := range e.Days {
		if d == nil {
			continue
		}
		data.Days = append(data.Days, r.day(d))
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "proof", data); err != nil {
		return fmt.Errorf("render proof: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (r *Renderer) day(d *edition.Day) DayData {
	dd := DayData{
		Number: d.Number,
		Theme:  d.Theme,
		Teaser: d.TomorrowTeaser,
		Comic:  d.Comic,
	}
	if d.Main == nil {
		dd.Warnings = append(dd.Warnings, "No main story.")
	}
	if d.OverCapacity() {
		dd.Warnings = append(dd.Warnings, fmt.Sprintf("Over capacity (%d/%d).", d.Total(), d.Limit()))
	}
	for i := 1; i <= d.Total(); i++ {
		s, slot := d.StoryAt(i)
		if s == nil {
			continue
		}
		dd.Stories = append(dd.Stories, StoryData{
			Index: i,
			Slot:  slot,
			Title: s.Title,
			Body:  r.markdown(s.Content),
			Chars: story.CountChars(s.Content),
			Links: s.URLs(),
		})
	}
	return dd
}

// markdown converts content to HTML and sanitises the result.
func (r *Renderer) markdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(r.policy.Sanitize(buf.String()))
}

// formatChars formats an integer with comma thousands separators.
func formatChars(n int) string {
	if n < 0 {
		return "-" + formatChars(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
