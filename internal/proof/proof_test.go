package proof

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ftnpaper/curator/internal/comics"
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/story"
)

func sample() *edition.Edition {
	e := edition.New()
	d := e.EnsureDay(1, "Health & Medicine")
	d.Main = &story.Story{
		ID:         "m",
		Title:      "Malaria vaccine rollout",
		Content:    "Cases **fell** by half.\n\n<script>alert(1)</script>",
		SourceURLs: []string{"https://who.int/report"},
	}
	d.Minis = []*story.Story{{ID: "a", Title: "Clean water", Content: "Wells [dug](https://example.org)."}}
	d.TomorrowTeaser = "Tomorrow in Climate."
	d.Comic = &comics.Comic{Title: "Sunny", ImageURL: "https://img/sunny.png"}

	e.EnsureDay(3, "Society & Human Rights")
	e.Unused = []*story.Story{{ID: "u", Title: "Unused headline"}}
	return e
}

func render(t *testing.T, e *edition.Edition) string {
	t.Helper()
	r := NewRenderer()
	r.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	var buf bytes.Buffer
	if err := r.Render(&buf, e, "Week 10"); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestRender_Content(t *testing.T) {
	out := render(t, sample())

	for _, want := range []string{
		"<title>Week 10</title>",
		"Day 1: Health &amp; Medicine",
		"Malaria vaccine rollout",
		"<strong>fell</strong>",
		`href="https://who.int/report"`,
		"Tomorrow in Climate.",
		"Sunny",
		"#2 mini",
		"Generated 2026-03-02 09:00 UTC",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("proof missing %q", want)
		}
	}
}

func TestRender_SanitisesAndSkipsUnused(t *testing.T) {
	out := render(t, sample())

	if strings.Contains(out, "<script>") {
		t.Error("script tag survived sanitising")
	}
	if !strings.Contains(out, `rel="nofollow`) {
		t.Error("links should be nofollow")
	}
	if strings.Contains(out, "Unused headline") {
		t.Error("unused pool must not appear in the proof")
	}
}

func TestRender_DayWarnings(t *testing.T) {
	out := render(t, sample())
	if !strings.Contains(out, "Day 3: Society &amp; Human Rights") {
		t.Error("empty day 3 should still get a section")
	}
	if !strings.Contains(out, "No main story.") {
		t.Error("missing main warning")
	}
}

func TestFormatChars(t *testing.T) {
	tests := map[int]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -4200: "-4,200"}
	for n, want := range tests {
		if got := formatChars(n); got != want {
			t.Errorf("formatChars(%d) = %q, want %q", n, got, want)
		}
	}
}
