package output

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ftnpaper/curator/internal/curator"
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/story"
	"github.com/ftnpaper/curator/internal/theme"
)

func testPrinter(quiet bool) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	p := NewPrinter(PrinterOptions{ColorMode: ColorNever, Quiet: quiet, Out: &stdout, Err: &stderr})
	return p, &stdout, &stderr
}

func TestParseColorMode_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  ColorMode
	}{
		{"", ColorAuto},
		{"auto", ColorAuto},
		{"always", ColorAlways},
		{"never", ColorNever},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColorMode(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseColorMode(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColorMode_Invalid(t *testing.T) {
	if _, err := ParseColorMode("rainbow"); err == nil {
		t.Error("expected error for invalid color mode, got nil")
	}
}

func TestResolveColors(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !ResolveColors(ColorAlways) {
		t.Error("ColorAlways should win over NO_COLOR")
	}
	if ResolveColors(ColorAuto) {
		t.Error("ColorAuto with NO_COLOR set should be off")
	}
	if ResolveColors(ColorNever) {
		t.Error("ColorNever should be off")
	}
}

func TestResolveColors_TermDumb(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	t.Setenv("TERM", "dumb")
	if ResolveColors(ColorAuto) {
		t.Error("ColorAuto with TERM=dumb should be off")
	}
}

func TestQuietMode(t *testing.T) {
	p, stdout, stderr := testPrinter(true)

	p.Info("hidden")
	p.Success("hidden")
	p.Warning("hidden")
	p.Header("hidden")
	p.Print("hidden")
	tbl := p.NewTable([]string{"a"})
	tbl.AddRow("hidden")
	tbl.Render()

	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("quiet printer wrote %q / %q", stdout.String(), stderr.String())
	}

	p.Error("shown")
	if !strings.Contains(stderr.String(), "[ERROR] shown") {
		t.Errorf("Error should not be suppressed, got %q", stderr.String())
	}
}

func TestPlainPrefixes(t *testing.T) {
	p, stdout, stderr := testPrinter(false)
	p.Success("saved")
	p.Warning("careful")
	p.Header("Day 1")

	if !strings.Contains(stdout.String(), "[OK] saved") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Day 1\n-----") {
		t.Errorf("header underline missing: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "[WARN] careful") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if got := p.StatusBadge("weak"); got != "[weak]" {
		t.Errorf("StatusBadge = %q", got)
	}
}

func TestDay_ShowsIndexesAndWarnings(t *testing.T) {
	p, stdout, stderr := testPrinter(false)
	d := edition.NewDay(2, "Climate & Environment")
	d.Main = &story.Story{ID: "m", Title: "Forests return", SourceURL: "https://f"}
	d.Minis = []*story.Story{{ID: "a", Title: "Solar record"}}
	d.TomorrowTeaser = "Tomorrow in Science."

	p.Day(d, "default, weak")

	out := stdout.String()
	for _, want := range []string{"Day 2: Climate & Environment (2/5)", "Forests return", "Solar record", "https://f", "default, weak", "Tomorrow in Science."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected warnings: %q", stderr.String())
	}

	d.Main = nil
	p.Day(d, "")
	if !strings.Contains(stderr.String(), "day 2 has no main story") {
		t.Errorf("missing main warning, got %q", stderr.String())
	}
}

func TestUnused_Empty(t *testing.T) {
	p, stdout, _ := testPrinter(false)
	p.Unused(nil)
	if !strings.Contains(stdout.String(), "Unused (0)") || !strings.Contains(stdout.String(), "(empty)") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestThemesChangesDiff(t *testing.T) {
	p, stdout, _ := testPrinter(false)

	p.Themes([]curator.ThemeView{{Day: 1, Name: "Health", StoryCount: 4,
		Meta: &theme.Meta{Source: theme.SourceEdited, Status: theme.StatusHealthy}}})
	p.Changes([]curator.Change{{Seq: 1, Message: "Moved \"x\" from day 1 to day 2", At: time.Now()}})
	p.Diff([]curator.Placement{{
		Headline: "x",
		Before:   &curator.Position{Day: 1, Slot: edition.SlotMini, Index: 3},
		After:    &curator.Position{Day: 0, Slot: edition.SlotUnused, Index: 1},
	}})

	out := stdout.String()
	for _, want := range []string{"Health", "[healthy]", "Moved \"x\" from day 1 to day 2", "day 1 mini #3", "unused #1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestValidation(t *testing.T) {
	p, stdout, stderr := testPrinter(false)
	p.Validation(&curator.ValidationReport{Valid: true, Warnings: []string{"day 3: no mini articles"}})
	if !strings.Contains(stdout.String(), "edition is valid") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "day 3: no mini articles") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
