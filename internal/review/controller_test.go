package review

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftnpaper/curator/internal/collab"
	"github.com/ftnpaper/curator/internal/comics"
	"github.com/ftnpaper/curator/internal/config"
	"github.com/ftnpaper/curator/internal/curator"
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/output"
	"github.com/ftnpaper/curator/internal/story"
)

func newStory(title string) *story.Story {
	return &story.Story{ID: story.NewID(), Title: title, Content: title + " body"}
}

func minis(prefix string, n int) []*story.Story {
	var out []*story.Story
	for i := 1; i <= n; i++ {
		out = append(out, newStory(fmt.Sprintf("%s-mini-%d", prefix, i)))
	}
	return out
}

// sampleEdition: day 1 with second and 3 minis, day 2 full (5/5), day 3 main
// plus one mini, day 4 absent, two unused stories.
func sampleEdition() *edition.Edition {
	e := edition.New()
	d1 := e.EnsureDay(1, "Health & Medicine")
	d1.Main, d1.Second, d1.Minis = newStory("d1-main"), newStory("d1-second"), minis("d1", 3)
	d2 := e.EnsureDay(2, "Climate & Environment")
	d2.Main, d2.Minis = newStory("d2-main"), minis("d2", 4)
	d3 := e.EnsureDay(3, "Society & Human Rights")
	d3.Main, d3.Minis = newStory("d3-main"), minis("d3", 1)
	e.Unused = []*story.Story{newStory("spare-1"), newStory("spare-2")}
	return e
}

type session struct {
	cur    *curator.Curator
	ctl    *Controller
	out    *bytes.Buffer
	errOut *bytes.Buffer
	dir    string
}

func newSession(t *testing.T, script []string, opts Options) *session {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.AllowedPaths = []string{dir}

	var out, errOut bytes.Buffer
	cur := curator.New(sampleEdition(), curator.Options{Config: cfg, Rewriter: &collab.TemplateRewriter{}})
	opts.Prompt = NewPrompter(strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	opts.Printer = output.NewPrinter(output.PrinterOptions{ColorMode: output.ColorNever, Out: &out, Err: &errOut})
	return &session{cur: cur, ctl: New(cur, opts), out: &out, errOut: &errOut, dir: dir}
}

func TestRun_FullWorkflowSaves(t *testing.T) {
	script := []string{
		"rename 2 Planet Watch", "", // themes
		"restore 1 3", "", // unused
		"unuse 3", "", // day 1
		"", // day 2
		"", // day 3 (day 4 absent, no comics)
		"y",
	}
	s := newSession(t, script, Options{})
	s.ctl.output = filepath.Join(s.dir, "edition.json")

	res, err := s.ctl.Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, res.Saved)
	assert.Equal(t, 3, res.Changes)
	assert.Equal(t, StepDone, s.ctl.Step())
	_, err = os.Stat(res.Saved.Path)
	assert.NoError(t, err)

	w := s.cur.Working()
	assert.Equal(t, "Planet Watch", w.Day(2).Theme)
	assert.Len(t, w.Day(3).Minis, 2)
	assert.Len(t, w.Day(1).Minis, 2)
	assert.Contains(t, s.out.String(), "[OK] Renamed day 2 theme")
}

func TestRun_OverflowPromptsOperator(t *testing.T) {
	script := []string{
		"", "", // themes, unused
		"move 3 2",        // day 1: day 2 is full
		"maybe", "swap 2", // first answer is malformed
		"force", "force", "", // finish day 1, 2, 3
		"n",
	}
	s := newSession(t, script, Options{})
	moving, _ := s.cur.StoryAt(1, 3)
	victim, _ := s.cur.StoryAt(2, 2)

	_, err := s.ctl.Run(context.Background())
	require.NoError(t, err)

	got, _ := s.cur.StoryAt(2, 2)
	assert.Equal(t, moving.ID, got.ID)
	loc, ok := s.cur.Working().Locate(victim.ID)
	require.True(t, ok)
	assert.Equal(t, 1, loc.Day)
	assert.Contains(t, s.errOut.String(), "day 2 is full (5/5)")
	assert.Contains(t, s.errOut.String(), "expected 'swap N'")
}

func TestRun_OverCapacityBlocksDone(t *testing.T) {
	script := []string{
		"",                // themes
		"restore 1 2", "", // unused: day 2 goes to 6/5
		"",                    // day 1
		"done", "unuse 6", "", // day 2: refused, then fixed
		"", // day 3
		"n",
	}
	s := newSession(t, script, Options{})

	_, err := s.ctl.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, s.errOut.String(), "day 2 is over capacity (6/5); move or unuse stories")
	assert.Equal(t, 5, s.cur.Working().Day(2).Total())
	assert.Len(t, s.cur.Working().Unused, 2)
}

func TestRun_ComicPick(t *testing.T) {
	strips := comics.Static{{Title: "Sunny"}, {Title: "Rainy"}}
	script := []string{"", "", "", "force", "", "pick 9", "pick 2", "n"}
	s := newSession(t, script, Options{Comics: strips, ComicDay: 3})

	_, err := s.ctl.Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, s.cur.Working().Day(3).Comic)
	assert.Equal(t, "Rainy", s.cur.Working().Day(3).Comic.Title)
	assert.Contains(t, s.errOut.String(), "pick a number between 1 and 2")
}

func TestRun_InvalidEditionReturnsToDay(t *testing.T) {
	script := []string{
		"", "", "", "", "", // themes, unused, days 1-3
		"swap 2", "", // back on day 3: promote the mini to main
		"n",
	}
	s := newSession(t, script, Options{})
	s.cur.Working().Day(3).Main = nil

	_, err := s.ctl.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, s.errOut.String(), "day 3: missing main story")
	assert.Contains(t, s.errOut.String(), "returning to day 3")
	assert.Equal(t, "d3-mini-1", s.cur.Working().Day(3).Main.Title)
}

func TestRun_ErrorsDoNotEndReview(t *testing.T) {
	script := []string{"rename 9 X", "frobnicate", "", "restore 7 1", "", "swap x", "", "", "", "n"}
	s := newSession(t, script, Options{})

	_, err := s.ctl.Run(context.Background())
	require.NoError(t, err)

	errs := s.errOut.String()
	assert.Contains(t, errs, "INVALID_DAY")
	assert.Contains(t, errs, `unknown command "frobnicate"`)
	assert.Contains(t, errs, "INVALID_INDEX")
	assert.Contains(t, errs, `"x" is not a number`)
	assert.Empty(t, s.cur.Changes())
}

func TestRun_QuitAndEOF(t *testing.T) {
	s := newSession(t, []string{"", "quit"}, Options{})
	_, err := s.ctl.Run(context.Background())
	assert.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, StepUnused, s.ctl.Step())

	s = newSession(t, []string{""}, Options{})
	_, err = s.ctl.Run(context.Background())
	assert.ErrorIs(t, err, ErrQuit)
}

func TestRun_NoOutputPathSkipsSave(t *testing.T) {
	s := newSession(t, []string{"", "", "", "", ""}, Options{})

	res, err := s.ctl.Run(context.Background())
	require.NoError(t, err)

	assert.Nil(t, res.Saved)
	assert.Equal(t, StepDone, s.ctl.Step())
	assert.Contains(t, s.errOut.String(), "no output path configured")
	assert.NotContains(t, s.out.String(), "Save edition?")
}

func TestRun_RewriteCommand(t *testing.T) {
	s := newSession(t, []string{"", "", "rewrite 3", "", "", ""}, Options{})
	target := s.cur.Working().Day(1).Minis[0]
	target.Content = "Cases   fell\n by half."

	_, err := s.ctl.Run(context.Background())
	require.NoError(t, err)

	got := s.cur.Working().Day(1).Minis[0]
	assert.Equal(t, target.ID, got.ID)
	assert.Equal(t, "Cases fell by half.", got.Content)
	require.Len(t, s.cur.Changes(), 1)
	assert.Equal(t, curator.ChangeRewrite, s.cur.Changes()[0].Kind)
	assert.Contains(t, s.out.String(), "[OK] Rewrote")
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "themes", StepThemes.String())
	assert.Equal(t, "day 3", StepDay3.String())
	assert.Equal(t, 4, StepDay4.Day())
	assert.Equal(t, 0, StepComic.Day())
	assert.Equal(t, "done", StepDone.String())
}

func TestParseDecision(t *testing.T) {
	d, ok := parseDecision("Swap 3", 2)
	require.True(t, ok)
	assert.Equal(t, curator.ActionSwap, d.Action)
	assert.Equal(t, curator.At(2, 3), d.Target)

	d, ok = parseDecision("cancel", 2)
	require.True(t, ok)
	assert.Equal(t, curator.ActionCancel, d.Action)

	for _, bad := range []string{"", "swap", "replace zero", "replace 0", "cancel now", "drop 2"} {
		_, ok := parseDecision(bad, 2)
		assert.False(t, ok, bad)
	}
}
