package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ftnpaper/curator/internal/config"
	"github.com/ftnpaper/curator/internal/curator"
	"github.com/ftnpaper/curator/internal/db"
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/persist"
)

func record(title string) map[string]any {
	return map[string]any{"title": title, "content": title + " body", "source_url": "https://example.org/" + title}
}

func records(prefix string, n int) []any {
	out := make([]any, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, record(fmt.Sprintf("%s-m%d", prefix, i)))
	}
	return out
}

// writeSample writes a session snapshot:
//
//	day 1: main, second, 3 minis
//	day 2: main, 4 minis (full)
//	day 3: main
//	unused: 2 stories
func writeSample(t *testing.T, dir string) string {
	t.Helper()
	snap := map[string]any{
		"day_1": map[string]any{
			"theme":         "Health & Medicine",
			"main_story":    record("d1-main"),
			"second_story":  record("d1-second"),
			"mini_articles": records("d1", 3),
		},
		"day_2": map[string]any{
			"theme":         "Climate & Environment",
			"main_story":    record("d2-main"),
			"mini_articles": records("d2", 4),
		},
		"day_3": map[string]any{
			"theme":         "Society & Human Rights",
			"main_story":    record("d3-main"),
			"mini_articles": []any{},
		},
		"unused": map[string]any{"stories": []any{record("u1"), record("u2")}},
	}
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal sample: %v", err)
	}
	path := filepath.Join(dir, "session.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

type testEnv struct {
	d      *deps
	out    *bytes.Buffer
	errOut *bytes.Buffer
	dir    string
	data   string
}

// setupTest creates a history database, a sample session file and buffers.
func setupTest(t *testing.T, stdin string) *testEnv {
	t.Helper()
	dir := t.TempDir()

	database, err := db.Init(filepath.Join(dir, "home"))
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()
	cfg.AllowUnsafePaths = true

	var out, errOut bytes.Buffer
	env := &testEnv{
		d: &deps{
			cfg:    cfg,
			db:     database,
			log:    zap.NewNop(),
			in:     strings.NewReader(stdin),
			out:    &out,
			errOut: &errOut,
		},
		out:    &out,
		errOut: &errOut,
		dir:    dir,
	}
	env.data = writeSample(t, dir)
	return env
}

func (e *testEnv) run(args ...string) error {
	e.out.Reset()
	e.errOut.Reset()
	app := newCLIApp(e.d)
	return app.Run(append([]string{"curator", "--color=never"}, args...))
}

func (e *testEnv) mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	if err := e.run(args...); err != nil {
		t.Fatalf("%s failed: %v (stderr: %s)", args[0], err, e.errOut.String())
	}
	var output map[string]any
	if err := json.Unmarshal(e.out.Bytes(), &output); err != nil {
		t.Fatalf("failed to parse output: %v\n%s", err, e.out.String())
	}
	return output
}

// days reloads the session file and returns each present day's story count.
func (e *testEnv) days(t *testing.T) map[int]int {
	t.Helper()
	ed, err := persist.Load(e.data, e.d.cfg)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	counts := make(map[int]int)
	for _, d := range ed.Days {
		if d != nil {
			counts[d.Number] = d.Total()
		}
	}
	counts[0] = len(ed.Unused)
	return counts
}

func TestCLIShow(t *testing.T) {
	env := setupTest(t, "")

	output := env.mustRun(t, "show", "--data", env.data, "--json")
	days := output["days"].([]any)
	if len(days) != 3 {
		t.Fatalf("days = %d, want 3", len(days))
	}
	if unused := output["unused"].([]any); len(unused) != 2 {
		t.Errorf("unused = %d, want 2", len(unused))
	}

	if err := env.run("show", "--data", env.data); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	text := env.out.String()
	for _, want := range []string{"Day 1: Health & Medicine (5/6)", "Day 2: Climate & Environment (5/5)", "Unused (2)", "d1-m2"} {
		if !strings.Contains(text, want) {
			t.Errorf("show output missing %q", want)
		}
	}

	if err := env.run("show", "--data", env.data, "--day", "4"); err == nil {
		t.Error("expected error for absent day")
	}
	if err := env.run("show", "--data", env.data, "--day", "7"); err == nil || !strings.Contains(err.Error(), "INVALID_DAY") {
		t.Errorf("expected INVALID_DAY, got %v", err)
	}
}

func TestCLIMove(t *testing.T) {
	env := setupTest(t, "")

	res := env.mustRun(t, "move", "--data", env.data, "--day", "1", "--index", "3", "--to", "3")
	if res["outcome"] != string(curator.OutcomeMoved) {
		t.Errorf("outcome = %v, want moved", res["outcome"])
	}

	counts := env.days(t)
	if counts[1] != 4 || counts[3] != 2 {
		t.Errorf("counts after move = %v", counts)
	}
	if counts[0] != 2 {
		t.Errorf("session file lost the unused pool: %v", counts)
	}
}

func TestCLIMove_FullDay(t *testing.T) {
	t.Run("swap", func(t *testing.T) {
		env := setupTest(t, "")
		res := env.mustRun(t, "move", "--data", env.data, "-d", "1", "-i", "3", "--to", "2", "--on-full", "swap", "--target", "2")
		if res["outcome"] != string(curator.OutcomeSwapped) {
			t.Errorf("outcome = %v, want swapped", res["outcome"])
		}
		if counts := env.days(t); counts[1] != 5 || counts[2] != 5 {
			t.Errorf("counts after swap = %v", counts)
		}
	})

	t.Run("default cancel drops", func(t *testing.T) {
		env := setupTest(t, "")
		res := env.mustRun(t, "move", "--data", env.data, "-d", "1", "-i", "3", "--to", "2")
		if res["outcome"] != string(curator.OutcomeDropped) {
			t.Errorf("outcome = %v, want dropped", res["outcome"])
		}
		if !strings.Contains(env.errOut.String(), "[WARN]") {
			t.Errorf("expected a drop warning on stderr, got %q", env.errOut.String())
		}
	})

	t.Run("restore on cancel", func(t *testing.T) {
		env := setupTest(t, "")
		env.d.cfg.RestoreOnCancel = true
		res := env.mustRun(t, "move", "--data", env.data, "-d", "1", "-i", "3", "--to", "2")
		if res["outcome"] != string(curator.OutcomeCancelled) {
			t.Errorf("outcome = %v, want cancelled", res["outcome"])
		}
		if counts := env.days(t); counts[1] != 5 {
			t.Errorf("day 1 changed on cancel: %v", counts)
		}
	})

	t.Run("swap without target", func(t *testing.T) {
		env := setupTest(t, "")
		err := env.run("move", "--data", env.data, "-d", "1", "-i", "3", "--to", "2", "--on-full", "swap")
		if err == nil || !strings.Contains(err.Error(), "INVALID_REQUEST") {
			t.Errorf("expected INVALID_REQUEST, got %v", err)
		}
	})
}

func TestCLIUnuseAndRestore(t *testing.T) {
	env := setupTest(t, "")

	res := env.mustRun(t, "unuse", "--data", env.data, "--day", "1", "--index", "2")
	if res["unused_index"] != float64(3) {
		t.Errorf("unused_index = %v, want 3", res["unused_index"])
	}

	res = env.mustRun(t, "restore", "--data", env.data, "--index", "3", "--to", "4")
	if res["to_day"] != float64(4) {
		t.Errorf("to_day = %v, want 4", res["to_day"])
	}

	counts := env.days(t)
	if counts[1] != 4 || counts[4] != 1 || counts[0] != 2 {
		t.Errorf("counts = %v", counts)
	}
}

func TestCLISlotCommands(t *testing.T) {
	env := setupTest(t, "")

	res := env.mustRun(t, "swap", "--data", env.data, "--day", "3", "--index", "1")
	if res["swapped"] != false {
		t.Errorf("swapping the main story should be a no-op: %v", res)
	}

	env.mustRun(t, "demote", "--data", env.data, "--day", "1")
	env.mustRun(t, "promote", "--data", env.data, "--day", "1", "--index", "3")

	err := env.run("promote", "--data", env.data, "--day", "1", "--index", "4")
	if err == nil || !strings.Contains(err.Error(), "CONFLICT") {
		t.Errorf("expected CONFLICT, got %v", err)
	}
}

func TestCLICombine(t *testing.T) {
	env := setupTest(t, "")

	res := env.mustRun(t, "combine", "--data", env.data, "--day", "2", "2", "3")
	if res["slot"] != "mini" || res["index"] != float64(2) {
		t.Errorf("combine result = %v", res)
	}
	if counts := env.days(t); counts[2] != 4 {
		t.Errorf("day 2 total = %d, want 4", counts[2])
	}

	if err := env.run("combine", "--data", env.data, "--day", "2", "two", "3"); err == nil {
		t.Error("expected error for non-numeric index")
	}
}

func TestCLITheme(t *testing.T) {
	env := setupTest(t, "")

	res := env.mustRun(t, "theme", "--data", env.data, "--day", "3", "Good", "News")
	if res["changed"] != true {
		t.Errorf("theme result = %v", res)
	}

	ed, err := persist.Load(env.data, env.d.cfg)
	if err != nil {
		t.Fatal(err)
	}
	if ed.Day(3).Theme != "Good News" {
		t.Errorf("theme = %q", ed.Day(3).Theme)
	}
}

func TestCLIRewrite(t *testing.T) {
	env := setupTest(t, "")

	ed, err := persist.Load(env.data, env.d.cfg)
	if err != nil {
		t.Fatal(err)
	}
	ed.Day(3).Main.Content = "Courts   ruled\n\n today."
	if _, err := persist.Write(t.Context(), env.data, env.d.cfg, ed, edition.EncodeOptions{IncludeUnused: true}); err != nil {
		t.Fatal(err)
	}

	res := env.mustRun(t, "rewrite", "--data", env.data, "--day", "3", "--index", "1")
	if res["changed"] != true {
		t.Errorf("rewrite result = %v", res)
	}

	ed, err = persist.Load(env.data, env.d.cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := ed.Day(3).Main.Content; got != "Courts ruled today." {
		t.Errorf("content = %q", got)
	}
	if len(ed.Unused) != 2 {
		t.Errorf("unused = %d, want 2", len(ed.Unused))
	}
}

func TestCLIValidateAndSave(t *testing.T) {
	env := setupTest(t, "")

	if err := env.run("validate", "--data", env.data); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(env.out.String(), "edition is valid") {
		t.Errorf("validate output = %q", env.out.String())
	}

	out := filepath.Join(env.dir, "final.json")
	res := env.mustRun(t, "save", "--data", env.data, "--output", out)
	if res["path"] != out {
		t.Errorf("path = %v, want %v", res["path"], out)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"unused"`) {
		t.Error("final edition must not include the unused pool")
	}

	// Emptying day 3's main and restoring a mini into it breaks validation.
	env.mustRun(t, "unuse", "--data", env.data, "--day", "3", "--index", "1")
	env.mustRun(t, "restore", "--data", env.data, "--index", "1", "--to", "3")
	err = env.run("validate", "--data", env.data)
	if err == nil || !strings.Contains(err.Error(), "VALIDATION_FAILED") {
		t.Errorf("expected VALIDATION_FAILED, got %v", err)
	}
	err = env.run("save", "--data", env.data, "--output", filepath.Join(env.dir, "bad.json"))
	if err == nil {
		t.Error("save should refuse an invalid edition")
	}
	if _, statErr := os.Stat(filepath.Join(env.dir, "bad.json")); !os.IsNotExist(statErr) {
		t.Error("nothing should be written when validation fails")
	}
}

func TestCLIRegroup(t *testing.T) {
	env := setupTest(t, "")

	res := env.mustRun(t, "regroup", "--data", env.data, "--exclude", "1:1", "--exclude", "u:2")
	placed, unused := res["placed"].(float64), res["unused"].(float64)
	if int(placed+unused) != 13 {
		t.Errorf("placed+unused = %v, want 13 (no story lost)", placed+unused)
	}

	if err := env.run("regroup", "--data", env.data, "--exclude", "nope"); err == nil {
		t.Error("expected error for malformed position")
	}
}

func TestCLIHistory(t *testing.T) {
	env := setupTest(t, "")

	env.mustRun(t, "move", "--data", env.data, "-d", "1", "-i", "3", "--to", "3")
	env.mustRun(t, "unuse", "--data", env.data, "-d", "1", "-i", "3")

	res := env.mustRun(t, "history", "--json")
	sessions := res["sessions"].([]any)
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}
	latest := sessions[0].(map[string]any)
	if latest["front_end"] != "cli:unuse" || latest["change_count"] != float64(1) {
		t.Errorf("latest session = %v", latest)
	}

	res = env.mustRun(t, "history", "--json", "--session", latest["id"].(string))
	changes := res["changes"].([]any)
	if len(changes) != 1 || changes[0].(map[string]any)["kind"] != "unuse" {
		t.Errorf("changes = %v", changes)
	}

	if err := env.run("history"); err != nil {
		t.Fatalf("history table failed: %v", err)
	}
	if !strings.Contains(env.out.String(), "Sessions (2)") {
		t.Errorf("history output = %q", env.out.String())
	}

	res = env.mustRun(t, "history", "--purge-older-than", "0d")
	if res["purged"] != float64(0) && res["purged"] != float64(2) {
		t.Errorf("purged = %v", res["purged"])
	}
}

func TestCLIHistory_Disabled(t *testing.T) {
	env := setupTest(t, "")
	env.d.db = nil

	err := env.run("history")
	if err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Errorf("expected disabled error, got %v", err)
	}

	// Edits still work without history.
	env.mustRun(t, "move", "--data", env.data, "-d", "1", "-i", "3", "--to", "3")
}

func TestCLIProof(t *testing.T) {
	env := setupTest(t, "")

	out := filepath.Join(env.dir, "proof.html")
	if err := env.run("proof", "--data", env.data, "--out", out, "--title", "Week 12"); err != nil {
		t.Fatalf("proof failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	if !strings.Contains(html, "<title>Week 12</title>") || !strings.Contains(html, "d2-m4") {
		t.Error("proof is missing expected content")
	}
	if strings.Contains(html, "u1 body") {
		t.Error("proof must not include unused stories")
	}

	if err := env.run("proof", "--data", env.data); err != nil {
		t.Fatalf("proof to stdout failed: %v", err)
	}
	if !strings.Contains(env.out.String(), "<!DOCTYPE html>") {
		t.Error("expected HTML on stdout")
	}
}

func TestCLIReview(t *testing.T) {
	script := strings.Join([]string{
		"",            // themes
		"",            // unused
		"unuse 3", "", // day 1
		"", // day 2
		"", // day 3
		"y",
	}, "\n") + "\n"
	env := setupTest(t, script)
	out := filepath.Join(env.dir, "final.json")

	if err := env.run("review", "--input", env.data, "--output", out); err != nil {
		t.Fatalf("review failed: %v (stderr: %s)", err, env.errOut.String())
	}
	if !strings.Contains(env.out.String(), "saved "+out) {
		t.Errorf("review output missing save confirmation:\n%s", env.out.String())
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("final edition not written: %v", err)
	}

	sessions, err := db.ListSessions(t.Context(), env.d.db, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || !sessions[0].Saved || sessions[0].ChangeCount != 1 {
		t.Errorf("review session = %+v", sessions)
	}
}

func TestCLIReview_Quit(t *testing.T) {
	env := setupTest(t, "quit\n")
	env.d.cfg.DisableAutosave = true

	if err := env.run("review", "--input", env.data, "--output", filepath.Join(env.dir, "final.json")); err != nil {
		t.Fatalf("quitting is not an error: %v", err)
	}
	if !strings.Contains(env.errOut.String(), "without saving") {
		t.Errorf("stderr = %q", env.errOut.String())
	}
}

func TestCLIReview_NoOutputKeepsInput(t *testing.T) {
	env := setupTest(t, "\n\nunuse 3\nquit\n")

	if err := env.run("review", "--input", env.data); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	counts := env.days(t)
	if counts[0] != 2 || counts[1] != 5 {
		t.Errorf("input file changed by review: %v", counts)
	}

	sidecar := filepath.Join(env.dir, "session.autosave.json")
	ed, err := persist.Load(sidecar, env.d.cfg)
	if err != nil {
		t.Fatalf("autosave sidecar not written: %v", err)
	}
	if len(ed.Unused) != 3 || ed.Day(1).Total() != 4 {
		t.Errorf("sidecar unused = %d, day 1 = %d; want 3 and 4", len(ed.Unused), ed.Day(1).Total())
	}
}

func TestCLIReview_NoOutputDoesNotSave(t *testing.T) {
	env := setupTest(t, "\n\n\n\n\n")
	env.d.cfg.DisableAutosave = true
	before, err := os.ReadFile(env.data)
	if err != nil {
		t.Fatal(err)
	}

	if err := env.run("review", "--input", env.data); err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if !strings.Contains(env.errOut.String(), "no output path configured") {
		t.Errorf("stderr = %q", env.errOut.String())
	}
	if strings.Contains(env.out.String(), "saved ") {
		t.Error("review saved without an output path")
	}

	after, err := os.ReadFile(env.data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("input file was rewritten")
	}
}

func TestCLISave_RequiresOutput(t *testing.T) {
	env := setupTest(t, "")

	err := env.run("save", "--data", env.data)
	if err == nil || !strings.Contains(err.Error(), "INVALID_REQUEST") {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
	if counts := env.days(t); counts[0] != 2 {
		t.Errorf("session file lost the unused pool: %v", counts)
	}
}

func TestAutosavePath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"session.json", "session.autosave.json"},
		{"/tmp/week 12/issue.json", "/tmp/week 12/issue.autosave.json"},
		{"issue", "issue.autosave.json"},
	}
	for _, tt := range tests {
		if got := autosavePath(tt.input); got != tt.want {
			t.Errorf("autosavePath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCLIMissingInput(t *testing.T) {
	env := setupTest(t, "")

	err := env.run("show", "--data", filepath.Join(env.dir, "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "FILE_NOT_FOUND") {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		input   string
		want    curator.StoryRef
		wantErr bool
	}{
		{input: "1:3", want: curator.At(1, 3)},
		{input: " 4:1 ", want: curator.At(4, 1)},
		{input: "u:2", want: curator.UnusedAt(2)},
		{input: "U:1", want: curator.UnusedAt(1)},
		{input: "1-3", wantErr: true},
		{input: "x:3", wantErr: true},
		{input: "1:y", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parsePosition(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parsePosition(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePosition(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parsePosition(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseOnFull(t *testing.T) {
	d, err := parseOnFull("Replace", 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if d.Action != curator.ActionReplace || d.Target != curator.At(2, 4) {
		t.Errorf("decision = %+v", d)
	}

	if d, _ := parseOnFull("", 2, 0); d.Action != curator.ActionCancel {
		t.Errorf("empty action = %v, want cancel", d.Action)
	}
	if _, err := parseOnFull("evict", 2, 1); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    int
		expectError bool
	}{
		{name: "valid days", input: "7d", expected: 7},
		{name: "zero days", input: "0d", expected: 0},
		{name: "missing suffix", input: "7", expectError: true},
		{name: "negative", input: "-1d", expectError: true},
		{name: "not a number", input: "xd", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDuration(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("parseDuration(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger("debug"); err != nil {
		t.Errorf("newLogger(debug) error = %v", err)
	}
	if _, err := newLogger(""); err != nil {
		t.Errorf("newLogger(\"\") error = %v", err)
	}
	if _, err := newLogger("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
