package main

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ftnpaper/curator/internal/comics"
	"github.com/ftnpaper/curator/internal/curator"
	"github.com/ftnpaper/curator/internal/db"
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/errors"
	"github.com/ftnpaper/curator/internal/mcp"
	"github.com/ftnpaper/curator/internal/output"
	"github.com/ftnpaper/curator/internal/persist"
	"github.com/ftnpaper/curator/internal/proof"
	"github.com/ftnpaper/curator/internal/review"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(d *deps) *cli.App {
	app := &cli.App{
		Name:      "curator",
		Usage:     "Curate a newsletter issue into four daily editions",
		Version:   Version,
		Writer:    d.out,
		ErrWriter: d.errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "color", Value: "auto", Usage: "Color output: auto|always|never"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Suppress informational output"},
		},
		Commands: []*cli.Command{
			reviewCmd(d),
			showCmd(d),
			moveCmd(d),
			unuseCmd(d),
			restoreCmd(d),
			swapCmd(d),
			promoteCmd(d),
			demoteCmd(d),
			combineCmd(d),
			themeCmd(d),
			rewriteCmd(d),
			validateCmd(d),
			saveCmd(d),
			regroupCmd(d),
			historyCmd(d),
			proofCmd(d),
			mcpCmd(d),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func dataFlag() cli.Flag {
	return &cli.StringFlag{Name: "data", Aliases: []string{"f"}, Required: true, Usage: "Session snapshot (.json, unused pool included)"}
}

// Story IDs are reassigned on every load, so one-shot commands address
// stories by display index only.
func refFlags() []cli.Flag {
	return []cli.Flag{
		dataFlag(),
		&cli.IntFlag{Name: "day", Aliases: []string{"d"}, Required: true, Usage: "Day (1-4) holding the story"},
		&cli.IntFlag{Name: "index", Aliases: []string{"i"}, Required: true, Usage: "1-based display index within the day"},
	}
}

// refFromFlags builds a story ref from --day and --index.
func refFromFlags(c *cli.Context) curator.StoryRef {
	return curator.At(c.Int("day"), c.Int("index"))
}

// mutate runs one edit against the session file and writes it back.
func mutate(c *cli.Context, d *deps, fn func(ctx context.Context, cur *curator.Curator) (any, error)) error {
	p, err := d.printer(c.String("color"), c.Bool("quiet"))
	if err != nil {
		return outputError(errors.NewInvalidRequest(err.Error()))
	}
	ctx := c.Context

	s, err := d.openSession(ctx, c.String("data"), sessionOptions{
		frontEnd: "cli:" + c.Command.Name,
		warn:     func(msg string) { p.Warning("%s", msg) },
	})
	if err != nil {
		return outputError(err)
	}
	defer s.close(ctx, "")

	result, err := fn(ctx, s.cur)
	if err != nil {
		return outputError(err)
	}
	if err := s.commit(ctx); err != nil {
		return outputError(err)
	}
	return outputJSON(d, result)
}

// reviewCmd creates the review command.
func reviewCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "review",
		Usage: "Review an issue interactively step by step and save the final edition",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"f"}, Required: true, Usage: "Grouped issue (.json)"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Final edition path (default: config output_path)"},
			&cli.StringFlag{Name: "comics", Usage: "Candidate comics file (default: config comics_path)"},
			&cli.BoolFlag{Name: "teasers", Usage: "Generate tomorrow teasers when saving"},
		},
		Action: func(c *cli.Context) error {
			p, err := d.printer(c.String("color"), c.Bool("quiet"))
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}
			ctx := c.Context
			input := c.String("input")
			outPath := firstNonEmpty(c.String("output"), d.cfg.OutputPath)

			var persister curator.Persister
			if !d.cfg.DisableAutosave {
				// Without an output path, edits go to a sidecar that keeps the
				// unused pool; the input file is never rewritten.
				target, keepUnused := outPath, false
				if target == "" {
					target, keepUnused = autosavePath(input), true
				}
				saver, err := persist.NewAutoSaver(target, d.cfg, d.log)
				if err != nil {
					return outputError(err)
				}
				saver.IncludeUnused = keepUnused
				persister = saver
			}

			s, err := d.openSession(ctx, input, sessionOptions{frontEnd: "review", persister: persister})
			if err != nil {
				return outputError(err)
			}

			var source comics.Source
			if path := firstNonEmpty(c.String("comics"), d.cfg.ComicsPath); path != "" {
				source = &comics.FileSource{Path: path}
			}

			ctl := review.New(s.cur, review.Options{
				Prompt:     review.NewPrompter(d.in, d.out),
				Printer:    p,
				Logger:     d.log,
				Comics:     source,
				OutputPath: outPath,
				Teasers:    c.Bool("teasers"),
			})
			result, err := ctl.Run(ctx)
			if err != nil {
				s.close(ctx, "")
				if stderrors.Is(err, review.ErrQuit) {
					p.Warning("review ended without saving (%d changes)", len(s.cur.Changes()))
					return nil
				}
				return outputError(err)
			}

			savedTo := ""
			if result.Saved != nil {
				savedTo = result.Saved.Path
				p.Success("saved %s (%d changes)", savedTo, result.Changes)
			}
			s.close(ctx, savedTo)
			return nil
		},
	}
}

// showCmd creates the show command.
func showCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show days with display indexes and the unused pool",
		Flags: []cli.Flag{
			dataFlag(),
			&cli.IntFlag{Name: "day", Aliases: []string{"d"}, Usage: "Only this day"},
			&cli.BoolFlag{Name: "no-unused", Usage: "Hide the unused pool"},
			&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
		},
		Action: func(c *cli.Context) error {
			ed, err := persist.Load(c.String("data"), d.cfg)
			if err != nil {
				return outputError(err)
			}
			if c.Bool("json") {
				return outputJSON(d, output.View(ed, c.Int("day"), !c.Bool("no-unused")))
			}

			p, err := d.printer(c.String("color"), c.Bool("quiet"))
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}
			if day := c.Int("day"); day != 0 {
				if !edition.ValidDay(day) {
					return outputError(errors.NewInvalidDay(day))
				}
				if ed.Day(day) == nil {
					return outputError(errors.NewInvalidRequest(fmt.Sprintf("day %d is absent", day)))
				}
				p.Day(ed.Day(day), "")
				return nil
			}
			p.Edition(ed, !c.Bool("no-unused"))
			return nil
		},
	}
}

// moveCmd creates the move command.
func moveCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "move",
		Usage: "Move a story to another day",
		Flags: append(refFlags(),
			&cli.IntFlag{Name: "to", Aliases: []string{"t"}, Required: true, Usage: "Target day (1-4)"},
			&cli.StringFlag{Name: "on-full", Value: "cancel", Usage: "When the target day is full: swap|replace|cancel"},
			&cli.IntFlag{Name: "target", Usage: "Display index of the target day's mini to swap or replace"},
		),
		Action: func(c *cli.Context) error {
			decision, err := parseOnFull(c.String("on-full"), c.Int("to"), c.Int("target"))
			if err != nil {
				return outputError(err)
			}
			return mutate(c, d, func(ctx context.Context, cur *curator.Curator) (any, error) {
				cur.SetResolver(curator.StaticResolver(decision))
				return cur.MoveStory(ctx, curator.MoveInput{Story: refFromFlags(c), ToDay: c.Int("to")})
			})
		},
	}
}

// parseOnFull turns --on-full and --target into an overflow decision.
func parseOnFull(action string, toDay, target int) (curator.Decision, error) {
	switch a := curator.Action(strings.ToLower(strings.TrimSpace(action))); a {
	case "", curator.ActionCancel:
		return curator.Decision{Action: curator.ActionCancel}, nil
	case curator.ActionSwap, curator.ActionReplace:
		if target <= 0 {
			return curator.Decision{}, errors.NewInvalidRequest("--target is required with --on-full=" + string(a))
		}
		return curator.Decision{Action: a, Target: curator.At(toDay, target)}, nil
	default:
		return curator.Decision{}, errors.NewInvalidRequest(fmt.Sprintf("invalid --on-full %q: must be swap, replace or cancel", action))
	}
}

// unuseCmd creates the unuse command.
func unuseCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "unuse",
		Usage: "Move a story from its day to the unused pool",
		Flags: refFlags(),
		Action: func(c *cli.Context) error {
			return mutate(c, d, func(ctx context.Context, cur *curator.Curator) (any, error) {
				return cur.MoveToUnused(ctx, curator.UnuseInput{Story: refFromFlags(c)})
			})
		},
	}
}

// restoreCmd creates the restore command.
func restoreCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "restore",
		Usage: "Move a story from the unused pool into a day",
		Flags: []cli.Flag{
			dataFlag(),
			&cli.IntFlag{Name: "index", Aliases: []string{"i"}, Required: true, Usage: "1-based position in the unused pool"},
			&cli.IntFlag{Name: "to", Aliases: []string{"t"}, Required: true, Usage: "Target day (1-4)"},
		},
		Action: func(c *cli.Context) error {
			return mutate(c, d, func(ctx context.Context, cur *curator.Curator) (any, error) {
				return cur.RestoreFromUnused(ctx, curator.RestoreInput{Story: curator.UnusedAt(c.Int("index")), ToDay: c.Int("to")})
			})
		},
	}
}

// swapCmd creates the swap command.
func swapCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "swap",
		Usage: "Make a story the main story of its day",
		Flags: refFlags(),
		Action: func(c *cli.Context) error {
			return mutate(c, d, func(ctx context.Context, cur *curator.Curator) (any, error) {
				return cur.SwapMain(ctx, curator.SwapInput{Day: c.Int("day"), Story: refFromFlags(c)})
			})
		},
	}
}

// promoteCmd creates the promote command.
func promoteCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "promote",
		Usage: "Promote a mini to the empty second-story slot",
		Flags: refFlags(),
		Action: func(c *cli.Context) error {
			return mutate(c, d, func(ctx context.Context, cur *curator.Curator) (any, error) {
				return cur.PromoteSecond(ctx, curator.PromoteInput{Day: c.Int("day"), Story: refFromFlags(c)})
			})
		},
	}
}

// demoteCmd creates the demote command.
func demoteCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "demote",
		Usage: "Demote a day's second story to the front of its minis",
		Flags: []cli.Flag{
			dataFlag(),
			&cli.IntFlag{Name: "day", Aliases: []string{"d"}, Required: true, Usage: "Day (1-4)"},
		},
		Action: func(c *cli.Context) error {
			return mutate(c, d, func(ctx context.Context, cur *curator.Curator) (any, error) {
				return cur.DemoteSecond(ctx, curator.DemoteInput{Day: c.Int("day")})
			})
		},
	}
}

// combineCmd creates the combine command.
func combineCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "combine",
		Usage:     "Merge two or more stories of one day",
		ArgsUsage: "<index> <index> [...]",
		Flags: []cli.Flag{
			dataFlag(),
			&cli.IntFlag{Name: "day", Aliases: []string{"d"}, Required: true, Usage: "Day (1-4)"},
		},
		Action: func(c *cli.Context) error {
			refs, err := parseIndexes(c.Args().Slice())
			if err != nil {
				return outputError(err)
			}
			return mutate(c, d, func(ctx context.Context, cur *curator.Curator) (any, error) {
				return cur.Combine(ctx, curator.CombineInput{Day: c.Int("day"), Stories: refs})
			})
		},
	}
}

// parseIndexes reads positional display indexes.
func parseIndexes(args []string) ([]curator.StoryRef, error) {
	refs := make([]curator.StoryRef, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid index %q", a))
		}
		refs = append(refs, curator.StoryRef{Index: n})
	}
	return refs, nil
}

// parsePosition reads "DAY:INDEX" or "u:INDEX" (unused pool).
func parsePosition(s string) (curator.StoryRef, error) {
	dayPart, idxPart, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return curator.StoryRef{}, errors.NewInvalidRequest(fmt.Sprintf("invalid position %q: want DAY:INDEX or u:INDEX", s))
	}
	index, err := strconv.Atoi(idxPart)
	if err != nil {
		return curator.StoryRef{}, errors.NewInvalidRequest(fmt.Sprintf("invalid index in %q", s))
	}
	if strings.EqualFold(dayPart, "u") {
		return curator.UnusedAt(index), nil
	}
	day, err := strconv.Atoi(dayPart)
	if err != nil {
		return curator.StoryRef{}, errors.NewInvalidRequest(fmt.Sprintf("invalid day in %q", s))
	}
	return curator.At(day, index), nil
}

// themeCmd creates the theme command.
func themeCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "theme",
		Usage:     "Rename a day's theme",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			dataFlag(),
			&cli.IntFlag{Name: "day", Aliases: []string{"d"}, Required: true, Usage: "Day (1-4)"},
		},
		Action: func(c *cli.Context) error {
			name := strings.Join(c.Args().Slice(), " ")
			return mutate(c, d, func(ctx context.Context, cur *curator.Curator) (any, error) {
				return cur.RenameTheme(ctx, curator.ThemeInput{Day: c.Int("day"), Name: name})
			})
		},
	}
}

// rewriteCmd creates the rewrite command.
func rewriteCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "rewrite",
		Usage: "Rewrite a story's title and content through the content rewriter",
		Flags: refFlags(),
		Action: func(c *cli.Context) error {
			return mutate(c, d, func(ctx context.Context, cur *curator.Curator) (any, error) {
				return cur.RewriteStory(ctx, curator.RewriteInput{Day: c.Int("day"), Story: refFromFlags(c)})
			})
		},
	}
}

// validateCmd creates the validate command.
func validateCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check the session for errors and warnings",
		Flags: []cli.Flag{
			dataFlag(),
			&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
		},
		Action: func(c *cli.Context) error {
			ed, err := persist.Load(c.String("data"), d.cfg)
			if err != nil {
				return outputError(err)
			}
			report := curator.New(ed, curator.Options{Config: d.cfg}).ValidateData()

			if c.Bool("json") {
				if err := outputJSON(d, report); err != nil {
					return err
				}
			} else {
				p, err := d.printer(c.String("color"), c.Bool("quiet"))
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				p.Validation(report)
			}
			if !report.Valid {
				return outputError(errors.NewValidationFailed(report.Errors))
			}
			return nil
		},
	}
}

// saveCmd creates the save command.
func saveCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "save",
		Usage: "Validate and write the final edition (without the unused pool)",
		Flags: []cli.Flag{
			dataFlag(),
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output path (default: config output_path)"},
			&cli.BoolFlag{Name: "teasers", Usage: "Generate tomorrow teasers for days 1-3"},
		},
		Action: func(c *cli.Context) error {
			p, err := d.printer(c.String("color"), c.Bool("quiet"))
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}
			ctx := c.Context
			s, err := d.openSession(ctx, c.String("data"), sessionOptions{
				frontEnd: "cli:save",
				warn:     func(msg string) { p.Warning("%s", msg) },
			})
			if err != nil {
				return outputError(err)
			}

			out, err := s.cur.Save(ctx, curator.SaveInput{
				Path:    firstNonEmpty(c.String("output"), d.cfg.OutputPath),
				Teasers: c.Bool("teasers"),
			})
			if err != nil {
				s.close(ctx, "")
				return outputError(err)
			}
			s.close(ctx, out.Path)
			return outputJSON(d, out)
		},
	}
}

// regroupCmd creates the regroup command.
func regroupCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "regroup",
		Usage: "Reassign every story to days by theme keywords",
		Flags: []cli.Flag{
			dataFlag(),
			&cli.StringSliceFlag{Name: "exclude", Usage: "Positions (DAY:INDEX or u:INDEX) to leave out of every day"},
		},
		Action: func(c *cli.Context) error {
			positions := make([]curator.StoryRef, 0, len(c.StringSlice("exclude")))
			for _, p := range c.StringSlice("exclude") {
				ref, err := parsePosition(p)
				if err != nil {
					return outputError(err)
				}
				positions = append(positions, ref)
			}
			return mutate(c, d, func(ctx context.Context, cur *curator.Curator) (any, error) {
				// Resolve every position before regrouping moves anything.
				blocked := make([]string, 0, len(positions))
				for _, ref := range positions {
					r, err := cur.Resolve(ref)
					if err != nil {
						return nil, err
					}
					blocked = append(blocked, r.Story.ID)
				}
				return cur.Regroup(ctx, curator.RegroupInput{Blocklisted: blocked})
			})
		},
	}
}

// historyCmd creates the history command.
func historyCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List archived sessions, or one session's changes",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "session", Aliases: []string{"s"}, Usage: "Show the changes of this session"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum sessions to list"},
			&cli.StringFlag{Name: "purge-older-than", Usage: "Delete sessions started more than N days ago (e.g., 30d)"},
			&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
		},
		Action: func(c *cli.Context) error {
			if d.db == nil {
				return outputError(errors.NewInvalidRequest("session history is disabled"))
			}
			ctx := c.Context

			if olderThan := c.String("purge-older-than"); olderThan != "" {
				days, err := parseDuration(olderThan)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				cutoff := time.Now().AddDate(0, 0, -days).Unix()
				n, err := db.PurgeBefore(ctx, d.db, cutoff)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(d, map[string]any{"purged": n})
			}

			p, err := d.printer(c.String("color"), c.Bool("quiet"))
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}

			if id := c.String("session"); id != "" {
				sess, err := db.GetSession(ctx, d.db, id)
				if err != nil {
					return outputError(err)
				}
				changes, err := db.ListChanges(ctx, d.db, id)
				if err != nil {
					return outputError(err)
				}
				if c.Bool("json") {
					return outputJSON(d, map[string]any{"session": sess, "changes": changes})
				}
				printSessionChanges(p, sess, changes)
				return nil
			}

			sessions, err := db.ListSessions(ctx, d.db, c.Int("limit"))
			if err != nil {
				return outputError(err)
			}
			if c.Bool("json") {
				return outputJSON(d, map[string]any{"sessions": sessions})
			}
			printSessions(p, sessions)
			return nil
		},
	}
}

func printSessions(p *output.Printer, sessions []db.Session) {
	p.Header(fmt.Sprintf("Sessions (%d)", len(sessions)))
	t := p.NewTable([]string{"ID", "Started", "Front end", "Source", "Changes", "Saved"})
	for _, s := range sessions {
		saved := "-"
		if s.Saved && s.OutputPath != nil {
			saved = *s.OutputPath
		}
		t.AddRow(s.ID, formatUnix(s.StartedAt), s.FrontEnd, s.SourcePath, strconv.Itoa(s.ChangeCount), saved)
	}
	t.Render()
}

func printSessionChanges(p *output.Printer, s *db.Session, changes []db.ChangeRow) {
	p.Header(fmt.Sprintf("Session %s (%s, %s)", s.ID, s.FrontEnd, formatUnix(s.StartedAt)))
	t := p.NewTable([]string{"#", "Kind", "Day", "Change"})
	for _, ch := range changes {
		day := "-"
		if ch.Day > 0 {
			day = strconv.Itoa(ch.Day)
		}
		t.AddRow(strconv.Itoa(ch.Seq), ch.Kind, day, ch.Message)
	}
	t.Render()
}

func formatUnix(ts int64) string {
	return time.Unix(ts, 0).Local().Format("2006-01-02 15:04")
}

// proofCmd creates the proof command.
func proofCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "proof",
		Usage: "Render an edition as an HTML proof sheet",
		Flags: []cli.Flag{
			dataFlag(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "HTML output file (default: stdout)"},
			&cli.StringFlag{Name: "title", Usage: "Page title"},
		},
		Action: func(c *cli.Context) error {
			ed, err := persist.Load(c.String("data"), d.cfg)
			if err != nil {
				return outputError(err)
			}

			var buf bytes.Buffer
			if err := proof.NewRenderer().Render(&buf, ed, c.String("title")); err != nil {
				return outputError(errors.NewInternal(err))
			}

			path := c.String("out")
			if path == "" {
				_, err := d.out.Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
				return outputError(errors.NewInternal(fmt.Errorf("write proof: %w", err)))
			}
			d.log.Info("proof written", zap.String("path", path), zap.Int("bytes", buf.Len()))
			return nil
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the curation operations as MCP tools over stdio",
		Flags: []cli.Flag{dataFlag()},
		Action: func(c *cli.Context) error {
			ctx := c.Context
			path := c.String("data")

			if unknown := mcp.ValidateDisabledTools(d.cfg.DisabledTools); len(unknown) > 0 {
				d.log.Warn("unknown disabled_tools entries", zap.Strings("tools", unknown))
			}

			// Every tool call that changes the edition is written back to the session file.
			saver, err := persist.NewAutoSaver(path, d.cfg, d.log)
			if err != nil {
				return outputError(err)
			}
			saver.IncludeUnused = true

			s, err := d.openSession(ctx, path, sessionOptions{frontEnd: "mcp", persister: saver})
			if err != nil {
				return outputError(err)
			}
			defer s.close(context.Background(), "")

			return mcp.Run(mcp.NewSession(s.cur), d.cfg, Version)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(d *deps, v any) error {
	enc := json.NewEncoder(d.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var cerr *errors.CuratorError
	if stderrors.As(err, &cerr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", cerr.Code, cerr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// autosavePath is the sidecar next to input: session.json -> session.autosave.json.
func autosavePath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".autosave.json"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// parseDuration parses "7d" format to days.
func parseDuration(s string) (int, error) {
	if numStr, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.Atoi(numStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		if days < 0 {
			return 0, fmt.Errorf("duration must be non-negative")
		}
		return days, nil
	}
	return 0, fmt.Errorf("duration must end with 'd' (days), e.g., 7d")
}
