// Package review drives a curation session through the fixed interactive
// workflow: themes, unused pool, days 1 to 4, comic pick, finish.
package review

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ftnpaper/curator/internal/comics"
	"github.com/ftnpaper/curator/internal/curator"
	"github.com/ftnpaper/curator/internal/errors"
	"github.com/ftnpaper/curator/internal/output"
	"github.com/ftnpaper/curator/internal/theme"
)

// Step is one stage of the review workflow.
type Step int

const (
	StepThemes Step = iota
	StepUnused
	StepDay1
	StepDay2
	StepDay3
	StepDay4
	StepComic
	StepFinish
	StepDone
)

func (s Step) String() string {
	switch {
	case s == StepThemes:
		return "themes"
	case s == StepUnused:
		return "unused"
	case s >= StepDay1 && s <= StepDay4:
		return fmt.Sprintf("day %d", s.Day())
	case s == StepComic:
		return "comic"
	case s == StepFinish:
		return "finish"
	default:
		return "done"
	}
}

// Day returns the day number reviewed in a day step, or 0.
func (s Step) Day() int {
	if s >= StepDay1 && s <= StepDay4 {
		return int(s-StepDay1) + 1
	}
	return 0
}

// ErrQuit is returned when the operator quits before finishing.
var ErrQuit = stderrors.New("review aborted by operator")

// Options configures a Controller.
type Options struct {
	Prompt  *Prompter
	Printer *output.Printer
	Logger  *zap.Logger
	Comics  comics.Source

	// ComicDay receives the picked comic; defaults to config comic_day.
	ComicDay int

	// OutputPath overrides config output_path for the final save.
	OutputPath string
	Teasers    bool
}

// Result summarises a completed review.
type Result struct {
	Saved   *curator.SaveOutput
	Changes int
}

// Controller runs the review workflow over one curator.
type Controller struct {
	cur      *curator.Curator
	prompt   *Prompter
	printer  *output.Printer
	log      *zap.Logger
	comics   comics.Source
	comicDay int
	output   string
	teasers  bool

	step Step
}

// New wires a controller. The curator's overflow resolver is replaced with
// one that asks the operator, and its events are printed.
func New(cur *curator.Curator, opts Options) *Controller {
	ctl := &Controller{
		cur:      cur,
		prompt:   opts.Prompt,
		printer:  opts.Printer,
		log:      opts.Logger,
		comics:   opts.Comics,
		comicDay: opts.ComicDay,
		output:   opts.OutputPath,
		teasers:  opts.Teasers,
	}
	if ctl.log == nil {
		ctl.log = zap.NewNop()
	}
	if ctl.printer == nil {
		ctl.printer = output.NewPrinter(output.PrinterOptions{})
	}
	if ctl.comicDay == 0 {
		ctl.comicDay = cur.Config().ComicDay
	}
	cur.SetResolver(&PromptResolver{Prompt: ctl.prompt, Printer: ctl.printer})
	cur.Subscribe(ctl.onEvent)
	return ctl
}

func (ctl *Controller) onEvent(ev curator.Event) {
	switch ev.Kind {
	case curator.EventChange:
		ctl.printer.Success("%s", ev.Message)
	case curator.EventWarning:
		ctl.printer.Warning("%s", ev.Message)
	}
}

// Step returns the current workflow step.
func (ctl *Controller) Step() Step {
	return ctl.step
}

// Run walks every step until the edition is saved, the operator quits, or
// input ends. Input ending before the finish step is treated as quit.
func (ctl *Controller) Run(ctx context.Context) (*Result, error) {
	result := &Result{}
	for ctl.step != StepDone {
		ctl.log.Debug("review step", zap.String("step", ctl.step.String()))

		var (
			next Step
			err  error
		)
		switch {
		case ctl.step == StepThemes:
			next, err = ctl.reviewThemes(ctx)
		case ctl.step == StepUnused:
			next, err = ctl.reviewUnused(ctx)
		case ctl.step.Day() > 0:
			next, err = ctl.reviewDay(ctx, ctl.step.Day())
		case ctl.step == StepComic:
			next, err = ctl.pickComic(ctx)
		case ctl.step == StepFinish:
			next, err = ctl.finish(ctx, result)
		}
		if err == io.EOF {
			err = ErrQuit
		}
		if err != nil {
			return nil, err
		}
		ctl.step = next
	}
	result.Changes = len(ctl.cur.Changes())
	return result, nil
}

// command reads one command; quit and help are handled here.
func (ctl *Controller) command(ctx context.Context, label string) (string, []string, error) {
	for {
		answer, err := ctl.prompt.Ask(ctx, fmt.Sprintf("[%s]>", label))
		if err != nil {
			return "", nil, err
		}
		fields := strings.Fields(answer)
		if len(fields) == 0 {
			return "done", nil, nil
		}
		name := strings.ToLower(fields[0])
		switch name {
		case "quit", "q", "exit":
			return "", nil, ErrQuit
		case "help", "?":
			ctl.help(label)
			continue
		}
		return name, fields[1:], nil
	}
}

func (ctl *Controller) help(label string) {
	p := ctl.printer
	p.Print("commands for %s (empty line or 'done' continues, 'quit' aborts):", label)
	switch {
	case label == StepThemes.String():
		p.Print("  rename <day> <name...>   regroup")
	case label == StepUnused.String():
		p.Print("  restore <n> <day>")
	case strings.HasPrefix(label, "day"):
		p.Print("  move <i> <day>   unuse <i>   swap <i>   promote <i>   demote   combine <i> <j>...   rewrite <i>   show   force")
	case label == StepComic.String():
		p.Print("  pick <n>   skip")
	}
}

// report prints an operation error; structural errors never end the review.
func (ctl *Controller) report(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, ErrQuit) || err == io.EOF || stderrors.Is(err, context.Canceled) {
		return err
	}
	ctl.printer.Error("%v", err)
	return nil
}

func (ctl *Controller) reviewThemes(ctx context.Context) (Step, error) {
	for {
		ctl.printer.Themes(ctl.cur.Themes())
		name, args, err := ctl.command(ctx, StepThemes.String())
		if err != nil {
			return 0, err
		}
		switch name {
		case "done", "next":
			return StepUnused, nil
		case "rename":
			if len(args) < 2 {
				ctl.printer.Warning("usage: rename <day> <name...>")
				continue
			}
			day, ok := ctl.number(args[0])
			if !ok {
				continue
			}
			_, err = ctl.cur.RenameTheme(ctx, curator.ThemeInput{Day: day, Name: strings.Join(args[1:], " ")})
		case "regroup":
			_, err = ctl.cur.Regroup(ctx, curator.RegroupInput{})
		default:
			ctl.unknown(name)
			continue
		}
		if err := ctl.report(err); err != nil {
			return 0, err
		}
	}
}

func (ctl *Controller) reviewUnused(ctx context.Context) (Step, error) {
	for {
		ctl.printer.Unused(ctl.cur.Working().Unused)
		name, args, err := ctl.command(ctx, StepUnused.String())
		if err != nil {
			return 0, err
		}
		switch name {
		case "done", "next":
			return StepDay1, nil
		case "restore":
			if len(args) != 2 {
				ctl.printer.Warning("usage: restore <n> <day>")
				continue
			}
			n, ok1 := ctl.number(args[0])
			day, ok2 := ctl.number(args[1])
			if !ok1 || !ok2 {
				continue
			}
			_, err = ctl.cur.RestoreFromUnused(ctx, curator.RestoreInput{Story: curator.UnusedAt(n), ToDay: day})
		default:
			ctl.unknown(name)
			continue
		}
		if err := ctl.report(err); err != nil {
			return 0, err
		}
	}
}

func (ctl *Controller) reviewDay(ctx context.Context, day int) (Step, error) {
	next := StepDay1 + Step(day)
	if day == theme.NumDays {
		next = StepComic
	}

	show := true
	for {
		d := ctl.cur.Working().Day(day)
		if d == nil {
			ctl.printer.Info("day %d is empty; skipping", day)
			return next, nil
		}
		if show {
			ctl.printer.Day(d, "")
		}
		show = true

		label := StepDay1 + Step(day-1)
		name, args, err := ctl.command(ctx, label.String())
		if err != nil {
			return 0, err
		}

		switch name {
		case "done", "next":
			if d.OverCapacity() {
				ctl.printer.Warning("day %d is over capacity (%d/%d); move or unuse stories, or type 'force'", day, d.Total(), d.Limit())
				show = false
				continue
			}
			return next, nil
		case "force":
			return next, nil
		case "show":
			continue
		case "demote":
			_, err = ctl.cur.DemoteSecond(ctx, curator.DemoteInput{Day: day})
		case "move", "unuse", "swap", "promote", "combine", "rewrite":
			err = ctl.dayEdit(ctx, day, name, args)
		default:
			ctl.unknown(name)
			show = false
			continue
		}
		if err := ctl.report(err); err != nil {
			return 0, err
		}
	}
}

func (ctl *Controller) dayEdit(ctx context.Context, day int, name string, args []string) error {
	idx := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return errors.NewInvalidRequest(fmt.Sprintf("%q is not a number", a))
		}
		idx = append(idx, n)
	}
	need := map[string]int{"move": 2, "unuse": 1, "swap": 1, "promote": 1, "rewrite": 1}
	if n, fixed := need[name]; fixed && len(idx) != n {
		return errors.NewInvalidRequest(fmt.Sprintf("%s takes %d argument(s)", name, n))
	}

	var err error
	switch name {
	case "move":
		_, err = ctl.cur.MoveStory(ctx, curator.MoveInput{Story: curator.At(day, idx[0]), ToDay: idx[1]})
	case "unuse":
		_, err = ctl.cur.MoveToUnused(ctx, curator.UnuseInput{Story: curator.At(day, idx[0])})
	case "swap":
		_, err = ctl.cur.SwapMain(ctx, curator.SwapInput{Day: day, Story: curator.At(day, idx[0])})
	case "promote":
		_, err = ctl.cur.PromoteSecond(ctx, curator.PromoteInput{Day: day, Story: curator.At(day, idx[0])})
	case "rewrite":
		_, err = ctl.cur.RewriteStory(ctx, curator.RewriteInput{Day: day, Story: curator.At(day, idx[0])})
	case "combine":
		refs := make([]curator.StoryRef, len(idx))
		for i, n := range idx {
			refs[i] = curator.At(day, n)
		}
		_, err = ctl.cur.Combine(ctx, curator.CombineInput{Day: day, Stories: refs})
	}
	return err
}

func (ctl *Controller) pickComic(ctx context.Context) (Step, error) {
	if ctl.comics == nil || ctl.cur.Working().Day(ctl.comicDay) == nil {
		return StepFinish, nil
	}
	list, err := ctl.comics.List(ctx)
	if err != nil {
		ctl.printer.Warning("comics unavailable: %v", err)
		return StepFinish, nil
	}
	if len(list) == 0 {
		return StepFinish, nil
	}

	for {
		ctl.printer.Header(fmt.Sprintf("Comic for day %d", ctl.comicDay))
		for i, c := range list {
			ctl.printer.Print("%2d. %s", i+1, c.Title)
		}
		name, args, err := ctl.command(ctx, StepComic.String())
		if err != nil {
			return 0, err
		}
		switch name {
		case "done", "skip", "next":
			return StepFinish, nil
		case "pick":
			if len(args) != 1 {
				ctl.printer.Warning("usage: pick <n>")
				continue
			}
			n, ok := ctl.number(args[0])
			if !ok || n < 1 || n > len(list) {
				ctl.printer.Warning("pick a number between 1 and %d", len(list))
				continue
			}
			_, err := ctl.cur.SetComic(ctx, curator.ComicInput{Day: ctl.comicDay, Comic: &list[n-1]})
			if err := ctl.report(err); err != nil {
				return 0, err
			}
			return StepFinish, nil
		default:
			ctl.unknown(name)
		}
	}
}

func (ctl *Controller) finish(ctx context.Context, result *Result) (Step, error) {
	p := ctl.printer
	p.Changes(ctl.cur.Changes())
	p.Diff(ctl.cur.Diff())

	report := ctl.cur.ValidateData()
	p.Validation(report)
	if !report.Valid {
		if day := ctl.firstInvalidDay(); day > 0 {
			p.Warning("returning to day %d", day)
			return StepDay1 + Step(day-1), nil
		}
	}

	if ctl.output == "" && ctl.cur.Config().OutputPath == "" {
		p.Warning("no output path configured; rerun with --output or set output_path to save")
		return StepDone, nil
	}

	ok, err := ctl.prompt.Confirm(ctx, "Save edition?")
	if err != nil {
		return 0, err
	}
	if !ok {
		return StepDone, nil
	}

	out, err := ctl.cur.Save(ctx, curator.SaveInput{Path: ctl.output, Teasers: ctl.teasers})
	if err != nil {
		// Asked again on the next pass; answering no ends without saving.
		return StepFinish, ctl.report(err)
	}
	p.Success("saved %s (%d bytes)", out.Path, out.Bytes)
	result.Saved = out
	return StepDone, nil
}

func (ctl *Controller) firstInvalidDay() int {
	for _, d := range ctl.cur.Working().Days {
		if d != nil && !d.IsEmpty() && !d.Main.HasTitle() {
			return d.Number
		}
	}
	return 0
}

func (ctl *Controller) number(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		ctl.printer.Warning("%q is not a number", s)
		return 0, false
	}
	return n, true
}

func (ctl *Controller) unknown(name string) {
	ctl.printer.Warning("unknown command %q (type 'help')", name)
}
