// Package curator owns the working copy of an edition and every operation that
// edits it: moving stories between days, the unused pool, swaps, promotions,
// combines, theme edits, validation, saving and regrouping.
//
// A Curator is single-session and not safe for concurrent use; front ends that
// share one (the MCP server) serialise calls.
package curator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ftnpaper/curator/internal/collab"
	"github.com/ftnpaper/curator/internal/config"
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/theme"
)

// Persister writes the working copy after each recorded change.
type Persister interface {
	Persist(ctx context.Context, e *edition.Edition) error
}

// Options wires a Curator to its collaborators. Every field is optional.
type Options struct {
	Config     *config.Config
	Logger     *zap.Logger
	Persister  Persister
	Resolver   OverflowResolver
	Rewriter   collab.Rewriter
	Classifier collab.Classifier

	// Now stamps change records; defaults to time.Now.
	Now func() time.Time
}

// Curator edits one edition.
type Curator struct {
	working  *edition.Edition
	original *edition.Edition
	changes  []Change
	subs     []func(Event)

	cfg        *config.Config
	log        *zap.Logger
	persister  Persister
	resolver   OverflowResolver
	rewriter   collab.Rewriter
	classifier collab.Classifier
	now        func() time.Time
}

// New takes ownership of ed as the working copy and keeps a deep copy as the
// original for diffing.
func New(ed *edition.Edition, opts Options) *Curator {
	if ed == nil {
		ed = edition.New()
	}
	c := &Curator{
		working:    ed,
		original:   ed.Clone(),
		cfg:        opts.Config,
		log:        opts.Logger,
		persister:  opts.Persister,
		resolver:   opts.Resolver,
		rewriter:   opts.Rewriter,
		classifier: opts.Classifier,
		now:        opts.Now,
	}
	if c.cfg == nil {
		c.cfg = config.DefaultConfig()
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Working returns the live working copy. Callers must not mutate it.
func (c *Curator) Working() *edition.Edition {
	return c.working
}

// Original returns the edition as it was when the session started.
func (c *Curator) Original() *edition.Edition {
	return c.original
}

// Changes returns the change log in order.
func (c *Curator) Changes() []Change {
	out := make([]Change, len(c.changes))
	copy(out, c.changes)
	return out
}

// Subscribe registers fn to receive every change and warning.
func (c *Curator) Subscribe(fn func(Event)) {
	if fn != nil {
		c.subs = append(c.subs, fn)
	}
}

// SetResolver replaces the overflow resolver.
func (c *Curator) SetResolver(r OverflowResolver) {
	c.resolver = r
}

// Config returns the configuration the curator runs with.
func (c *Curator) Config() *config.Config {
	return c.cfg
}

func (c *Curator) emit(ev Event) {
	for _, fn := range c.subs {
		fn(ev)
	}
}

// record appends to the change log, notifies subscribers and auto-saves.
func (c *Curator) record(ctx context.Context, kind ChangeKind, day int, storyID, msg string) Change {
	ch := Change{
		Seq:     len(c.changes) + 1,
		Kind:    kind,
		Day:     day,
		StoryID: storyID,
		Message: msg,
		At:      c.now().UTC(),
	}
	c.changes = append(c.changes, ch)
	c.log.Info(msg,
		zap.String("kind", string(kind)),
		zap.Int("day", day),
		zap.String("story_id", storyID),
		zap.Int("seq", ch.Seq))
	c.emit(Event{Kind: EventChange, Day: day, Change: &ch, Message: msg})
	c.autosave(ctx)
	return ch
}

// warn reports a non-fatal condition.
func (c *Curator) warn(day int, msg string) {
	c.log.Warn(msg, zap.Int("day", day))
	c.emit(Event{Kind: EventWarning, Day: day, Message: msg})
}

func (c *Curator) autosave(ctx context.Context) {
	if c.persister == nil || c.cfg.DisableAutosave {
		return
	}
	if err := c.persister.Persist(ctx, c.working); err != nil {
		c.log.Error("auto-save failed", zap.Error(err))
		c.emit(Event{Kind: EventWarning, Message: "auto-save failed: " + err.Error()})
	}
}

func (c *Curator) themeName(day int) string {
	if def, ok := theme.ForDay(c.cfg.ThemeTable(), day); ok {
		return def.Name
	}
	return ""
}

func (c *Curator) maxMinis() int {
	if c.cfg.MaxMinis > 0 {
		return c.cfg.MaxMinis
	}
	return 4
}
