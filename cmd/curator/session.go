package main

import (
	"context"
	"database/sql"
	"io"

	"go.uber.org/zap"

	"github.com/ftnpaper/curator/internal/collab"
	"github.com/ftnpaper/curator/internal/config"
	"github.com/ftnpaper/curator/internal/curator"
	"github.com/ftnpaper/curator/internal/db"
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/output"
	"github.com/ftnpaper/curator/internal/persist"
)

// deps is what every command needs. db is nil when history is disabled.
type deps struct {
	cfg    *config.Config
	db     *sql.DB
	log    *zap.Logger
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func (d *deps) printer(colorMode string, quiet bool) (*output.Printer, error) {
	mode, err := output.ParseColorMode(colorMode)
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(output.PrinterOptions{ColorMode: mode, Quiet: quiet, Out: d.out, Err: d.errOut}), nil
}

// session is one loaded edition with its history recorder.
type session struct {
	cur  *curator.Curator
	path string
	rec  *db.Recorder
	d    *deps
}

// sessionOptions selects how a loaded edition is wired.
type sessionOptions struct {
	frontEnd string

	// persister receives auto-saves; nil disables them.
	persister curator.Persister

	// warn receives curator warnings.
	warn func(string)
}

// openSession loads the snapshot at path and wires a curator over it.
func (d *deps) openSession(ctx context.Context, path string, opts sessionOptions) (*session, error) {
	ed, err := persist.Load(path, d.cfg)
	if err != nil {
		return nil, err
	}

	cur := curator.New(ed, curator.Options{
		Config:     d.cfg,
		Logger:     d.log,
		Persister:  opts.persister,
		Rewriter:   &collab.TemplateRewriter{},
		Classifier: &collab.KeywordClassifier{MaxMinis: d.cfg.MaxMinis},
	})
	if opts.warn != nil {
		warn := opts.warn
		cur.Subscribe(func(ev curator.Event) {
			if ev.Kind == curator.EventWarning {
				warn(ev.Message)
			}
		})
	}

	s := &session{cur: cur, path: path, d: d}
	if d.db != nil {
		rec, err := db.StartSession(ctx, d.db, path, opts.frontEnd, d.log)
		if err != nil {
			d.log.Warn("session history unavailable", zap.Error(err))
		} else {
			s.rec = rec
			cur.Subscribe(rec.Handle)
		}
	}
	return s, nil
}

// commit writes the working copy, unused pool included, back to the session
// file when anything changed.
func (s *session) commit(ctx context.Context) error {
	if len(s.cur.Changes()) == 0 {
		return nil
	}
	_, err := persist.Write(ctx, s.path, s.d.cfg, s.cur.Working(), edition.EncodeOptions{IncludeUnused: true})
	return err
}

// close ends the history session. savedTo is empty unless the final edition was written.
func (s *session) close(ctx context.Context, savedTo string) {
	if s.rec == nil {
		return
	}
	if err := s.rec.Close(ctx, savedTo); err != nil {
		s.d.log.Warn("failed to close history session", zap.String("session_id", s.rec.SessionID()), zap.Error(err))
	}
}
