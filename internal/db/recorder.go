package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/ftnpaper/curator/internal/curator"
	"github.com/ftnpaper/curator/internal/story"
)

// Recorder archives one session's change log as it happens.
// Write failures are logged and never interrupt the session.
type Recorder struct {
	db        *sql.DB
	sessionID string
	logger    *zap.Logger
	failures  int
}

// StartSession inserts a session row and returns a Recorder for it.
func StartSession(ctx context.Context, db *sql.DB, sourcePath, frontEnd string, logger *zap.Logger) (*Recorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		ID:         story.NewID(),
		SourcePath: sourcePath,
		FrontEnd:   frontEnd,
		StartedAt:  time.Now().Unix(),
	}
	if err := InsertSession(ctx, db, s); err != nil {
		return nil, err
	}
	return &Recorder{
		db:        db,
		sessionID: s.ID,
		logger:    logger.With(zap.String("session_id", s.ID)),
	}, nil
}

// SessionID returns the archived session's ID.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Failures returns how many change rows could not be written.
func (r *Recorder) Failures() int {
	return r.failures
}

// Handle is a curator subscriber. Only change events are archived.
func (r *Recorder) Handle(ev curator.Event) {
	if ev.Kind != curator.EventChange || ev.Change == nil {
		return
	}
	ch := ev.Change
	row := &ChangeRow{
		SessionID: r.sessionID,
		Seq:       ch.Seq,
		Kind:      string(ch.Kind),
		Day:       ch.Day,
		StoryID:   ch.StoryID,
		Message:   ch.Message,
		CreatedAt: ch.At.Unix(),
	}
	if err := InsertChange(context.Background(), r.db, row); err != nil {
		r.failures++
		r.logger.Error("failed to archive change", zap.Int("seq", ch.Seq), zap.Error(err))
	}
}

// Close ends the session. outputPath is recorded when the edition was saved.
func (r *Recorder) Close(ctx context.Context, outputPath string) error {
	return EndSession(ctx, r.db, r.sessionID, outputPath)
}
