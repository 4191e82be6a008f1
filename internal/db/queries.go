package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/ftnpaper/curator/internal/errors"
)

// Session is one archived curation session.
type Session struct {
	ID          string  `json:"id"`
	SourcePath  string  `json:"source_path"`
	OutputPath  *string `json:"output_path,omitempty"`
	FrontEnd    string  `json:"front_end"`
	StartedAt   int64   `json:"started_at"`
	EndedAt     *int64  `json:"ended_at,omitempty"`
	ChangeCount int     `json:"change_count"`
	Saved       bool    `json:"saved"`
}

// ChangeRow is one archived change-log entry.
type ChangeRow struct {
	SessionID string `json:"session_id"`
	Seq       int    `json:"seq"`
	Kind      string `json:"kind"`
	Day       int    `json:"day"`
	StoryID   string `json:"story_id,omitempty"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"created_at"`
}

// ErrUniqueConstraint is returned when an insert violates a UNIQUE constraint.
var ErrUniqueConstraint = &errors.CuratorError{
	Code:    errors.ErrConflict,
	Status:  409,
	Message: "unique constraint violation",
}

// InsertSession stores a new session row.
func InsertSession(ctx context.Context, db *sql.DB, s *Session) error {
	query := `
		INSERT INTO sessions (id, source_path, output_path, front_end, started_at, ended_at, change_count, saved)
		VALUES (?, ?, ?, ?, ?, NULL, 0, 0)
	`
	_, err := db.ExecContext(ctx, query, s.ID, s.SourcePath, toNullString(s.OutputPath), s.FrontEnd, s.StartedAt)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}
	return nil
}

// InsertChange appends a change row and bumps the session's change count.
func InsertChange(ctx context.Context, db *sql.DB, c *ChangeRow) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO changes (session_id, seq, kind, day, story_id, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	var storyID sql.NullString
	if c.StoryID != "" {
		storyID = sql.NullString{String: c.StoryID, Valid: true}
	}
	if _, err := tx.ExecContext(ctx, query,
		c.SessionID, c.Seq, c.Kind, c.Day, storyID, c.Message, c.CreatedAt,
	); err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		if isForeignKeyError(err) {
			return errors.NewNotFound(c.SessionID)
		}
		return errors.NewInternal(err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE sessions SET change_count = change_count + 1 WHERE id = ?`, c.SessionID,
	); err != nil {
		return errors.NewInternal(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// EndSession stamps ended_at and, when outputPath is non-empty, marks the session saved.
func EndSession(ctx context.Context, db *sql.DB, id string, outputPath string) error {
	now := time.Now().Unix()

	var (
		result sql.Result
		err    error
	)
	if outputPath != "" {
		result, err = db.ExecContext(ctx,
			`UPDATE sessions SET ended_at = ?, output_path = ?, saved = 1 WHERE id = ?`,
			now, outputPath, id)
	} else {
		result, err = db.ExecContext(ctx, `UPDATE sessions SET ended_at = ? WHERE id = ?`, now, id)
	}
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}

// GetSession retrieves a session by ID.
func GetSession(ctx context.Context, db *sql.DB, id string) (*Session, error) {
	query := `
		SELECT id, source_path, output_path, front_end, started_at, ended_at, change_count, saved
		FROM sessions
		WHERE id = ?
	`
	s, err := scanSession(db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return s, nil
}

// ListSessions returns the most recent sessions first.
func ListSessions(ctx context.Context, db *sql.DB, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, source_path, output_path, front_end, started_at, ended_at, change_count, saved
		FROM sessions
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`
	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return sessions, nil
}

// ListChanges returns a session's change log in sequence order.
func ListChanges(ctx context.Context, db *sql.DB, sessionID string) ([]ChangeRow, error) {
	query := `
		SELECT session_id, seq, kind, day, story_id, message, created_at
		FROM changes
		WHERE session_id = ?
		ORDER BY seq
	`
	rows, err := db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	changes := []ChangeRow{}
	for rows.Next() {
		var (
			c       ChangeRow
			storyID sql.NullString
		)
		if err := rows.Scan(&c.SessionID, &c.Seq, &c.Kind, &c.Day, &storyID, &c.Message, &c.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		c.StoryID = storyID.String
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return changes, nil
}

// PurgeBefore deletes sessions started before the cutoff along with their changes.
func PurgeBefore(ctx context.Context, db *sql.DB, cutoff int64) (int, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanSession scans a single row into a Session struct.
func scanSession(row rowScanner) (*Session, error) {
	var (
		s          Session
		outputPath sql.NullString
		endedAt    sql.NullInt64
		saved      int
	)
	if err := row.Scan(&s.ID, &s.SourcePath, &outputPath, &s.FrontEnd,
		&s.StartedAt, &endedAt, &s.ChangeCount, &saved); err != nil {
		return nil, err
	}
	s.OutputPath = fromNullString(outputPath)
	if endedAt.Valid {
		s.EndedAt = &endedAt.Int64
	}
	s.Saved = saved != 0
	return &s, nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
