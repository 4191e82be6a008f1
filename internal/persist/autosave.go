package persist

import (
	"context"

	"go.uber.org/zap"

	"github.com/ftnpaper/curator/internal/config"
	"github.com/ftnpaper/curator/internal/edition"
)

// AutoSaver rewrites one snapshot file after every recorded change.
type AutoSaver struct {
	// Path is the validated target file.
	Path string

	// IncludeUnused keeps the unused pool in the file. The final output omits it;
	// session files used by one-shot commands keep it.
	IncludeUnused bool

	cfg    *config.Config
	logger *zap.Logger
	writes int
}

// NewAutoSaver validates path for writing and returns a saver bound to it.
func NewAutoSaver(path string, cfg *config.Config, logger *zap.Logger) (*AutoSaver, error) {
	if err := ValidatePath(path, PathCheckWrite, cfg); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutoSaver{Path: path, cfg: cfg, logger: logger.With(zap.String("path", path))}, nil
}

// Persist writes the edition wholesale. Last writer wins.
func (a *AutoSaver) Persist(ctx context.Context, e *edition.Edition) error {
	out, err := Write(ctx, a.Path, a.cfg, e, edition.EncodeOptions{IncludeUnused: a.IncludeUnused})
	if err != nil {
		return err
	}
	a.writes++
	a.logger.Debug("auto-saved", zap.Int("bytes", out.Bytes), zap.Int("writes", a.writes))
	return nil
}

// Writes is the number of successful auto-saves.
func (a *AutoSaver) Writes() int {
	return a.writes
}
