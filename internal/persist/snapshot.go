package persist

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ftnpaper/curator/internal/config"
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/errors"
)

// maxSnapshotBytes bounds how much of a snapshot file is read.
const maxSnapshotBytes = 32 << 20

// WriteOutput contains the result of a snapshot write.
type WriteOutput struct {
	Path      string `json:"path"`
	Bytes     int    `json:"bytes"`
	WrittenAt int64  `json:"written_at"`
}

// Load reads and decodes the snapshot at path. A missing file is FILE_NOT_FOUND.
func Load(path string, cfg *config.Config) (*edition.Edition, error) {
	if err := ValidatePath(path, PathCheckRead, cfg); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(path)
	if err != nil {
		if errors.Is(err, errors.ErrFileNotFound) || errors.Is(err, errors.ErrInvalidRequest) {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open snapshot: %w", err))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSnapshotBytes+1))
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to read snapshot: %w", err))
	}
	if len(data) > maxSnapshotBytes {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("snapshot exceeds %d bytes", maxSnapshotBytes))
	}

	ed, err := edition.Decode(data)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}
	return ed, nil
}

// Write encodes the edition and replaces path wholesale: the bytes go to a temp
// file in the same directory which is then renamed into place, so a failed
// write never leaves a truncated snapshot behind.
func Write(ctx context.Context, path string, cfg *config.Config, e *edition.Edition, opts edition.EncodeOptions) (*WriteOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidatePath(path, PathCheckWrite, cfg); err != nil {
		return nil, err
	}

	data, err := edition.Encode(e, opts)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to encode snapshot: %w", err))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create snapshot directory: %w", err))
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create snapshot file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close snapshot file: %w", err))
	}
	file = nil

	// os.Rename would follow a symlink planted after validation.
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInvalidRequest("snapshot path is a symlink")
	}

	if err := os.Rename(tempPath, path); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize snapshot: %w", err))
	}

	success = true
	return &WriteOutput{
		Path:      path,
		Bytes:     len(data),
		WrittenAt: time.Now().Unix(),
	}, nil
}
