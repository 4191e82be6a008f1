//go:build windows

package persist

import (
	"os"

	"github.com/ftnpaper/curator/internal/errors"
)

// openFileNoFollow opens a snapshot for writing. Windows has no O_NOFOLLOW;
// ValidatePath has already refused symlinked paths.
func openFileNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, flag, perm)
}

// openFileNoFollowRead opens a snapshot for reading.
func openFileNoFollowRead(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFound(path)
		}
		return nil, err
	}
	return f, nil
}
