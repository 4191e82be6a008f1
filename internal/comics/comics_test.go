package comics

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftnpaper/curator/internal/errors"
)

func TestParse_List(t *testing.T) {
	got, err := Parse([]byte(`[{"title":"A","image_url":"https://img/a.png"},{"title":"no image"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)
}

func TestParse_Wrapped(t *testing.T) {
	got, err := Parse([]byte(` {"comics":[{"title":"B","image_url":"https://img/b.png","alt":"b"}]}`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Alt)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "comics.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title":"C","image_url":"https://img/c.png"}]`), 0600))

	got, err := (&FileSource{Path: path}).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = (&FileSource{Path: filepath.Join(dir, "missing.json")}).List(context.Background())
	assert.True(t, errors.Is(err, errors.ErrFileNotFound))
}

func TestStatic(t *testing.T) {
	s := Static{{Title: "X", ImageURL: "u"}}
	got, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "X", got[0].Title)

	c := got[0].Clone()
	c.Title = "Y"
	assert.Equal(t, "X", s[0].Title)
}
