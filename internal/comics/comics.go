// Package comics loads the comic strips offered in the final review step.
package comics

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ftnpaper/curator/internal/errors"
)

// Comic is a strip that can be attached to one day's edition.
type Comic struct {
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	SourceURL string `json:"source_url,omitempty"`
	Alt       string `json:"alt,omitempty"`
}

// Clone returns a copy of the comic.
func (c *Comic) Clone() *Comic {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Source lists candidate comics.
type Source interface {
	List(ctx context.Context) ([]Comic, error)
}

// FileSource reads comics from a JSON file holding either a list or {"comics": [...]}.
type FileSource struct {
	Path string
}

// List implements Source.
func (f *FileSource) List(ctx context.Context) ([]Comic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFound(f.Path)
		}
		return nil, errors.NewInternal(fmt.Errorf("read comics: %w", err))
	}
	return Parse(data)
}

// Parse decodes a comics document and drops entries without an image.
func Parse(data []byte) ([]Comic, error) {
	trimmed := strings.TrimSpace(string(data))
	var list []Comic
	if strings.HasPrefix(trimmed, "{") {
		var wrapper struct {
			Comics []Comic `json:"comics"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid comics file: %v", err))
		}
		list = wrapper.Comics
	} else if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid comics file: %v", err))
	}

	out := make([]Comic, 0, len(list))
	for _, c := range list {
		if strings.TrimSpace(c.ImageURL) == "" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Static is an in-memory Source.
type Static []Comic

// List implements Source.
func (s Static) List(context.Context) ([]Comic, error) {
	return s, nil
}
