// Package theme holds the default day themes and the descriptive per-day theme metadata.
// Metadata is bookkeeping only; nothing in the curation model gates on it.
package theme

import (
	"regexp"
	"strings"
)

// Source records how a day's theme name was assigned.
type Source string

const (
	SourceDefault   Source = "default"
	SourceGenerated Source = "generated"
	SourceEdited    Source = "edited"
)

// splitPrefix prefixes sources for themes split off another theme.
const splitPrefix = "split_from_"

// SplitFrom returns the source tag for a theme split off the theme with the given key.
func SplitFrom(key string) Source {
	return Source(splitPrefix + key)
}

// IsSplit reports whether the source marks a split theme, returning the parent key.
func (s Source) IsSplit() (string, bool) {
	if strings.HasPrefix(string(s), splitPrefix) {
		return strings.TrimPrefix(string(s), splitPrefix), true
	}
	return "", false
}

// Status is the health assessment of a day's theme.
type Status string

const (
	StatusHealthy    Status = "healthy"
	StatusWeak       Status = "weak"
	StatusOverloaded Status = "overloaded"
	StatusUnknown    Status = "unknown"
)

// Meta describes one day's theme.
type Meta struct {
	Name              string `json:"name"`
	Key               string `json:"key"`
	Source            Source `json:"source"`
	Status            Status `json:"status"`
	StoryCount        int    `json:"story_count"`
	HighStrengthCount int    `json:"high_strength_count"`
}

// Clone returns a copy of the metadata.
func (m *Meta) Clone() *Meta {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// Definition names a theme and the keywords that suggest it.
type Definition struct {
	Day      int      `json:"day"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords,omitempty"`
}

// Key returns the definition's normalized identifier.
func (d Definition) Key() string {
	return Key(d.Name)
}

var nonKeyChars = regexp.MustCompile(`[^a-z0-9]+`)

// Key normalizes a theme name into an identifier: lowercase, runs of
// non-alphanumerics collapsed to "_", no leading or trailing "_".
func Key(name string) string {
	k := nonKeyChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	return strings.Trim(k, "_")
}

// Status thresholds used by Assess.
const (
	WeakBelow      = 3
	OverloadedOver = 6
)

// Assess rates a theme by how many stories it attracted.
func Assess(storyCount, highStrengthCount int) Status {
	switch {
	case storyCount <= 0:
		return StatusUnknown
	case storyCount > OverloadedOver:
		return StatusOverloaded
	case storyCount < WeakBelow:
		return StatusWeak
	case highStrengthCount == 0 && storyCount == WeakBelow:
		return StatusWeak
	default:
		return StatusHealthy
	}
}

// NewMeta builds metadata for a theme name with the given source.
func NewMeta(name string, source Source) *Meta {
	return &Meta{
		Name:   name,
		Key:    Key(name),
		Source: source,
		Status: StatusUnknown,
	}
}
