package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStory_URLs(t *testing.T) {
	s := &Story{
		SourceURL:  "https://one.example",
		SourceURLs: []string{"https://one.example", "https://two.example"},
		AllURLs:    []string{"https://three.example", "https://two.example"},
	}
	assert.Equal(t, []string{"https://one.example", "https://two.example", "https://three.example"}, s.URLs())

	var nilStory *Story
	assert.Nil(t, nilStory.URLs())
}

func TestStory_HasTitleAndIsEmpty(t *testing.T) {
	assert.False(t, (*Story)(nil).HasTitle())
	assert.True(t, (*Story)(nil).IsEmpty())
	assert.False(t, (&Story{Title: "   "}).HasTitle())
	assert.True(t, (&Story{Title: " "}).IsEmpty())
	assert.False(t, (&Story{Content: "body"}).IsEmpty())
	assert.True(t, (&Story{Title: "Headline"}).HasTitle())
}

func TestStory_CloneIsDeep(t *testing.T) {
	s := &Story{ID: "01A", Title: "T", SourceURLs: []string{"https://a.example"}}
	c := s.Clone()
	require.NotSame(t, s, c)
	assert.Equal(t, s.ID, c.ID)

	c.SourceURLs[0] = "https://changed.example"
	assert.Equal(t, "https://a.example", s.SourceURLs[0])
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		require.Len(t, id, 26)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestRecord_RoundTrip(t *testing.T) {
	r := &Record{
		Title:       "Wind beats gas",
		Content:     "Body",
		SourceURL:   "https://a.example",
		TUIHeadline: "Wind",
		SourceURLs:  []string{"https://a.example"},
	}
	s := r.ToStory()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, r, ToRecord(s))

	assert.True(t, (&Record{}).IsZero())
	assert.True(t, (*Record)(nil).IsZero())
	assert.False(t, (&Record{Content: "x"}).IsZero())
	assert.False(t, (&Record{Content: "x"}).HasTitle())
	assert.Nil(t, ToRecord(nil))
}

func TestCombine(t *testing.T) {
	a := &Story{ID: "A", Title: "Alpha", Content: "alpha body", SourceURL: "https://a.example",
		SourceURLs: []string{"https://a.example", "https://shared.example"}}
	b := &Story{ID: "B", Title: "Beta", Content: "beta body", SourceURL: "https://shared.example",
		AllURLs: []string{"https://b.example"}}

	combined, err := Combine([]*Story{a, b})
	require.NoError(t, err)

	assert.NotEmpty(t, combined.ID)
	assert.NotEqual(t, a.ID, combined.ID)
	assert.Equal(t, "Alpha\n\nBeta", combined.Title)
	assert.Equal(t, "alpha body\n\nbeta body", combined.Content)
	assert.Equal(t, "https://a.example", combined.SourceURL)
	want := []string{"https://a.example", "https://shared.example", "https://b.example"}
	assert.Equal(t, want, combined.SourceURLs)
	assert.Equal(t, want, combined.AllURLs)
	assert.Equal(t, "Combined: Alpha + 1 more", combined.TUIHeadline)

	// inputs untouched
	assert.Equal(t, "Alpha", a.Title)
}

func TestCombine_UsesShortTitleOfFirst(t *testing.T) {
	a := &Story{Title: "Long title", TUIHeadline: "Short"}
	b := &Story{Title: "B"}
	c := &Story{Title: "C"}

	combined, err := Combine([]*Story{a, b, c})
	require.NoError(t, err)
	assert.Equal(t, "Combined: Short + 2 more", combined.TUIHeadline)
	assert.Empty(t, combined.SourceURL)
}

func TestCombine_RequiresTwo(t *testing.T) {
	_, err := Combine([]*Story{{Title: "only"}})
	assert.Error(t, err)

	_, err = Combine([]*Story{{Title: "a"}, nil})
	assert.Error(t, err)
}

func TestToSummary(t *testing.T) {
	s := &Story{ID: "01X", Title: "Clean water for 2m people", Content: "héllo", TUIHeadline: "Water"}
	sum := s.ToSummary(3, "mini")
	assert.Equal(t, Summary{ID: "01X", Index: 3, Slot: "mini", Headline: "Water", Title: s.Title, Chars: 5}, sum)
}
