package story

// Summary represents a story's display metadata without the full content.
// Used by listings (CLI show, MCP, review tables) to keep payloads small.
type Summary struct {
	// ID is the story's ULID (stable for the lifetime of a session)
	ID string `json:"id"`

	// Index is the 1-based display index within its day or the unused pool
	Index int `json:"index"`

	// Slot is "main", "second", "mini" or "unused"
	Slot string `json:"slot"`

	// Headline is the short display title
	Headline string `json:"headline"`

	// Title is the full title
	Title string `json:"title"`

	// SourceURL is the primary link
	SourceURL string `json:"source_url,omitempty"`

	// Chars is the content length in runes
	Chars int `json:"chars"`
}

// ToSummary converts a Story to a Summary at the given position.
func (s *Story) ToSummary(index int, slot string) Summary {
	return Summary{
		ID:        s.ID,
		Index:     index,
		Slot:      slot,
		Headline:  s.ShortTitle(),
		Title:     s.Title,
		SourceURL: s.SourceURL,
		Chars:     CountChars(s.Content),
	}
}
