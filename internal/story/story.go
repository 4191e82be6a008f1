package story

// Story is a unit of newsletter content placed in exactly one slot of an edition
// (a day's main, second or mini list, or the unused pool).
// Stories are not edited in place; Combine and RewriteStory produce a new Story.
type Story struct {
	// ID is a ULID assigned at ingestion. It is never serialized.
	ID string

	// Title is the full headline
	Title string

	// Content is the story body text
	Content string

	// SourceURL is the primary link
	SourceURL string

	// SourceURLs is the ordered, deduplicated list of links (optional)
	SourceURLs []string

	// AllURLs mirrors SourceURLs for records produced by the extractor (optional)
	AllURLs []string

	// TUIHeadline is a short display headline (optional)
	TUIHeadline string
}

// HasTitle reports whether the story carries a non-blank title.
func (s *Story) HasTitle() bool {
	return s != nil && Normalize(s.Title) != ""
}

// IsEmpty reports whether the story has no title, content or links.
func (s *Story) IsEmpty() bool {
	if s == nil {
		return true
	}
	return Normalize(s.Title) == "" && Normalize(s.Content) == "" && len(s.URLs()) == 0
}

// URLs returns every link of the story, deduplicated in first-seen order:
// SourceURL first, then SourceURLs, then AllURLs.
func (s *Story) URLs() []string {
	if s == nil {
		return nil
	}
	lists := [][]string{{s.SourceURL}, s.SourceURLs, s.AllURLs}
	return DedupURLs(lists...)
}

// Clone returns a deep copy of the story, keeping its ID.
func (s *Story) Clone() *Story {
	if s == nil {
		return nil
	}
	c := *s
	c.SourceURLs = cloneStrings(s.SourceURLs)
	c.AllURLs = cloneStrings(s.AllURLs)
	return &c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
