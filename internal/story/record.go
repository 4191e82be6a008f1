package story

// Record is the JSON shape of a story in snapshot files.
type Record struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	SourceURL   string   `json:"source_url"`
	TUIHeadline string   `json:"tui_headline,omitempty"`
	SourceURLs  []string `json:"source_urls,omitempty"`
	AllURLs     []string `json:"all_urls,omitempty"`
}

// IsZero reports whether the record carries nothing at all (e.g. "{}").
func (r *Record) IsZero() bool {
	if r == nil {
		return true
	}
	return r.Title == "" && r.Content == "" && r.SourceURL == "" && r.TUIHeadline == "" &&
		len(r.SourceURLs) == 0 && len(r.AllURLs) == 0
}

// HasTitle reports whether the record has a non-blank title.
func (r *Record) HasTitle() bool {
	return r != nil && Normalize(r.Title) != ""
}

// ToStory converts a Record to a Story with a freshly assigned ID.
func (r *Record) ToStory() *Story {
	return &Story{
		ID:          NewID(),
		Title:       r.Title,
		Content:     r.Content,
		SourceURL:   r.SourceURL,
		SourceURLs:  cloneStrings(r.SourceURLs),
		AllURLs:     cloneStrings(r.AllURLs),
		TUIHeadline: r.TUIHeadline,
	}
}

// ToRecord converts a Story to its snapshot Record.
func ToRecord(s *Story) *Record {
	if s == nil {
		return nil
	}
	return &Record{
		Title:       s.Title,
		Content:     s.Content,
		SourceURL:   s.SourceURL,
		TUIHeadline: s.TUIHeadline,
		SourceURLs:  cloneStrings(s.SourceURLs),
		AllURLs:     cloneStrings(s.AllURLs),
	}
}

// ToRecords converts a story list, preserving order.
func ToRecords(stories []*Story) []*Record {
	records := make([]*Record, 0, len(stories))
	for _, s := range stories {
		records = append(records, ToRecord(s))
	}
	return records
}
