package story

import (
	"fmt"
	"strings"
)

// Separator joins titles and contents of combined stories.
const Separator = "\n\n"

// Combine merges two or more stories into one new story.
// Titles and contents are joined with Separator in input order; links are the
// deduplicated union of every input's URLs in first-seen order.
func Combine(stories []*Story) (*Story, error) {
	if len(stories) < 2 {
		return nil, fmt.Errorf("combine needs at least 2 stories, got %d", len(stories))
	}

	titles := make([]string, 0, len(stories))
	contents := make([]string, 0, len(stories))
	urlLists := make([][]string, 0, len(stories))
	for _, s := range stories {
		if s == nil {
			return nil, fmt.Errorf("combine: nil story")
		}
		titles = append(titles, s.Title)
		contents = append(contents, s.Content)
		urlLists = append(urlLists, s.URLs())
	}

	urls := DedupURLs(urlLists...)
	combined := &Story{
		ID:          NewID(),
		Title:       strings.Join(titles, Separator),
		Content:     strings.Join(contents, Separator),
		SourceURLs:  urls,
		AllURLs:     cloneStrings(urls),
		TUIHeadline: fmt.Sprintf("Combined: %s + %d more", stories[0].ShortTitle(), len(stories)-1),
	}
	if len(urls) > 0 {
		combined.SourceURL = urls[0]
	}
	return combined, nil
}
