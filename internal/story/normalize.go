package story

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// ShortTitleMax is the rune budget for ShortTitle when no TUI headline is set.
const ShortTitleMax = 50

// Normalize trims, lowercases and collapses internal whitespace to single spaces.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// CollapseSpace trims and collapses internal whitespace without changing case.
func CollapseSpace(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}

// CountChars returns the character count as runes (not bytes).
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}

// ShortTitle returns the display headline: the TUI headline when present,
// otherwise the title collapsed to one line and truncated to ShortTitleMax runes.
func (s *Story) ShortTitle() string {
	if s == nil {
		return ""
	}
	if h := CollapseSpace(s.TUIHeadline); h != "" {
		return h
	}
	return Truncate(CollapseSpace(s.Title), ShortTitleMax)
}

// Truncate shortens text to at most max runes, ending with "..." when cut.
func Truncate(text string, max int) string {
	if max <= 3 || CountChars(text) <= max {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:max-3])) + "..."
}

// DedupURLs merges URL lists, dropping blanks and duplicates while keeping first-seen order.
func DedupURLs(lists ...[]string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, list := range lists {
		for _, u := range list {
			u = strings.TrimSpace(u)
			if u == "" || seen[u] {
				continue
			}
			seen[u] = true
			result = append(result, u)
		}
	}
	return result
}
