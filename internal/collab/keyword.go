package collab

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/ftnpaper/curator/internal/theme"
)

// KeywordClassifier assigns each story to the day whose theme keywords it
// mentions most. It is a stand-in for a model-backed classifier.
type KeywordClassifier struct {
	// MaxMinis caps minis per day; extra stories go unused. 0 means 4.
	MaxMinis int

	// HighStrength is the strength at which a story is strong enough to be
	// a second lead. 0 means 3.
	HighStrength int
}

const maxStrength = 5

type scored struct {
	id       string
	strength int
}

// Classify implements Classifier.
func (k *KeywordClassifier) Classify(ctx context.Context, req ClassifyRequest) (*Grouping, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blocked := make(map[string]bool, len(req.Blocklisted))
	for _, id := range req.Blocklisted {
		blocked[id] = true
	}

	defs := make([]theme.Definition, theme.NumDays)
	for d := 1; d <= theme.NumDays; d++ {
		defs[d-1], _ = theme.ForDay(req.Themes, d)
	}

	buckets := make([][]scored, theme.NumDays)
	out := &Grouping{}

	for _, item := range req.Stories {
		if blocked[item.ID] {
			out.Unused = append(out.Unused, item.ID)
			continue
		}
		day, score := bestDay(item, defs)
		if day == 0 {
			out.Unused = append(out.Unused, item.ID)
			continue
		}
		strength := score
		if item.Strength > strength {
			strength = item.Strength
		}
		if strength > maxStrength {
			strength = maxStrength
		}
		buckets[day-1] = append(buckets[day-1], scored{id: item.ID, strength: strength})
	}

	for i, bucket := range buckets {
		sort.SliceStable(bucket, func(a, b int) bool { return bucket[a].strength > bucket[b].strength })

		g := DayGroup{Day: i + 1, Theme: defs[i].Name}
		for _, s := range bucket {
			if s.strength >= k.highStrength() {
				g.HighStrengthCount++
			}
		}

		rest := bucket
		if len(rest) > 0 {
			g.Main = rest[0].id
			rest = rest[1:]
		}
		if len(rest) > 0 && rest[0].strength >= k.highStrength() {
			g.Second = rest[0].id
			rest = rest[1:]
		}
		for _, s := range rest {
			if len(g.Minis) < k.maxMinis() {
				g.Minis = append(g.Minis, s.id)
			} else {
				out.Unused = append(out.Unused, s.id)
			}
		}
		out.Days = append(out.Days, g)
	}

	return out, nil
}

// MatchThemes returns the keys of every theme whose keywords occur in the
// text, most hits first. Ties keep day order.
func MatchThemes(text string, defs []theme.Definition) []string {
	words := tokenize(text)
	type hit struct {
		key   string
		score int
	}
	var hits []hit
	for _, def := range defs {
		if score := keywordScore(words, def); score > 0 {
			hits = append(hits, hit{key: def.Key(), score: score})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].score > hits[b].score })

	keys := make([]string, len(hits))
	for i, h := range hits {
		keys[i] = h.key
	}
	return keys
}

func keywordScore(words map[string]int, def theme.Definition) int {
	score := 0
	for _, kw := range def.Keywords {
		score += words[strings.ToLower(kw)]
	}
	return score
}

// bestDay returns the day with the most keyword hits. Stories with no hits
// stay on the day whose theme key matches their current one, if any.
func bestDay(item Item, defs []theme.Definition) (int, int) {
	words := tokenize(item.Headline + " " + item.Content)

	bestDay, bestScore := 0, 0
	for _, def := range defs {
		if score := keywordScore(words, def); score > bestScore {
			bestDay, bestScore = def.Day, score
		}
	}
	if bestDay != 0 {
		return bestDay, bestScore
	}

	for _, def := range defs {
		if item.PrimaryTheme != "" && def.Key() == item.PrimaryTheme {
			return def.Day, 0
		}
	}
	return 0, 0
}

func tokenize(text string) map[string]int {
	counts := make(map[string]int)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		counts[w]++
	}
	return counts
}

func (k *KeywordClassifier) maxMinis() int {
	if k.MaxMinis > 0 {
		return k.MaxMinis
	}
	return 4
}

func (k *KeywordClassifier) highStrength() int {
	if k.HighStrength > 0 {
		return k.HighStrength
	}
	return 3
}
