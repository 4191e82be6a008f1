package theme

// NumDays is the number of daily editions built from one newsletter issue.
const NumDays = 4

// defaultThemes is the static theme table, one entry per day.
var defaultThemes = []Definition{
	{
		Day:  1,
		Name: "Health & Medicine",
		Keywords: []string{
			"health", "vaccine", "vaccination", "malaria", "disease", "hospital", "medicine",
			"cancer", "mortality", "hiv", "polio", "measles", "drug", "treatment", "patients",
		},
	},
	{
		Day:  2,
		Name: "Climate & Environment",
		Keywords: []string{
			"climate", "solar", "wind", "renewable", "emissions", "coal", "forest", "species",
			"conservation", "ocean", "energy", "carbon", "wildlife", "deforestation", "battery",
		},
	},
	{
		Day:  3,
		Name: "Society & Human Rights",
		Keywords: []string{
			"rights", "women", "poverty", "education", "school", "law", "court", "democracy",
			"equality", "children", "refugees", "justice", "marriage", "income", "workers",
		},
	},
	{
		Day:  4,
		Name: "Science & Progress",
		Keywords: []string{
			"science", "research", "technology", "space", "ai", "discovery", "scientists",
			"innovation", "internet", "study", "satellite", "physics", "engineering", "data",
		},
	},
}

// Defaults returns a copy of the static theme table.
func Defaults() []Definition {
	out := make([]Definition, len(defaultThemes))
	for i, d := range defaultThemes {
		kw := make([]string, len(d.Keywords))
		copy(kw, d.Keywords)
		out[i] = Definition{Day: d.Day, Name: d.Name, Keywords: kw}
	}
	return out
}

// ForDay returns the definition for day from defs, falling back to the static table.
func ForDay(defs []Definition, day int) (Definition, bool) {
	for _, d := range defs {
		if d.Day == day {
			return d, true
		}
	}
	for _, d := range defaultThemes {
		if d.Day == day {
			return d, true
		}
	}
	return Definition{}, false
}

// IsDefaultName reports whether name matches the static table's name for day.
func IsDefaultName(day int, name string) bool {
	for _, d := range defaultThemes {
		if d.Day == day {
			return Key(d.Name) == Key(name)
		}
	}
	return false
}
