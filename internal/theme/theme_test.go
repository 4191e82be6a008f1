package theme

import (
	"testing"
)

func TestKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Health & Medicine", "health_medicine"},
		{"  Climate / Environment ", "climate_environment"},
		{"AI", "ai"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Key(tt.input); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAssess(t *testing.T) {
	tests := []struct {
		name         string
		count        int
		highStrength int
		want         Status
	}{
		{"no stories", 0, 0, StatusUnknown},
		{"too few", 2, 2, StatusWeak},
		{"three weak stories", 3, 0, StatusWeak},
		{"three with a strong one", 3, 1, StatusHealthy},
		{"full day", 6, 2, StatusHealthy},
		{"overloaded", 7, 3, StatusOverloaded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Assess(tt.count, tt.highStrength); got != tt.want {
				t.Errorf("Assess(%d, %d) = %q, want %q", tt.count, tt.highStrength, got, tt.want)
			}
		})
	}
}

func TestSplitFrom(t *testing.T) {
	src := SplitFrom("health_medicine")
	if src != "split_from_health_medicine" {
		t.Errorf("SplitFrom() = %q", src)
	}
	parent, ok := src.IsSplit()
	if !ok || parent != "health_medicine" {
		t.Errorf("IsSplit() = %q, %v", parent, ok)
	}
	if _, ok := SourceEdited.IsSplit(); ok {
		t.Error("edited source should not be a split")
	}
}

func TestDefaults_IsCopy(t *testing.T) {
	defs := Defaults()
	if len(defs) != NumDays {
		t.Fatalf("len(Defaults()) = %d, want %d", len(defs), NumDays)
	}
	defs[0].Name = "changed"
	defs[0].Keywords[0] = "changed"
	if Defaults()[0].Name == "changed" || Defaults()[0].Keywords[0] == "changed" {
		t.Error("Defaults() must return a copy")
	}
}

func TestForDay(t *testing.T) {
	custom := []Definition{{Day: 2, Name: "Oceans"}}

	d, ok := ForDay(custom, 2)
	if !ok || d.Name != "Oceans" {
		t.Errorf("ForDay(custom, 2) = %+v, %v", d, ok)
	}
	d, ok = ForDay(custom, 1)
	if !ok || d.Name != "Health & Medicine" {
		t.Errorf("ForDay(custom, 1) fallback = %+v, %v", d, ok)
	}
	if _, ok := ForDay(nil, 9); ok {
		t.Error("ForDay(nil, 9) should not resolve")
	}
}

func TestIsDefaultName(t *testing.T) {
	if !IsDefaultName(1, "health  &  MEDICINE") {
		t.Error("expected default name match")
	}
	if IsDefaultName(1, "Oceans") {
		t.Error("unexpected default name match")
	}
}

func TestNewMetaAndClone(t *testing.T) {
	m := NewMeta("Good News, Briefly", SourceEdited)
	if m.Key != "good_news_briefly" || m.Status != StatusUnknown || m.Source != SourceEdited {
		t.Errorf("NewMeta() = %+v", m)
	}
	c := m.Clone()
	c.Name = "other"
	if m.Name == "other" {
		t.Error("Clone() must not alias")
	}
	var nilMeta *Meta
	if nilMeta.Clone() != nil {
		t.Error("nil Clone should be nil")
	}
}
