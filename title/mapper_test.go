package title

import "testing"

func testAliases() []Alias {
	return []Alias{
		{SourceTitle: "Grand Theft Auto V", TargetTitle: "GTA V"},
		{SourceTitle: "The Witcher 3: Wild Hunt", TargetTitle: "Witcher 3", Note: "list drops the subtitle"},
	}
}

func TestMapperSourceToTarget(t *testing.T) {
	m := NewMapper(testAliases())

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "exact match", input: "Grand Theft Auto V", expected: "GTA V"},
		{name: "case-insensitive match", input: "grand theft auto v", expected: "GTA V"},
		{name: "identity fallback", input: "Hades", expected: "Hades"},
		{name: "returned casing from table", input: "THE WITCHER 3: WILD HUNT", expected: "Witcher 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.SourceToTarget(tt.input); got != tt.expected {
				t.Fatalf("SourceToTarget(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMapperTargetToSource(t *testing.T) {
	m := NewMapper(testAliases())

	if got := m.TargetToSource("gta v"); got != "Grand Theft Auto V" {
		t.Fatalf("TargetToSource(gta v) = %q", got)
	}
	if got := m.TargetToSource("Unmapped Game"); got != "Unmapped Game" {
		t.Fatalf("identity fallback broken: %q", got)
	}
}

func TestMapperSkipsIncompleteAliases(t *testing.T) {
	m := NewMapper([]Alias{
		{SourceTitle: "Only Source"},
		{TargetTitle: "Only Target"},
		{SourceTitle: "A", TargetTitle: "B"},
	})
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
}

func TestOverrideSet(t *testing.T) {
	s := NewOverrideSet([]Override{
		{TargetTitle: "Call of Duty: Black Ops 6", Reason: "manually curated"},
		{TargetTitle: ""},
	})

	if !s.IsExempt("Call of Duty: Black Ops 6") {
		t.Fatalf("exact title should be exempt")
	}
	if !s.IsExempt("call of duty: black ops 6") {
		t.Fatalf("membership should be case-insensitive")
	}
	if s.IsExempt("Call of Duty") {
		t.Fatalf("prefix must not be exempt")
	}
	if s.Len() != 1 {
		t.Fatalf("empty titles must be skipped, Len() = %d", s.Len())
	}
}
