package normalizer

import (
	"strings"
	"testing"
)

func TestNormalizeHeadings_DayForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"hash level two", "## Day 1: Arrival", "# Day 1: Arrival"},
		{"hash level three with dash", "### day 2 - Beaches", "# Day 2: Beaches"},
		{"bold", "**Day 3: Old Town**", "# Day 3: Old Town"},
		{"bare line", "Day 4", "# Day 4: "},
		{"bare line with title", "Day 5: Markets", "# Day 5: Markets"},
		{"already canonical", "# Day 1: Arrival", "# Day 1: Arrival"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeHeadings(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeHeadings(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeHeadings_SectionForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"hash short morning", "### Morning", "## " + SectionMorning},
		{"bold lunch with colon", "**Lunch:**", "## " + SectionLunch},
		{"plain afternoon with colon", "Afternoon:", "## " + SectionAfternoon},
		{"dinner plans", "#### Dinner Plans", "## " + SectionEvening},
		{"lowercase evening", "## evening/dinner plan", "## " + SectionEvening},
		{"already canonical morning", "## " + SectionMorning, "## " + SectionMorning},
		{"already canonical evening", "## " + SectionEvening, "## " + SectionEvening},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeHeadings(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeHeadings(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_CompactLLMOutput(t *testing.T) {
	input := "### Day 1\nMorning:\nVisit the park.\n### Day 2\nMorning:\nVisit the museum."
	want := "# Day 1: \n\n## Morning Activities\n\nVisit the park.\n# Day 2: \n\n## Morning Activities\n\nVisit the museum."

	got := Normalize(input)
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"### Day 1\nMorning:\nVisit the park.\n### Day 2\nMorning:\nVisit the museum.",
		"# Day 1: Arrival\n\n## Morning Activities\n\nWalk the old town.\n\n## Evening/Dinner Plan\n\nSeafood by the port.",
		"**Day 1: Arrival**\n**Lunch:**\nTapas crawl.\n\n\n\nDone.",
		"# Day 1: A\n\n## Morning Activities\n\nStuff.\n\n## Morning Activities\n\nStray stuff.\n\n# Day 3: C\n\n## Morning Activities\n\nMore.",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if twice != once {
			t.Errorf("Normalize is not idempotent for %q:\nonce:  %q\ntwice: %q", input, once, twice)
		}
	}
}

func TestNormalize_BlankLineAfterHeadings(t *testing.T) {
	input := "# Day 1: Arrival\nStraight into content."
	got := Normalize(input)
	want := "# Day 1: Arrival\n\nStraight into content."
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_CollapsesExcessBlankLines(t *testing.T) {
	input := "# Day 1: A\n\n\n\nText"
	got := Normalize(input)
	want := "# Day 1: A\n\nText"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_Empty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty string", got)
	}
}

// Asserts the current best-effort pairing of missing days with stray blocks;
// the heuristic makes no stronger promise than this.
func TestNormalize_FillsMissingDayBeforeStrayBlock(t *testing.T) {
	input := "# Day 1: A\n\n## Morning Activities\n\nStuff.\n\n## Morning Activities\n\nStray stuff.\n\n# Day 3: C\n\n## Morning Activities\n\nMore."

	got := Normalize(input)

	if !strings.Contains(got, "# Day 2: Itinerary") {
		t.Fatalf("expected a synthetic day 2 heading, got:\n%s", got)
	}
	dayTwo := strings.Index(got, "# Day 2: Itinerary")
	stray := strings.Index(got, "Stray stuff.")
	dayThree := strings.Index(got, "# Day 3: C")
	if !(dayTwo < stray && stray < dayThree) {
		t.Errorf("synthetic heading placed wrong:\n%s", got)
	}
}

func TestNormalize_GapFillSkippedBeyondConventionalLength(t *testing.T) {
	input := "## Morning Activities\n\nStray.\n\n# Day 8: Epilogue\n\nText."

	got := Normalize(input)

	if strings.Contains(got, ": Itinerary") {
		t.Errorf("gap repair should be skipped when day numbers exceed %d, got:\n%s", MaxDays, got)
	}
}

func TestNormalize_NoStrayNoRepair(t *testing.T) {
	input := "# Day 1: Only day\n\n## Morning Activities\n\nContent."

	got := Normalize(input)

	if strings.Contains(got, ": Itinerary") {
		t.Errorf("no stray block, so no synthetic heading expected, got:\n%s", got)
	}
}
