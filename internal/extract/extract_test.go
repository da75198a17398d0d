package extract

import (
	"strings"
	"testing"

	"deep-travel-collections/internal/normalizer"
)

const twoDayItinerary = "# Day 1: Arrival\n\n" +
	"## Morning Activities\n\nWalk the old town.\n\n" +
	"## Lunch Recommendation\n\nTapas at the market.\n\n" +
	"## Afternoon Activities\n\nMuseum visit.\n\n" +
	"## Evening/Dinner Plan\n\nSeafood by the port.\n\n" +
	"# Day 2: Coast\n\n" +
	"## Morning Activities\n\nTrain to the coast.\n\n" +
	"## Evening/Dinner Plan\n\nBeachside grill.\n"

func TestDayBlock_CanonicalDay(t *testing.T) {
	day := DayBlock(twoDayItinerary, 1)

	if !day.Extracted {
		t.Fatal("expected day 1 to be extracted")
	}
	if day.Pattern != "canonical" {
		t.Errorf("Pattern = %q, want %q", day.Pattern, "canonical")
	}
	if !strings.HasPrefix(day.Block, "# Day 1: Arrival") {
		t.Errorf("block should start at the day heading, got %q", day.Block)
	}
	if strings.Contains(day.Block, "Day 2") {
		t.Errorf("day 1 block bleeds into day 2: %q", day.Block)
	}
}

func TestDayBlock_SectionsAreIndependent(t *testing.T) {
	day := DayBlock(twoDayItinerary, 2)

	if !day.Extracted {
		t.Fatal("expected day 2 to be extracted")
	}
	if !day.Morning.Found {
		t.Error("expected morning section to be found")
	}
	if day.Lunch.Found {
		t.Error("lunch section should be absent")
	}
	if day.Afternoon.Found {
		t.Error("afternoon section should be absent")
	}
	if !day.Evening.Found {
		t.Error("expected evening section to be found")
	}
	if got, want := day.Morning.Content, "Train to the coast."; got != want {
		t.Errorf("morning content = %q, want %q", got, want)
	}
	if got, want := day.Evening.Content, "Beachside grill."; got != want {
		t.Errorf("evening content = %q, want %q", got, want)
	}
}

func TestDayBlock_SectionContentDoesNotBleed(t *testing.T) {
	day := DayBlock(twoDayItinerary, 1)

	if strings.Contains(day.Morning.Content, "Tapas") {
		t.Errorf("morning content bleeds into lunch: %q", day.Morning.Content)
	}
	if strings.Contains(day.Evening.Content, "Day 2") || strings.Contains(day.Evening.Content, "Train") {
		t.Errorf("evening content bleeds into the next day: %q", day.Evening.Content)
	}
}

func TestDayBlock_AbsentDay(t *testing.T) {
	day := DayBlock(twoDayItinerary, 5)

	if day.Extracted {
		t.Error("day 5 should not be extracted")
	}
	if day.HeadingPresent {
		t.Error("no day 5 heading exists anywhere in the text")
	}
	if day.Morning.Found || day.Lunch.Found || day.Afternoon.Found || day.Evening.Found {
		t.Error("sections of an absent day must all be absent")
	}
}

func TestDayBlock_HeadingPresentDiagnostic(t *testing.T) {
	text := "Some intro. Note: # Day 5 is still TBD and has no heading of its own."

	day := DayBlock(text, 5)

	if day.Extracted {
		t.Error("day 5 should not be extracted from a mid-line mention")
	}
	if !day.HeadingPresent {
		t.Error("HeadingPresent should flag the literal substring for diagnostics")
	}
}

func TestDayBlock_LooseFallbackPattern(t *testing.T) {
	text := "### Day 2 highlights\n\nA full day at the lake.\n\n### Day 3 highlights\n\nHome."

	day := DayBlock(text, 2)

	if !day.Extracted {
		t.Fatal("expected the loose pattern to locate day 2")
	}
	if day.Pattern != "any-level-loose" {
		t.Errorf("Pattern = %q, want %q", day.Pattern, "any-level-loose")
	}
	if strings.Contains(day.Block, "Day 3") {
		t.Errorf("loose day block bleeds into day 3: %q", day.Block)
	}
}

func TestDayBlock_LegacySectionFallback(t *testing.T) {
	text := "# Day 1: Arrival\n**Lunch:**\nTrattoria on the corner.\n"

	day := DayBlock(text, 1)

	if !day.Lunch.Found {
		t.Fatal("expected legacy bold lunch heading to be found")
	}
	if day.Lunch.Pattern != "legacy-bold" {
		t.Errorf("lunch pattern = %q, want %q", day.Lunch.Pattern, "legacy-bold")
	}
	if got, want := day.Lunch.Content, "Trattoria on the corner."; got != want {
		t.Errorf("lunch content = %q, want %q", got, want)
	}
}

func TestDays_CoversConventionalLength(t *testing.T) {
	days := Days(twoDayItinerary)

	if len(days) != 7 {
		t.Fatalf("Days() returned %d entries, want 7", len(days))
	}
	for i, d := range days {
		if d.Number != i+1 {
			t.Errorf("days[%d].Number = %d, want %d", i, d.Number, i+1)
		}
	}
	if !days[0].Extracted || !days[1].Extracted {
		t.Error("days 1 and 2 should be extracted")
	}
	for _, d := range days[2:] {
		if d.Extracted {
			t.Errorf("day %d should be absent", d.Number)
		}
	}
}

func TestDays_BlocksAreContiguous(t *testing.T) {
	d1 := DayBlock(twoDayItinerary, 1)
	d2 := DayBlock(twoDayItinerary, 2)
	if !d1.Extracted || !d2.Extracted {
		t.Fatal("both days should be extracted")
	}

	i1 := strings.Index(twoDayItinerary, d1.Block)
	i2 := strings.Index(twoDayItinerary, d2.Block)
	if i1 != 0 {
		t.Errorf("day 1 block should start the text, starts at %d", i1)
	}
	if i2 < i1+len(d1.Block) {
		t.Fatalf("day blocks overlap: day 1 ends at %d, day 2 starts at %d", i1+len(d1.Block), i2)
	}
	if gap := twoDayItinerary[i1+len(d1.Block) : i2]; strings.TrimSpace(gap) != "" {
		t.Errorf("text between consecutive day blocks should be whitespace only, got %q", gap)
	}
}

func TestDayBlock_AfterNormalization(t *testing.T) {
	raw := "### Day 1\nMorning:\nVisit the park.\n### Day 2\nMorning:\nVisit the museum."
	normalized := normalizer.Normalize(raw)

	day := DayBlock(normalized, 1)
	if !day.Extracted {
		t.Fatalf("day 1 should be extracted from normalized text:\n%s", normalized)
	}
	if !strings.Contains(day.Block, "Visit the park.") {
		t.Errorf("day 1 block lost its content: %q", day.Block)
	}
	if strings.Contains(day.Block, "Visit the museum.") {
		t.Errorf("day 1 block bleeds into day 2: %q", day.Block)
	}
	if !day.Morning.Found {
		t.Error("normalized morning section should be found")
	}
}

func TestReports_WireForm(t *testing.T) {
	reports := Reports(Days(twoDayItinerary))

	if len(reports) != 7 {
		t.Fatalf("Reports() returned %d entries, want 7", len(reports))
	}

	first := reports[0]
	if first.Day != 1 || !first.Extracted {
		t.Errorf("unexpected report for day 1: %+v", first)
	}
	if !first.Sections.Morning || !first.Sections.Lunch || !first.Sections.Afternoon || !first.Sections.Evening {
		t.Errorf("day 1 should report all four sections present: %+v", first.Sections)
	}

	second := reports[1]
	if !second.Sections.Morning || second.Sections.Lunch || second.Sections.Afternoon || !second.Sections.Evening {
		t.Errorf("day 2 flags wrong: %+v", second.Sections)
	}
}
