// Package extract slices normalized itinerary markdown into per-day and
// per-section substrings. Absence is a routine, inspectable outcome here, not
// an error: LLM output is imperfectly structured, so every lookup reports a
// presence flag instead of failing.
package extract

import (
	"fmt"
	"strings"

	"deep-travel-collections/internal/normalizer"
)

// Section is one extracted section of a day block.
type Section struct {
	Found   bool
	Pattern string
	Content string
}

// Day is the extraction result for a single day number.
type Day struct {
	Number    int
	Extracted bool
	Pattern   string
	// HeadingPresent reports, for diagnostics, whether the literal
	// "# Day <n>" substring appears even though no day pattern matched;
	// it distinguishes a malformed heading from a day that was never
	// generated.
	HeadingPresent bool
	Block          string
	Morning        Section
	Lunch          Section
	Afternoon      Section
	Evening        Section
}

// SectionFlags is the wire form of per-section presence.
type SectionFlags struct {
	Morning   bool `json:"morning"`
	Lunch     bool `json:"lunch"`
	Afternoon bool `json:"afternoon"`
	Evening   bool `json:"evening"`
}

// DayReport is the wire form consumed by routes and renderers.
type DayReport struct {
	Day       int          `json:"day"`
	Extracted bool         `json:"extracted"`
	Sections  SectionFlags `json:"sections"`
}

// DayBlock locates day n in the given text and extracts its four sections.
// A day that cannot be located yields Extracted=false, never an error. The
// input is only read, never modified.
func DayBlock(text string, n int) Day {
	day := Day{Number: n}

	label, block, ok := firstMatch(dayPatterns(n), text)
	if !ok {
		day.HeadingPresent = strings.Contains(text, fmt.Sprintf("# Day %d", n))
		return day
	}
	day.Extracted = true
	day.Pattern = label
	day.Block = block

	// Sections are independent: each cascade runs against the full day block
	// and one section's absence never blocks the others.
	day.Morning = extractSection("morning", block)
	day.Lunch = extractSection("lunch", block)
	day.Afternoon = extractSection("afternoon", block)
	day.Evening = extractSection("evening", block)
	return day
}

// Days extracts all conventional itinerary days (1 through 7) from the text.
func Days(text string) []Day {
	days := make([]Day, 0, normalizer.MaxDays)
	for n := 1; n <= normalizer.MaxDays; n++ {
		days = append(days, DayBlock(text, n))
	}
	return days
}

// Reports converts extraction results to their wire form.
func Reports(days []Day) []DayReport {
	reports := make([]DayReport, 0, len(days))
	for _, d := range days {
		reports = append(reports, d.Report())
	}
	return reports
}

// Report converts one day to its wire form.
func (d Day) Report() DayReport {
	return DayReport{
		Day:       d.Number,
		Extracted: d.Extracted,
		Sections: SectionFlags{
			Morning:   d.Morning.Found,
			Lunch:     d.Lunch.Found,
			Afternoon: d.Afternoon.Found,
			Evening:   d.Evening.Found,
		},
	}
}

func extractSection(key, block string) Section {
	label, content, ok := firstMatch(sectionCascades[key], block)
	if !ok {
		return Section{}
	}
	return Section{
		Found:   true,
		Pattern: label,
		Content: strings.TrimSpace(content),
	}
}
