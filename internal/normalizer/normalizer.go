// Package normalizer rewrites LLM-generated itinerary markdown into the one
// canonical heading structure the extraction and rendering layers expect.
// Generated text arrives with headings at varying levels, bold lines standing
// in for headings, missing colons and inconsistent casing; normalization makes
// all of that uniform before any slicing happens.
package normalizer

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
)

// MaxDays is the conventional length of a full itinerary.
const MaxDays = 7

// Canonical section names. The normalized output introduces each of these
// with an exact "## <name>" line; downstream consumers round-trip on them.
const (
	SectionMorning   = "Morning Activities"
	SectionLunch     = "Lunch Recommendation"
	SectionAfternoon = "Afternoon Activities"
	SectionEvening   = "Evening/Dinner Plan"
)

type headingRule struct {
	re          *regexp.Regexp
	replacement string
}

// Day heading variants, rewritten to "# Day <n>: <title>". The bare-line rule
// is ordered last: once the earlier rules have run, every real day heading
// starts with "#", which the bare-line pattern cannot match, so an
// already-correct heading is never rewritten a second way.
var dayHeadingRules = []headingRule{
	{regexp.MustCompile(`(?mi)^#{1,3}\s*day\s+(\d+)\s*[:\-.]?\s*(.*)$`), "# Day $1: $2"},
	{regexp.MustCompile(`(?mi)^\*\*\s*day\s+(\d+)\s*[:\-.]?\s*(.*?)\s*\*\*\s*$`), "# Day $1: $2"},
	{regexp.MustCompile(`(?mi)^day\s+(\d+)\s*[:\-.]?\s*(.*)$`), "# Day $1: $2"},
}

// Section heading variants. Each of the four sections has its own independent
// list; the lists do not interact.
var sectionHeadingRules = []headingRule{
	// Morning
	{regexp.MustCompile(`(?mi)^#{2,4}\s*morning(?:\s+activities)?\s*:?\s*$`), "## " + SectionMorning},
	{regexp.MustCompile(`(?mi)^\*\*\s*morning(?:\s+activities)?\s*:?\s*\*\*\s*$`), "## " + SectionMorning},
	{regexp.MustCompile(`(?mi)^morning(?:\s+activities)?\s*:\s*$`), "## " + SectionMorning},
	// Lunch
	{regexp.MustCompile(`(?mi)^#{2,4}\s*lunch(?:\s+recommendations?)?\s*:?\s*$`), "## " + SectionLunch},
	{regexp.MustCompile(`(?mi)^\*\*\s*lunch(?:\s+recommendations?)?\s*:?\s*\*\*\s*$`), "## " + SectionLunch},
	{regexp.MustCompile(`(?mi)^lunch(?:\s+recommendations?)?\s*:\s*$`), "## " + SectionLunch},
	// Afternoon
	{regexp.MustCompile(`(?mi)^#{2,4}\s*afternoon(?:\s+activities)?\s*:?\s*$`), "## " + SectionAfternoon},
	{regexp.MustCompile(`(?mi)^\*\*\s*afternoon(?:\s+activities)?\s*:?\s*\*\*\s*$`), "## " + SectionAfternoon},
	{regexp.MustCompile(`(?mi)^afternoon(?:\s+activities)?\s*:\s*$`), "## " + SectionAfternoon},
	// Evening / Dinner
	{regexp.MustCompile(`(?mi)^#{2,4}\s*(?:evening(?:/dinner)?|dinner)(?:\s+plans?)?\s*:?\s*$`), "## " + SectionEvening},
	{regexp.MustCompile(`(?mi)^\*\*\s*(?:evening(?:/dinner)?|dinner)(?:\s+plans?)?\s*:?\s*\*\*\s*$`), "## " + SectionEvening},
	{regexp.MustCompile(`(?mi)^(?:evening(?:/dinner)?|dinner)(?:\s+plans?)?\s*:\s*$`), "## " + SectionEvening},
}

var (
	canonDayRe     = regexp.MustCompile(`^# Day (\d+): ?`)
	canonSectionRe = regexp.MustCompile(`^## (Morning Activities|Lunch Recommendation|Afternoon Activities|Evening/Dinner Plan)$`)
	tripleNewline  = regexp.MustCompile(`\n{3,}`)
)

// sectionRank is the conventional Morning -> Lunch -> Afternoon -> Evening
// order within a day block; the gap-repair heuristic uses it to spot section
// headings that cannot belong to the preceding day.
var sectionRank = map[string]int{
	SectionMorning:   0,
	SectionLunch:     1,
	SectionAfternoon: 2,
	SectionEvening:   3,
}

// Normalize converts arbitrarily-formatted itinerary markdown into canonical
// form: heading standardization followed by structural repair. It never fails;
// the empty string normalizes to the empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	out := NormalizeHeadings(text)
	out = ensureBlankLineAfterHeadings(out)
	out = tripleNewline.ReplaceAllString(out, "\n\n")
	out = fillDayGaps(out)
	return out
}

// NormalizeHeadings runs the day-heading and section-heading rewrite passes
// only. Unlike the gap-filling heuristic, these passes are idempotent.
func NormalizeHeadings(text string) string {
	for _, rule := range dayHeadingRules {
		text = rule.re.ReplaceAllString(text, rule.replacement)
	}
	for _, rule := range sectionHeadingRules {
		text = rule.re.ReplaceAllString(text, rule.replacement)
	}
	return text
}

// ensureBlankLineAfterHeadings inserts a blank line after any canonical
// heading that runs straight into content.
func ensureBlankLineAfterHeadings(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		out = append(out, line)
		if isCanonicalHeading(line) && i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}

func isCanonicalHeading(line string) bool {
	return canonDayRe.MatchString(line) || canonSectionRe.MatchString(line)
}

// fillDayGaps is the best-effort missing-day repair. When the itinerary's
// highest day number is within the conventional length, any day number 1..7
// without a heading is paired, in ascending order, with a "stray" section
// block (a section heading no day heading owns), and a synthetic
// "# Day <n>: Itinerary" heading is inserted before that block. A single pass,
// no guarantee that every missing day is recovered, and a wrong guess is
// possible when several days are missing at once.
func fillDayGaps(text string) string {
	lines := strings.Split(text, "\n")

	found := make(map[int]bool)
	maxDay := 0
	for _, line := range lines {
		m := canonDayRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		found[n] = true
		if n > maxDay {
			maxDay = n
		}
	}
	if maxDay > MaxDays {
		return text
	}

	var missing []int
	for n := 1; n <= MaxDays; n++ {
		if !found[n] {
			missing = append(missing, n)
		}
	}
	if len(missing) == 0 {
		return text
	}

	// A stray block starts at a section heading that either appears before any
	// day heading, or breaks the Morning->Lunch->Afternoon->Evening order of
	// the block it would otherwise belong to.
	var strays []int
	seenDay := false
	lastRank := -1
	for i, line := range lines {
		if canonDayRe.MatchString(line) {
			seenDay = true
			lastRank = -1
			continue
		}
		m := canonSectionRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rank := sectionRank[m[1]]
		if !seenDay || rank <= lastRank {
			strays = append(strays, i)
			seenDay = true
		}
		lastRank = rank
	}
	if len(strays) == 0 {
		log.Printf("normalizer: itinerary is missing day(s) %v and has no stray section block to anchor a repair", missing)
		return text
	}

	inserts := make(map[int]int)
	for i, n := range missing {
		if i >= len(strays) {
			break
		}
		inserts[strays[i]] = n
	}

	out := make([]string, 0, len(lines)+2*len(inserts))
	for i, line := range lines {
		if n, ok := inserts[i]; ok {
			log.Printf("normalizer: inserting missing day %d heading before stray section block", n)
			out = append(out, fmt.Sprintf("# Day %d: Itinerary", n), "")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
