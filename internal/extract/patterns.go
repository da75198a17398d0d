package extract

import (
	"fmt"
	"regexp"

	"deep-travel-collections/internal/normalizer"
)

// Pattern is one entry in an ordered cascade: a compiled expression plus a
// label recorded in the extraction result so misbehaving patterns can be
// audited from logs and reports.
type Pattern struct {
	Label string
	Re    *regexp.Regexp
}

// firstMatch tries each pattern in order and returns the first submatch that
// succeeds. First match wins; later patterns are never consulted once one
// matches.
func firstMatch(patterns []Pattern, text string) (label, capture string, ok bool) {
	for _, p := range patterns {
		if m := p.Re.FindStringSubmatch(text); m != nil {
			return p.Label, m[1], true
		}
	}
	return "", "", false
}

// dayPatterns returns the cascade for locating day n's block. The normalizer
// should have produced the canonical form already, but the looser variants
// stay in the list on purpose: normalization is best-effort and upstream
// formatting drifts. Each pattern captures from the day heading up to (but
// excluding) the next day heading, or to end of text for the last day.
func dayPatterns(n int) []Pattern {
	return []Pattern{
		{
			Label: "canonical",
			Re:    regexp.MustCompile(fmt.Sprintf(`(?ms)^(# Day %d:.*?)(?:\n#{1,3} Day \d|\z)`, n)),
		},
		{
			Label: "any-level-colon",
			Re:    regexp.MustCompile(fmt.Sprintf(`(?ms)^(#{1,3}\s*Day %d\s*:.*?)(?:\n#{1,3}\s*Day \d|\z)`, n)),
		},
		{
			Label: "any-level-loose",
			Re:    regexp.MustCompile(fmt.Sprintf(`(?ms)^(#{1,3}\s*Day %d\b.*?)(?:\n#{1,3}\s*Day \d|\z)`, n)),
		},
	}
}

// sectionSpec describes one of the four sections: its canonical heading and
// the regex fragment accepted for its name in legacy headings.
type sectionSpec struct {
	key       string
	canonical string
	namePat   string
}

var sectionSpecs = []sectionSpec{
	{"morning", normalizer.SectionMorning, `Morning(?:\s+Activities)?`},
	{"lunch", normalizer.SectionLunch, `Lunch(?:\s+Recommendations?)?`},
	{"afternoon", normalizer.SectionAfternoon, `Afternoon(?:\s+Activities)?`},
	{"evening", normalizer.SectionEvening, `(?:Evening(?:/Dinner)?|Dinner)(?:\s+Plans?)?`},
}

// sectionPatterns builds the cascade for one section. Every pattern's capture
// is bounded by the start of the next heading (section or day) or end of
// text, so sections never bleed into each other or into the next day.
func sectionPatterns(spec sectionSpec) []Pattern {
	return []Pattern{
		{
			Label: "canonical",
			Re:    regexp.MustCompile(`(?ms)^## ` + regexp.QuoteMeta(spec.canonical) + `\s*\n(.*?)(?:\n## |\n# Day \d|\z)`),
		},
		{
			Label: "legacy-hash",
			Re:    regexp.MustCompile(`(?msi)^#{2,4}\s*` + spec.namePat + `\s*:?\s*\n(.*?)(?:\n#|\z)`),
		},
		{
			Label: "legacy-bold",
			Re:    regexp.MustCompile(`(?msi)^\*\*\s*` + spec.namePat + `\s*:?\s*\*\*\s*\n(.*?)(?:\n\*\*|\n#|\z)`),
		},
		{
			Label: "legacy-plain",
			Re:    regexp.MustCompile(`(?msi)^` + spec.namePat + `\s*:\s*\n(.*?)(?:\n\n|\n#|\z)`),
		},
	}
}

var sectionCascades = buildSectionCascades()

func buildSectionCascades() map[string][]Pattern {
	cascades := make(map[string][]Pattern, len(sectionSpecs))
	for _, spec := range sectionSpecs {
		cascades[spec.key] = sectionPatterns(spec)
	}
	return cascades
}
