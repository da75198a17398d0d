// Package render turns normalized itineraries into consumer formats: a
// printable PDF and an HTML preview. Both read extraction output; neither
// feeds anything back into the content pipeline.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"deep-travel-collections/internal/extract"
	"deep-travel-collections/internal/itinerary"
	"deep-travel-collections/internal/normalizer"

	"github.com/jung-kurt/gofpdf"
)

// Core PDF fonts are CP1252; keep this copy ASCII.
const placeholderCopy = "Ask your concierge for suggestions - this part of the day is yours to fill."

// PDF renders an itinerary as PDF bytes. Days and sections that extraction
// reported absent get placeholder copy instead of failing the render.
func PDF(it *itinerary.Itinerary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.MultiCell(0, 10, it.DestinationName, "", "L", false)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, fmt.Sprintf("A %d-day itinerary - Deep Travel Collections", normalizer.MaxDays), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	for n := 1; n <= normalizer.MaxDays; n++ {
		day := extract.DayBlock(it.Markdown, n)
		if !day.Extracted {
			continue
		}
		pdf.AddPage()
		writeDay(pdf, day)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDay(pdf *gofpdf.Fpdf, day extract.Day) {
	title := dayTitle(day)
	pdf.SetFont("Helvetica", "B", 17)
	pdf.MultiCell(0, 9, title, "", "L", false)
	pdf.Ln(3)

	sections := []struct {
		name    string
		section extract.Section
	}{
		{normalizer.SectionMorning, day.Morning},
		{normalizer.SectionLunch, day.Lunch},
		{normalizer.SectionAfternoon, day.Afternoon},
		{normalizer.SectionEvening, day.Evening},
	}

	for _, s := range sections {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, s.name, "", "L", false)
		pdf.Ln(1)

		content := placeholderCopy
		if s.section.Found {
			content = cleanInlineMarkdown(s.section.Content)
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, content, "", "L", false)
		pdf.Ln(4)
	}
}

var dayTitleRe = regexp.MustCompile(`^# Day (\d+): ?(.*)$`)

func dayTitle(day extract.Day) string {
	firstLine := day.Block
	if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}
	if m := dayTitleRe.FindStringSubmatch(firstLine); m != nil && strings.TrimSpace(m[2]) != "" {
		return fmt.Sprintf("Day %s: %s", m[1], strings.TrimSpace(m[2]))
	}
	return fmt.Sprintf("Day %d", day.Number)
}

// cleanInlineMarkdown strips inline markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = regexp.MustCompile("`([^`]+)`").ReplaceAllString(text, "$1")
	text = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`).ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
