package generator

import (
	"bytes"
	_ "embed"
	"text/template"

	"deep-travel-collections/internal/destination"
	"deep-travel-collections/internal/normalizer"
)

//go:embed itinerary_prompt.md
var itineraryPrompt string

//go:embed day_prompt.md
var dayPrompt string

var (
	itineraryTmpl = template.Must(template.New("itinerary").Parse(itineraryPrompt))
	dayTmpl       = template.Must(template.New("day").Parse(dayPrompt))
)

type promptData struct {
	Context string
	Days    int
	Day     int
	Prior   int
}

func buildItineraryPrompt(dest destination.Destination) (string, error) {
	return execTemplate(itineraryTmpl, promptData{
		Context: dest.PromptContext(),
		Days:    normalizer.MaxDays,
	})
}

func buildDayPrompt(dest destination.Destination, day int) (string, error) {
	return execTemplate(dayTmpl, promptData{
		Context: dest.PromptContext(),
		Days:    normalizer.MaxDays,
		Day:     day,
		Prior:   day - 1,
	})
}

func execTemplate(tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
