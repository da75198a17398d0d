package render

import (
	"bytes"
	"fmt"

	"deep-travel-collections/internal/itinerary"

	"github.com/yuin/goldmark"
)

// HTML renders an itinerary's normalized markdown as a standalone HTML
// preview page.
func HTML(it *itinerary.Itinerary) (string, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(it.Markdown), &body); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&page, "<title>%s - Deep Travel Collections</title>\n", it.DestinationName)
	page.WriteString("<meta charset=\"utf-8\">\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.String(), nil
}
