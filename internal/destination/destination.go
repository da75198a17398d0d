package destination

import (
	"fmt"
	"strings"
)

// Destination is a travel location record driving itinerary generation.
// The content core reads it and never mutates it.
type Destination struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Country              string   `json:"country"`
	Description          string   `json:"description"`
	ImmersiveDescription string   `json:"immersive_description"`
	Cuisine              string   `json:"cuisine"`
	Highlights           []string `json:"highlights"`
	BestSeason           string   `json:"best_season"`
	Featured             bool     `json:"featured"`
	UpdatedAt            string   `json:"updated_at"`
}

// PromptContext renders the destination as a context block for generation
// prompts, skipping fields the CMS left empty.
func (d Destination) PromptContext() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Destination: %s, %s\n", d.Name, d.Country)
	if d.Description != "" {
		fmt.Fprintf(&sb, "About: %s\n", d.Description)
	}
	if d.ImmersiveDescription != "" {
		fmt.Fprintf(&sb, "Atmosphere: %s\n", d.ImmersiveDescription)
	}
	if d.Cuisine != "" {
		fmt.Fprintf(&sb, "Local cuisine: %s\n", d.Cuisine)
	}
	if len(d.Highlights) > 0 {
		fmt.Fprintf(&sb, "Highlights: %s\n", strings.Join(d.Highlights, ", "))
	}
	if d.BestSeason != "" {
		fmt.Fprintf(&sb, "Best season: %s\n", d.BestSeason)
	}
	return sb.String()
}
