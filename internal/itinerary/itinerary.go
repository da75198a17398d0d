// Package itinerary orchestrates the content pipeline: generate raw markdown
// for a destination, normalize it, and slice it into day and section
// structures for consumers.
package itinerary

import (
	"context"
	"fmt"
	"time"

	"deep-travel-collections/internal/destination"
	"deep-travel-collections/internal/extract"
	"deep-travel-collections/internal/generator"
	"deep-travel-collections/internal/normalizer"
)

// Itinerary is a generated, normalized itinerary for one destination.
type Itinerary struct {
	DestinationID   string              `json:"destination_id"`
	DestinationName string              `json:"destination_name"`
	GeneratorType   string              `json:"generator_type"`
	Markdown        string              `json:"markdown"`
	GeneratedAt     string              `json:"generated_at"`
	Days            []extract.DayReport `json:"days"`
}

// Service runs the generation pipeline.
type Service struct {
	factory *generator.Factory
}

// NewService creates a new Service instance.
func NewService(factory *generator.Factory) *Service {
	return &Service{factory: factory}
}

// Generate produces a full normalized itinerary for the destination. An empty
// explicitType leaves strategy selection to the factory's policy.
func (s *Service) Generate(ctx context.Context, dest destination.Destination, explicitType generator.Type) (*Itinerary, error) {
	raw, err := s.factory.GenerateItinerary(ctx, dest, explicitType)
	if err != nil {
		return nil, fmt.Errorf("failed to generate itinerary for %s: %w", dest.Name, err)
	}

	normalized := normalizer.Normalize(raw)
	days := extract.Days(normalized)

	generatorType := string(explicitType)
	if generatorType == "" {
		generatorType = "policy"
	}

	return &Itinerary{
		DestinationID:   dest.ID,
		DestinationName: dest.Name,
		GeneratorType:   generatorType,
		Markdown:        normalized,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		Days:            extract.Reports(days),
	}, nil
}

// GenerateDay produces one normalized day block for the destination.
func (s *Service) GenerateDay(ctx context.Context, dest destination.Destination, day int, explicitType generator.Type) (string, error) {
	raw, err := s.factory.GenerateDay(ctx, dest, day, explicitType)
	if err != nil {
		return "", fmt.Errorf("failed to generate day %d for %s: %w", day, dest.Name, err)
	}
	return normalizer.Normalize(raw), nil
}

// ExtractDay re-runs extraction for one day of an itinerary's markdown.
func (s *Service) ExtractDay(it *Itinerary, day int) extract.Day {
	return extract.DayBlock(it.Markdown, day)
}
