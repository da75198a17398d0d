package generator

import (
	"context"
	"fmt"

	"deep-travel-collections/internal/destination"
	"deep-travel-collections/internal/llm"
)

// llmStrategy is the one real Strategy implementation: it renders a prompt
// for the destination and forwards it to a text-generation backend.
// Generation-service errors pass through unchanged.
type llmStrategy struct {
	textGen llm.TextGenerator
}

// NewStrategy creates a Strategy backed by the given text generator.
func NewStrategy(textGen llm.TextGenerator) Strategy {
	return &llmStrategy{textGen: textGen}
}

func (s *llmStrategy) GenerateItinerary(ctx context.Context, dest destination.Destination) (string, error) {
	prompt, err := buildItineraryPrompt(dest)
	if err != nil {
		return "", fmt.Errorf("failed to build itinerary prompt: %w", err)
	}
	resp, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (s *llmStrategy) GenerateDay(ctx context.Context, dest destination.Destination, day int) (string, error) {
	if !validDay(day) {
		return "", fmt.Errorf("%w: got %d", ErrInvalidDayNumber, day)
	}
	prompt, err := buildDayPrompt(dest, day)
	if err != nil {
		return "", fmt.Errorf("failed to build day prompt: %w", err)
	}
	resp, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// defaultRegistry maps every published type to one shared strategy instance.
// The four names are interchangeable today; Factory.Register swaps in real
// differentiated implementations when an integrator supplies them.
func defaultRegistry(textGen llm.TextGenerator) map[Type]Strategy {
	base := NewStrategy(textGen)
	return map[Type]Strategy{
		TypeDefault:   base,
		TypeChunked:   base,
		TypeResilient: base,
		TypeEfficient: base,
	}
}
