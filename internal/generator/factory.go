package generator

import (
	"context"
	"fmt"
	"log"
	"time"

	"deep-travel-collections/internal/config"
	"deep-travel-collections/internal/destination"
	"deep-travel-collections/internal/llm"
)

// Factory selects a strategy by policy and invokes it with timing
// instrumentation. The strategy table is built eagerly in NewFactory, so a
// factory handed to callers is always ready; there is no initialization
// window during which dispatch could observe a missing strategy.
type Factory struct {
	strategies  map[Type]Strategy
	defaultType Type
	premiumType Type

	logUsage      bool
	logGeneration bool
}

// NewFactory creates a Factory with the default strategy registry and the
// selection policy configured via DEFAULT_GENERATOR / PREMIUM_GENERATOR.
func NewFactory(cfg *config.Config, textGen llm.TextGenerator) (*Factory, error) {
	defaultType, err := ParseType(cfg.DefaultGenerator)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_GENERATOR %q: %w", cfg.DefaultGenerator, err)
	}
	premiumType, err := ParseType(cfg.PremiumGenerator)
	if err != nil {
		return nil, fmt.Errorf("invalid PREMIUM_GENERATOR %q: %w", cfg.PremiumGenerator, err)
	}

	return &Factory{
		strategies:    defaultRegistry(textGen),
		defaultType:   defaultType,
		premiumType:   premiumType,
		logUsage:      cfg.LogGeneratorUsage,
		logGeneration: cfg.LogContentGeneration,
	}, nil
}

// Register replaces the strategy for a type. Intended for integrators
// supplying differentiated implementations; call before serving requests.
func (f *Factory) Register(t Type, s Strategy) {
	f.strategies[t] = s
}

// GenerateItinerary produces a full itinerary for the destination using the
// strategy chosen by policy, or by explicitType when non-empty.
func (f *Factory) GenerateItinerary(ctx context.Context, dest destination.Destination, explicitType Type) (string, error) {
	t, strat, reason, err := f.selectStrategy(explicitType, dest)
	if err != nil {
		return "", err
	}

	if f.logUsage {
		log.Printf("generator: using %s strategy for %s (%s)", t, dest.Name, reason)
	}

	start := time.Now()
	out, err := strat.GenerateItinerary(ctx, dest)
	if err != nil {
		if f.logGeneration {
			log.Printf("generator: %s itinerary generation failed for %s, %s: %v", t, dest.Name, dest.Country, err)
		}
		return "", err
	}
	if f.logGeneration {
		log.Printf("generator: %s produced %d chars for %s in %s", t, len(out), dest.Name, time.Since(start))
	}
	return out, nil
}

// GenerateDay produces a single day of the itinerary under the same selection
// policy as GenerateItinerary.
func (f *Factory) GenerateDay(ctx context.Context, dest destination.Destination, day int, explicitType Type) (string, error) {
	t, strat, reason, err := f.selectStrategy(explicitType, dest)
	if err != nil {
		return "", err
	}

	if f.logUsage {
		log.Printf("generator: using %s strategy for %s day %d (%s)", t, dest.Name, day, reason)
	}

	start := time.Now()
	out, err := strat.GenerateDay(ctx, dest, day)
	if err != nil {
		if f.logGeneration {
			log.Printf("generator: %s day %d generation failed for %s, %s: %v", t, day, dest.Name, dest.Country, err)
		}
		return "", err
	}
	if f.logGeneration {
		log.Printf("generator: %s produced %d chars for %s day %d in %s", t, len(out), dest.Name, day, time.Since(start))
	}
	return out, nil
}

// selectStrategy resolves the strategy type to use. Priority: explicit request,
// then the premium tier for featured destinations, then the default.
func (f *Factory) selectStrategy(explicitType Type, dest destination.Destination) (Type, Strategy, string, error) {
	var t Type
	var reason string
	switch {
	case explicitType != "":
		t, reason = explicitType, "explicit"
	case dest.Featured:
		t, reason = f.premiumType, "premium-featured"
	default:
		t, reason = f.defaultType, "default"
	}

	strat, ok := f.strategies[t]
	if !ok {
		return "", nil, "", fmt.Errorf("%w: %q", ErrUnknownGeneratorType, t)
	}
	return t, strat, reason, nil
}
