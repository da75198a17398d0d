// Package generator produces raw itinerary markdown for destinations. A
// factory selects among named strategies by policy; the strategies themselves
// wrap an external text-generation service.
package generator

import (
	"context"
	"errors"

	"deep-travel-collections/internal/destination"
	"deep-travel-collections/internal/normalizer"
)

// Type identifies a generator strategy in the factory's lookup table.
type Type string

// The published generator types. They are selection keys, not behavioral
// contracts: all of them currently resolve to the same LLM-backed
// implementation, and integrators may register differentiated strategies.
const (
	TypeDefault   Type = "default"
	TypeChunked   Type = "chunked"
	TypeResilient Type = "resilient"
	TypeEfficient Type = "efficient"
)

var (
	// ErrInvalidDayNumber is returned when a day outside 1..7 is requested.
	ErrInvalidDayNumber = errors.New("day number must be between 1 and 7")

	// ErrUnknownGeneratorType is returned when a requested type has no
	// strategy registered.
	ErrUnknownGeneratorType = errors.New("unknown generator type")
)

// ParseType validates a generator type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeDefault, TypeChunked, TypeResilient, TypeEfficient:
		return Type(s), nil
	}
	return "", ErrUnknownGeneratorType
}

// Strategy produces itinerary text for a destination, either whole or for a
// single day. Implementations propagate generation-service errors unchanged;
// retry and timeout policy belong to the caller or the underlying client.
type Strategy interface {
	GenerateItinerary(ctx context.Context, dest destination.Destination) (string, error)
	GenerateDay(ctx context.Context, dest destination.Destination, day int) (string, error)
}

func validDay(day int) bool {
	return day >= 1 && day <= normalizer.MaxDays
}
