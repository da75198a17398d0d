package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"deep-travel-collections/internal/itinerary"
)

// ItineraryStore provides file-based, versioned storage for generated
// itineraries. Each generation is kept under <destinationID>_<timestamp>.json.
type ItineraryStore struct {
	basePath string
}

// NewItineraryStore creates a new ItineraryStore and ensures the base
// directory exists.
func NewItineraryStore(basePath string) (*ItineraryStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &ItineraryStore{basePath: basePath}, nil
}

// sanitizeTimestamp makes the timestamp safe for filenames.
func sanitizeTimestamp(ts string) string {
	return strings.ReplaceAll(ts, ":", "-")
}

// versionedPath returns the full path for a destination ID and generation
// timestamp.
func (s *ItineraryStore) versionedPath(destinationID, generatedAt string) string {
	filename := fmt.Sprintf("%s_%s.json", destinationID, sanitizeTimestamp(generatedAt))
	return filepath.Join(s.basePath, filename)
}

// Save stores a generated itinerary to a versioned file.
func (s *ItineraryStore) Save(it *itinerary.Itinerary) error {
	data, err := json.MarshalIndent(it, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal itinerary: %w", err)
	}

	filePath := s.versionedPath(it.DestinationID, it.GeneratedAt)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write itinerary file: %w", err)
	}
	return nil
}

// Load retrieves a specific itinerary version.
func (s *ItineraryStore) Load(destinationID, generatedAt string) (*itinerary.Itinerary, error) {
	filePath := s.versionedPath(destinationID, generatedAt)
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read itinerary file: %w", err)
	}

	var it itinerary.Itinerary
	if err := json.Unmarshal(data, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal itinerary: %w", err)
	}
	return &it, nil
}

// LoadLatest retrieves the most recent itinerary for a destination, or nil
// when none has been generated yet.
func (s *ItineraryStore) LoadLatest(destinationID string) (*itinerary.Itinerary, error) {
	pattern := filepath.Join(s.basePath, fmt.Sprintf("%s_*.json", destinationID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob itinerary files: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	// Timestamps sort lexicographically once sanitized, so the newest
	// version is the last path.
	sort.Strings(matches)
	data, err := os.ReadFile(matches[len(matches)-1])
	if err != nil {
		return nil, fmt.Errorf("failed to read itinerary file: %w", err)
	}

	var it itinerary.Itinerary
	if err := json.Unmarshal(data, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal itinerary: %w", err)
	}
	return &it, nil
}

// Exists checks whether a specific itinerary version exists.
func (s *ItineraryStore) Exists(destinationID, generatedAt string) bool {
	_, err := os.Stat(s.versionedPath(destinationID, generatedAt))
	return !os.IsNotExist(err)
}

// RemoveStaleVersions removes all stored versions for a destination. Called
// before saving a fresh generation when only the latest should be kept.
func (s *ItineraryStore) RemoveStaleVersions(destinationID string) error {
	pattern := filepath.Join(s.basePath, fmt.Sprintf("%s_*.json", destinationID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("failed to glob stale files: %w", err)
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return fmt.Errorf("failed to remove stale file %s: %w", match, err)
		}
	}
	return nil
}

// ListAll loads every stored itinerary.
func (s *ItineraryStore) ListAll() ([]itinerary.Itinerary, error) {
	matches, err := filepath.Glob(filepath.Join(s.basePath, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob itinerary files: %w", err)
	}

	var itineraries []itinerary.Itinerary
	for _, match := range matches {
		data, err := os.ReadFile(match)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", match, err)
		}
		var it itinerary.Itinerary
		if err := json.Unmarshal(data, &it); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", match, err)
		}
		itineraries = append(itineraries, it)
	}
	return itineraries, nil
}
