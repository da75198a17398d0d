package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"deep-travel-collections/internal/destination"
	"deep-travel-collections/internal/llm"
)

// mockTextGen captures the prompt it is handed.
type mockTextGen struct {
	lastPrompt string
	calls      int
	response   llm.ContentResponse
	returnErr  error
}

func (m *mockTextGen) GenerateContent(_ context.Context, prompt string) (llm.ContentResponse, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.returnErr != nil {
		return llm.ContentResponse{}, m.returnErr
	}
	return m.response, nil
}

func testDestination() destination.Destination {
	return destination.Destination{
		ID:      "lisbon",
		Name:    "Lisbon",
		Country: "Portugal",
		Cuisine: "seafood, pastries",
	}
}

func TestLLMStrategy_ItineraryPrompt(t *testing.T) {
	gen := &mockTextGen{response: llm.ContentResponse{Content: "# Day 1: Alfama"}}
	strat := NewStrategy(gen)

	out, err := strat.GenerateItinerary(context.Background(), testDestination())
	if err != nil {
		t.Fatalf("GenerateItinerary failed: %v", err)
	}
	if out != "# Day 1: Alfama" {
		t.Errorf("got %q, want the backend content verbatim", out)
	}
	if !strings.Contains(gen.lastPrompt, "Lisbon, Portugal") {
		t.Errorf("prompt missing destination context: %q", gen.lastPrompt)
	}
	if !strings.Contains(gen.lastPrompt, "7-day itinerary") {
		t.Errorf("prompt missing itinerary length: %q", gen.lastPrompt)
	}
	if !strings.Contains(gen.lastPrompt, "## Morning Activities") {
		t.Errorf("prompt should mandate the canonical section headings: %q", gen.lastPrompt)
	}
}

func TestLLMStrategy_DayPrompt(t *testing.T) {
	gen := &mockTextGen{response: llm.ContentResponse{Content: "# Day 3: Belem"}}
	strat := NewStrategy(gen)

	out, err := strat.GenerateDay(context.Background(), testDestination(), 3)
	if err != nil {
		t.Fatalf("GenerateDay failed: %v", err)
	}
	if out != "# Day 3: Belem" {
		t.Errorf("got %q, want the backend content verbatim", out)
	}
	if !strings.Contains(gen.lastPrompt, "day 3") {
		t.Errorf("prompt missing day number: %q", gen.lastPrompt)
	}
	if !strings.Contains(gen.lastPrompt, "Lisbon, Portugal") {
		t.Errorf("prompt missing destination context: %q", gen.lastPrompt)
	}
}

func TestLLMStrategy_InvalidDayNumber(t *testing.T) {
	gen := &mockTextGen{}
	strat := NewStrategy(gen)

	for _, day := range []int{0, -1, 8, 100} {
		_, err := strat.GenerateDay(context.Background(), testDestination(), day)
		if !errors.Is(err, ErrInvalidDayNumber) {
			t.Errorf("day %d: got %v, want ErrInvalidDayNumber", day, err)
		}
	}
	if gen.calls != 0 {
		t.Errorf("backend called %d times for invalid days, want 0", gen.calls)
	}
}

func TestLLMStrategy_BackendErrorsPassThrough(t *testing.T) {
	sentinel := errors.New("rate limited")
	gen := &mockTextGen{returnErr: sentinel}
	strat := NewStrategy(gen)

	if _, err := strat.GenerateItinerary(context.Background(), testDestination()); err != sentinel {
		t.Errorf("itinerary error was altered: got %v", err)
	}
	if _, err := strat.GenerateDay(context.Background(), testDestination(), 1); err != sentinel {
		t.Errorf("day error was altered: got %v", err)
	}
}
