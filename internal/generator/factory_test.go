package generator

import (
	"context"
	"errors"
	"testing"

	"deep-travel-collections/internal/config"
	"deep-travel-collections/internal/destination"
	"deep-travel-collections/internal/llm"
)

// spyStrategy records invocations so selection can be asserted.
type spyStrategy struct {
	name      string
	calls     int
	dayCalls  int
	lastDay   int
	output    string
	returnErr error
}

func (s *spyStrategy) GenerateItinerary(_ context.Context, _ destination.Destination) (string, error) {
	s.calls++
	if s.returnErr != nil {
		return "", s.returnErr
	}
	return s.output, nil
}

func (s *spyStrategy) GenerateDay(_ context.Context, _ destination.Destination, day int) (string, error) {
	s.dayCalls++
	s.lastDay = day
	if s.returnErr != nil {
		return "", s.returnErr
	}
	return s.output, nil
}

type stubTextGen struct{}

func (stubTextGen) GenerateContent(_ context.Context, _ string) (llm.ContentResponse, error) {
	return llm.ContentResponse{Content: "# Day 1: Stub"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		DefaultGenerator: "default",
		PremiumGenerator: "resilient",
	}
}

func newSpiedFactory(t *testing.T) (*Factory, map[Type]*spyStrategy) {
	t.Helper()
	factory, err := NewFactory(testConfig(), stubTextGen{})
	if err != nil {
		t.Fatalf("NewFactory failed: %v", err)
	}

	spies := make(map[Type]*spyStrategy)
	for _, typ := range []Type{TypeDefault, TypeChunked, TypeResilient, TypeEfficient} {
		spy := &spyStrategy{name: string(typ), output: "output from " + string(typ)}
		spies[typ] = spy
		factory.Register(typ, spy)
	}
	return factory, spies
}

func TestFactory_SelectionPolicy(t *testing.T) {
	tests := []struct {
		name         string
		explicitType Type
		featured     bool
		wantStrategy Type
	}{
		{"explicit wins over featured", TypeEfficient, true, TypeEfficient},
		{"explicit wins over default", TypeChunked, false, TypeChunked},
		{"featured gets premium", "", true, TypeResilient},
		{"plain gets default", "", false, TypeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory, spies := newSpiedFactory(t)
			dest := destination.Destination{ID: "d1", Name: "Lisbon", Country: "Portugal", Featured: tt.featured}

			out, err := factory.GenerateItinerary(context.Background(), dest, tt.explicitType)
			if err != nil {
				t.Fatalf("GenerateItinerary failed: %v", err)
			}
			if out != spies[tt.wantStrategy].output {
				t.Errorf("got output %q, want output of %s strategy", out, tt.wantStrategy)
			}
			for typ, spy := range spies {
				wantCalls := 0
				if typ == tt.wantStrategy {
					wantCalls = 1
				}
				if spy.calls != wantCalls {
					t.Errorf("strategy %s called %d times, want %d", typ, spy.calls, wantCalls)
				}
			}
		})
	}
}

func TestFactory_GenerateDaySelection(t *testing.T) {
	factory, spies := newSpiedFactory(t)
	dest := destination.Destination{ID: "d1", Name: "Lisbon", Country: "Portugal", Featured: true}

	if _, err := factory.GenerateDay(context.Background(), dest, 3, ""); err != nil {
		t.Fatalf("GenerateDay failed: %v", err)
	}
	spy := spies[TypeResilient]
	if spy.dayCalls != 1 || spy.lastDay != 3 {
		t.Errorf("resilient spy: dayCalls=%d lastDay=%d, want 1 and 3", spy.dayCalls, spy.lastDay)
	}
}

func TestFactory_UnknownExplicitType(t *testing.T) {
	factory, _ := newSpiedFactory(t)
	dest := destination.Destination{ID: "d1", Name: "Lisbon"}

	_, err := factory.GenerateItinerary(context.Background(), dest, Type("bogus"))
	if !errors.Is(err, ErrUnknownGeneratorType) {
		t.Errorf("got %v, want ErrUnknownGeneratorType", err)
	}
}

func TestFactory_ErrorsPassThroughUnchanged(t *testing.T) {
	factory, spies := newSpiedFactory(t)
	sentinel := errors.New("generation backend unavailable")
	spies[TypeDefault].returnErr = sentinel
	dest := destination.Destination{ID: "d1", Name: "Lisbon"}

	_, err := factory.GenerateItinerary(context.Background(), dest, "")
	if err != sentinel {
		t.Errorf("itinerary error was altered: got %v, want the sentinel unchanged", err)
	}

	_, err = factory.GenerateDay(context.Background(), dest, 2, "")
	if err != sentinel {
		t.Errorf("day error was altered: got %v, want the sentinel unchanged", err)
	}
}

func TestNewFactory_InvalidPolicyConfig(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultGenerator = "turbo"

	if _, err := NewFactory(cfg, stubTextGen{}); !errors.Is(err, ErrUnknownGeneratorType) {
		t.Errorf("got %v, want ErrUnknownGeneratorType", err)
	}
}

func TestParseType(t *testing.T) {
	for _, valid := range []string{"default", "chunked", "resilient", "efficient"} {
		if _, err := ParseType(valid); err != nil {
			t.Errorf("ParseType(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseType("premium"); !errors.Is(err, ErrUnknownGeneratorType) {
		t.Errorf("ParseType(\"premium\") = %v, want ErrUnknownGeneratorType", err)
	}
}
