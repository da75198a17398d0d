package llm

import (
	"context"
	"time"

	"deep-travel-collections/internal/shared"
)

// UsageRecorder receives operational metadata after each successful
// generation call.
type UsageRecorder interface {
	RecordUsage(meta shared.GeneratorMeta)
}

// MeteredTextGenerator wraps a TextGenerator and records token usage and
// latency for every successful call.
type MeteredTextGenerator struct {
	label    string
	inner    TextGenerator
	recorder UsageRecorder
}

// NewMeteredGenerator creates a metering decorator around a TextGenerator.
func NewMeteredGenerator(label string, inner TextGenerator, recorder UsageRecorder) *MeteredTextGenerator {
	return &MeteredTextGenerator{
		label:    label,
		inner:    inner,
		recorder: recorder,
	}
}

// GenerateContent delegates to the wrapped generator and records usage.
func (m *MeteredTextGenerator) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	start := time.Now()
	resp, err := m.inner.GenerateContent(ctx, prompt)
	if err != nil {
		return resp, err
	}
	if m.recorder != nil {
		m.recorder.RecordUsage(shared.GeneratorMeta{
			GeneratorType: m.label,
			Usage:         resp.Usage,
			Latency:       time.Since(start),
			OutputChars:   len(resp.Content),
		})
	}
	return resp, nil
}
