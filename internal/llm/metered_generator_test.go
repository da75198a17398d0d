package llm

import (
	"context"
	"errors"
	"testing"

	"deep-travel-collections/internal/shared"
)

type innerStub struct {
	resp      ContentResponse
	returnErr error
}

func (s *innerStub) GenerateContent(_ context.Context, _ string) (ContentResponse, error) {
	if s.returnErr != nil {
		return ContentResponse{}, s.returnErr
	}
	return s.resp, nil
}

type captureRecorder struct {
	calls []shared.GeneratorMeta
}

func (r *captureRecorder) RecordUsage(meta shared.GeneratorMeta) {
	r.calls = append(r.calls, meta)
}

func TestMeteredGenerator_RecordsUsage(t *testing.T) {
	inner := &innerStub{resp: ContentResponse{
		Content: "# Day 1: Arrival",
		Usage:   shared.TokenUsage{PromptTokens: 10, CompletionTokens: 20, Model: "test-model"},
	}}
	recorder := &captureRecorder{}
	gen := NewMeteredGenerator("gemini", inner, recorder)

	resp, err := gen.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateContent failed: %v", err)
	}
	if resp.Content != "# Day 1: Arrival" {
		t.Errorf("content altered by decorator: %q", resp.Content)
	}

	if len(recorder.calls) != 1 {
		t.Fatalf("recorder called %d times, want 1", len(recorder.calls))
	}
	meta := recorder.calls[0]
	if meta.GeneratorType != "gemini" {
		t.Errorf("GeneratorType = %q, want %q", meta.GeneratorType, "gemini")
	}
	if meta.Usage.PromptTokens != 10 || meta.Usage.Model != "test-model" {
		t.Errorf("usage not passed through: %+v", meta.Usage)
	}
	if meta.OutputChars != len(resp.Content) {
		t.Errorf("OutputChars = %d, want %d", meta.OutputChars, len(resp.Content))
	}
}

func TestMeteredGenerator_NoRecordOnError(t *testing.T) {
	sentinel := errors.New("backend down")
	recorder := &captureRecorder{}
	gen := NewMeteredGenerator("groq", &innerStub{returnErr: sentinel}, recorder)

	if _, err := gen.GenerateContent(context.Background(), "prompt"); err != sentinel {
		t.Errorf("error altered by decorator: %v", err)
	}
	if len(recorder.calls) != 0 {
		t.Errorf("recorder should not be called on failure, got %d calls", len(recorder.calls))
	}
}

func TestMeteredGenerator_NilRecorder(t *testing.T) {
	gen := NewMeteredGenerator("gemini", &innerStub{resp: ContentResponse{Content: "ok"}}, nil)

	if _, err := gen.GenerateContent(context.Background(), "prompt"); err != nil {
		t.Fatalf("GenerateContent failed with nil recorder: %v", err)
	}
}
