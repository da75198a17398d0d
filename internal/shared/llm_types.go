package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// GeneratorMeta holds operational metadata for a single generation call.
type GeneratorMeta struct {
	GeneratorType string
	Usage         TokenUsage
	Latency       time.Duration
	OutputChars   int
}
