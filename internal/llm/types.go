package llm

import (
	"context"

	"github.com/jmilbury/agentpress/internal/models"
)

// Provider is the generative text backend capability. Implementations may
// fail at call time; callers must treat any error as non-fatal and fall back
// to deterministic composition.
type Provider interface {
	// Generate produces article prose for one report from a role and a
	// pre-built analysis context.
	Generate(ctx context.Context, role models.Role, analysisContext string, reportNumber int, opts ...Option) (string, error)
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}
