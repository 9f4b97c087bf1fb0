package interfaces

import (
	"context"

	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

// TextGenerator is the minimal LLM surface the summarizer needs: one system
// instruction, one prompt, one text response. Implementations wrap a cloud
// provider SDK and own their timeout and rate limiting.
type TextGenerator interface {
	// Generate produces a completion for the prompt under the given system
	// instruction.
	Generate(ctx context.Context, system, prompt string) (string, error)

	// Provider returns the provider name, e.g. "gemini" or "claude".
	Provider() string
}

// Summarizer is the summarization collaborator: given a title and HTML body
// it returns structured article metadata including a revised HTML body with
// the generated summary paragraph prepended. A malformed or incomplete
// response is a hard failure; there is no partial recovery.
type Summarizer interface {
	Summarize(ctx context.Context, title, htmlContent string) (*models.ArticleMeta, error)
}
