package summarize

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/common"
	"github.com/duyenle1312/rila-ai-agent/internal/interfaces"
)

// NewTextGenerator creates the configured provider's text generator.
// Gemini is the default; Claude is selected with llm.provider = "claude".
func NewTextGenerator(config *common.LLMConfig, logger arbor.ILogger) (interfaces.TextGenerator, error) {
	switch config.Provider {
	case common.LLMProviderClaude:
		return NewClaudeGenerator(&config.Claude, logger)
	case common.LLMProviderGemini, "":
		return NewGeminiGenerator(&config.Gemini, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", config.Provider)
	}
}
