package summarize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

// ParseArticleMeta decodes an LLM response into article metadata. Models
// routinely wrap JSON in markdown code fences, so those are stripped first.
func ParseArticleMeta(raw string) (*models.ArticleMeta, error) {
	cleaned := cleanMarkdownFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty LLM response")
	}

	var meta models.ArticleMeta
	if err := json.Unmarshal([]byte(cleaned), &meta); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
	}

	return &meta, nil
}

// cleanMarkdownFences strips a surrounding ```json ... ``` (or bare ```)
// fence and any prose the model emitted before the opening fence.
func cleanMarkdownFences(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if idx := strings.Index(cleaned, "```"); idx >= 0 {
		cleaned = cleaned[idx+3:]
		cleaned = strings.TrimPrefix(cleaned, "json")
		if end := strings.LastIndex(cleaned, "```"); end >= 0 {
			cleaned = cleaned[:end]
		}
	}

	return strings.TrimSpace(cleaned)
}
