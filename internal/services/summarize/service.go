package summarize

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/interfaces"
	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

// systemInstruction asks the model for the article metadata bundle as a
// single JSON object. The field names here must stay in sync with
// models.ArticleMeta.
const systemInstruction = `Give me some high ranking SEO keywords separated by comma for this article in HTML format, a slug from the title provided below, also an image URL for the cover image of this article, and add an interesting, thought-provoking, informative one paragraph summary at the beginning of the HTML content using HTML tags <h2>Summary</h2> and <p> for the summary content, then also add this summary paragraph as plain text to the final json. Respond as a json with this structure: { "title": "", "slug": "", "seo_keywords": "", "cover_imgUrl": "", "plain_text_summary": "", "html_content": "" }`

// Service implements interfaces.Summarizer on top of a TextGenerator.
type Service struct {
	generator interfaces.TextGenerator
	validate  *validator.Validate
	logger    arbor.ILogger
}

// NewService creates a summarization service backed by the given generator.
func NewService(generator interfaces.TextGenerator, logger arbor.ILogger) *Service {
	return &Service{
		generator: generator,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Summarize sends the article HTML to the LLM and returns the parsed
// metadata bundle. A response that cannot be parsed or fails validation is a
// hard error; the caller decides how the pipeline reacts.
func (s *Service) Summarize(ctx context.Context, title, htmlContent string) (*models.ArticleMeta, error) {
	if htmlContent == "" {
		return nil, fmt.Errorf("article content cannot be empty")
	}

	prompt := fmt.Sprintf("Title: %s\n\nArticle Content in HTML format:\n%s", title, htmlContent)

	startTime := time.Now()
	raw, err := s.generator.Generate(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, fmt.Errorf("summarization request failed: %w", err)
	}

	meta, err := ParseArticleMeta(raw)
	if err != nil {
		s.logger.Warn().
			Str("provider", s.generator.Provider()).
			Int("response_length", len(raw)).
			Msg("LLM response was not valid article metadata")
		return nil, err
	}

	if err := s.validate.Struct(meta); err != nil {
		return nil, fmt.Errorf("article metadata failed validation: %w", err)
	}

	s.logger.Info().
		Str("provider", s.generator.Provider()).
		Str("slug", meta.Slug).
		Dur("duration", time.Since(startTime)).
		Msg("Article summarized")

	return meta, nil
}
