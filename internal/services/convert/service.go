// Package convert routes uploaded documents to a format-specific converter
// producing the HTML-equivalent body the pipeline operates on.
package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/interfaces"
)

// Service implements interfaces.ConvertService over a registry of
// per-extension converters.
type Service struct {
	converters map[string]interfaces.DocumentConverter
	logger     arbor.ILogger
}

// NewService registers the built-in converters: markdown, HTML, PDF and
// plain text. Formats without a registered converter (docx among them) are
// rejected at upload time.
func NewService(logger arbor.ILogger) *Service {
	s := &Service{
		converters: make(map[string]interfaces.DocumentConverter),
		logger:     logger,
	}

	s.Register(NewMarkdownConverter())
	s.Register(NewHTMLConverter())
	s.Register(NewPDFConverter(logger))
	s.Register(NewTextConverter())

	return s
}

// Register adds a converter for each extension it reports. Later
// registrations win, which lets callers swap a built-in for an external
// collaborator.
func (s *Service) Register(c interfaces.DocumentConverter) {
	for _, ext := range c.Extensions() {
		s.converters[strings.ToLower(ext)] = c
	}
}

// Supported reports whether the filename's extension has a converter.
func (s *Service) Supported(filename string) bool {
	_, ok := s.converters[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// SupportedExtensions lists the registered extensions for error payloads.
func (s *Service) SupportedExtensions() []string {
	exts := make([]string, 0, len(s.converters))
	for ext := range s.converters {
		exts = append(exts, ext)
	}
	return exts
}

// Convert validates the extension and converts the payload to HTML.
func (s *Service) Convert(ctx context.Context, filename string, data []byte) (*interfaces.ConvertResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	converter, ok := s.converters[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}

	result, err := converter.Convert(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s document: %w", ext, err)
	}

	s.logger.Debug().
		Str("filename", filename).
		Int("html_length", len(result.HTML)).
		Msg("Document converted to HTML")

	return result, nil
}
