package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/interfaces"
)

// PDFConverter extracts page text from PDF uploads with pdfcpu and wraps it
// into paragraph blocks. pdfcpu works on files, so the payload round-trips
// through a temp directory.
type PDFConverter struct {
	logger arbor.ILogger
}

func NewPDFConverter(logger arbor.ILogger) *PDFConverter {
	return &PDFConverter{logger: logger}
}

func (c *PDFConverter) Extensions() []string {
	return []string{".pdf"}
}

func (c *PDFConverter) Convert(ctx context.Context, data []byte) (*interfaces.ConvertResult, error) {
	tempDir, err := os.MkdirTemp("", "blogagent-pdf-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile := filepath.Join(tempDir, "upload.pdf")
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write temp PDF file: %w", err)
	}

	conf := model.NewDefaultConfiguration()

	outDir := filepath.Join(tempDir, "content")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create extraction dir: %w", err)
	}

	if err := api.ExtractContentFile(tempFile, outDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract PDF content: %w", err)
	}

	// One content file per page; sort names for page order.
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read extraction dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var text strings.Builder
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			c.logger.Warn().Err(err).Str("file", name).Msg("Skipping unreadable PDF content file")
			continue
		}
		if text.Len() > 0 {
			text.WriteString("\n\n")
		}
		text.Write(content)
	}

	if text.Len() == 0 {
		return nil, fmt.Errorf("no text content extracted from PDF")
	}

	return &interfaces.ConvertResult{
		HTML: paragraphsToHTML(text.String()),
	}, nil
}
