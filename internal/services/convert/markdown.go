package convert

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/duyenle1312/rila-ai-agent/internal/interfaces"
)

// MarkdownConverter renders markdown uploads to HTML with goldmark.
type MarkdownConverter struct {
	md goldmark.Markdown
}

func NewMarkdownConverter() *MarkdownConverter {
	return &MarkdownConverter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

func (c *MarkdownConverter) Extensions() []string {
	return []string{".md", ".markdown"}
}

func (c *MarkdownConverter) Convert(ctx context.Context, data []byte) (*interfaces.ConvertResult, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(data, &buf); err != nil {
		return nil, fmt.Errorf("markdown render failed: %w", err)
	}

	html := buf.String()

	return &interfaces.ConvertResult{
		Title: firstHeadingText(html),
		HTML:  html,
	}, nil
}

// firstHeadingText returns the first <h1> text of an HTML fragment, or "".
func firstHeadingText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
