package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/duyenle1312/rila-ai-agent/internal/interfaces"
)

// HTMLConverter accepts HTML uploads as-is, deriving the title from the
// document's <title> tag or its first heading.
type HTMLConverter struct{}

func NewHTMLConverter() *HTMLConverter {
	return &HTMLConverter{}
}

func (c *HTMLConverter) Extensions() []string {
	return []string{".html", ".htm"}
}

func (c *HTMLConverter) Convert(ctx context.Context, data []byte) (*interfaces.ConvertResult, error) {
	html := string(data)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	// The pipeline works on the body content; a full document wrapper would
	// otherwise be skipped by the root-level block walk.
	if body, err := doc.Find("body").Html(); err == nil && strings.TrimSpace(body) != "" {
		html = body
	}

	return &interfaces.ConvertResult{
		Title: title,
		HTML:  html,
	}, nil
}
