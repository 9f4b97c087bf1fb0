package convert

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/duyenle1312/rila-ai-agent/internal/interfaces"
)

var blankLines = regexp.MustCompile(`\r?\n\s*\r?\n`)

// TextConverter wraps plain-text uploads into escaped <p> blocks, one per
// blank-line-separated paragraph.
type TextConverter struct{}

func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

func (c *TextConverter) Extensions() []string {
	return []string{".txt"}
}

func (c *TextConverter) Convert(ctx context.Context, data []byte) (*interfaces.ConvertResult, error) {
	return &interfaces.ConvertResult{
		HTML: paragraphsToHTML(string(data)),
	}, nil
}

// paragraphsToHTML escapes text and wraps each paragraph in <p> tags.
// Line breaks within a paragraph collapse to spaces.
func paragraphsToHTML(text string) string {
	var sb strings.Builder
	for _, para := range blankLines.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		para = strings.Join(strings.Fields(para), " ")
		sb.WriteString("<p>")
		sb.WriteString(html.EscapeString(para))
		sb.WriteString("</p>\n")
	}
	return sb.String()
}
