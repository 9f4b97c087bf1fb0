package publish

import (
	"fmt"

	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

type textLink struct {
	URL string `json:"url"`
}

type textContent struct {
	Content string    `json:"content"`
	Link    *textLink `json:"link,omitempty"`
}

type annotations struct {
	Bold   bool `json:"bold,omitempty"`
	Italic bool `json:"italic,omitempty"`
	Code   bool `json:"code,omitempty"`
}

type richText struct {
	Type        string       `json:"type"`
	Text        textContent  `json:"text"`
	Annotations *annotations `json:"annotations,omitempty"`
}

func richTexts(spans []models.InlineSpan) []richText {
	out := make([]richText, 0, len(spans))
	for _, span := range spans {
		rt := richText{
			Type: "text",
			Text: textContent{Content: span.Text},
		}
		if span.LinkURL != "" {
			rt.Text.Link = &textLink{URL: span.LinkURL}
		}
		if span.Bold || span.Italic || span.Code {
			rt.Annotations = &annotations{
				Bold:   span.Bold,
				Italic: span.Italic,
				Code:   span.Code,
			}
		}
		out = append(out, rt)
	}
	return out
}

// blockPayload maps one content block to the Notion block object. The body
// lives under a key named after the block type, so the payload is a map.
func blockPayload(block models.Block) map[string]any {
	body := map[string]any{
		"rich_text": richTexts(block.Spans),
	}

	var typeName string
	switch block.Type {
	case models.BlockHeading:
		level := block.Level
		if level < 1 {
			level = 1
		}
		if level > 3 {
			level = 3
		}
		typeName = fmt.Sprintf("heading_%d", level)
	case models.BlockListItem:
		if block.Ordered {
			typeName = "numbered_list_item"
		} else {
			typeName = "bulleted_list_item"
		}
		if len(block.Children) > 0 {
			children := make([]map[string]any, 0, len(block.Children))
			for _, child := range block.Children {
				children = append(children, blockPayload(child))
			}
			body["children"] = children
		}
	default:
		typeName = "paragraph"
	}

	return map[string]any{
		"object": "block",
		"type":   typeName,
		typeName: body,
	}
}
