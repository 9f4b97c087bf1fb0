// Package blocks converts an HTML-equivalent document body into the ordered
// tree of typed content blocks the content store's block API accepts.
//
// The builder is a pure recursive descent over the parsed document: it never
// mutates the tree, and at each list item it explicitly separates direct
// inline content from nested block content. Malformed markup is never an
// error; unrecognized top-level elements are skipped.
package blocks

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

// Build parses html and returns the ordered block tree. Only <p>, <h1>-<h3>,
// <ul> and <ol> at the root contribute blocks; each direct <li> of a
// top-level list becomes its own sibling list-item block, and lists nested
// inside an <li> become that item's children.
func Build(html string) []models.Block {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return []models.Block{}
	}

	blocks := []models.Block{}
	doc.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		switch name := goquery.NodeName(s); name {
		case "p":
			blocks = append(blocks, models.Block{
				Type:  models.BlockParagraph,
				Spans: extractSpans(s),
			})
		case "h1", "h2", "h3":
			// Headings keep plain concatenated text only; inline formatting
			// inside a heading is intentionally flattened.
			blocks = append(blocks, models.Block{
				Type:  models.BlockHeading,
				Level: int(name[1] - '0'),
				Spans: []models.InlineSpan{{Text: s.Text()}},
			})
		case "ul", "ol":
			blocks = append(blocks, listItems(s, name == "ol")...)
		}
	})
	return blocks
}

// listItems builds one block per direct <li> child of a list element.
// Descendant <li> of nested lists are handled by their own parent item.
func listItems(list *goquery.Selection, ordered bool) []models.Block {
	var items []models.Block
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		items = append(items, buildListItem(li, ordered))
	})
	return items
}

// buildListItem separates an <li> into its own inline spans and the child
// items contributed by lists nested directly inside it. Nested list type is
// determined locally per list, not inherited from the parent.
func buildListItem(li *goquery.Selection, ordered bool) models.Block {
	block := models.Block{Type: models.BlockListItem, Ordered: ordered}

	li.Contents().Each(func(_ int, c *goquery.Selection) {
		switch name := goquery.NodeName(c); name {
		case "ul", "ol":
			nestedOrdered := name == "ol"
			c.ChildrenFiltered("li").Each(func(_ int, nested *goquery.Selection) {
				block.Children = append(block.Children, buildListItem(nested, nestedOrdered))
			})
		default:
			block.Spans = append(block.Spans, spansFromNode(c)...)
		}
	})

	return block
}

// extractSpans walks the direct children of a content-bearing element and
// returns their inline spans in source order.
func extractSpans(s *goquery.Selection) []models.InlineSpan {
	var spans []models.InlineSpan
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		spans = append(spans, spansFromNode(c)...)
	})
	return spans
}

// spansFromNode converts one node into inline spans. Formatting elements
// flatten their full subtree text under a single annotation; any other
// element is a transparent passthrough into its children.
func spansFromNode(s *goquery.Selection) []models.InlineSpan {
	switch name := goquery.NodeName(s); name {
	case "#text":
		text := s.Text()
		if text == "" {
			return nil
		}
		// Newline-bearing whitespace-only nodes are pretty-printed source
		// indentation, not content. A lone inter-word space is kept.
		if strings.TrimSpace(text) == "" && strings.ContainsAny(text, "\n\r") {
			return nil
		}
		return []models.InlineSpan{{Text: text}}
	case "strong", "b":
		return []models.InlineSpan{{Text: s.Text(), Bold: true}}
	case "em", "i":
		return []models.InlineSpan{{Text: s.Text(), Italic: true}}
	case "code":
		return []models.InlineSpan{{Text: s.Text(), Code: true}}
	case "a":
		href, _ := s.Attr("href")
		return []models.InlineSpan{{Text: s.Text(), LinkURL: href}}
	case "#comment":
		return nil
	default:
		var spans []models.InlineSpan
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			spans = append(spans, spansFromNode(c)...)
		})
		return spans
	}
}
