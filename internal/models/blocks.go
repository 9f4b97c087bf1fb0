package models

// BlockType identifies the kind of content block produced by the block tree
// builder. The set mirrors what the content store's block API accepts.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockHeading   BlockType = "heading"
	BlockListItem  BlockType = "list_item"
)

// InlineSpan is a run of text sharing the same formatting within a block.
// Span order within a block matches source left-to-right order.
type InlineSpan struct {
	Text    string `json:"text"`
	Bold    bool   `json:"bold,omitempty"`
	Italic  bool   `json:"italic,omitempty"`
	Code    bool   `json:"code,omitempty"`
	LinkURL string `json:"link_url,omitempty"`
}

// Block is a typed unit of structured content. Heading blocks carry a level of
// 1..3 and plain text only (no span structure). List items may own nested
// child list items; this is the one recursive relationship in the model.
type Block struct {
	Type     BlockType    `json:"type"`
	Level    int          `json:"level,omitempty"`   // headings only, 1..3
	Ordered  bool         `json:"ordered,omitempty"` // list items only
	Spans    []InlineSpan `json:"spans,omitempty"`
	Children []Block      `json:"children,omitempty"` // nested list items only
}

// PlainText concatenates the block's span text without formatting.
func (b *Block) PlainText() string {
	var out string
	for _, s := range b.Spans {
		out += s.Text
	}
	return out
}
