package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

func TestBuild_ParagraphWithBoldSpan(t *testing.T) {
	out := Build(`<p>Hello <strong>World</strong></p>`)

	require.Len(t, out, 1)
	assert.Equal(t, models.BlockParagraph, out[0].Type)
	require.Len(t, out[0].Spans, 2)
	assert.Equal(t, models.InlineSpan{Text: "Hello "}, out[0].Spans[0])
	assert.Equal(t, models.InlineSpan{Text: "World", Bold: true}, out[0].Spans[1])
}

func TestBuild_HeadingKeepsPlainTextOnly(t *testing.T) {
	out := Build(`<h2>Title</h2>`)

	require.Len(t, out, 1)
	assert.Equal(t, models.BlockHeading, out[0].Type)
	assert.Equal(t, 2, out[0].Level)
	assert.Equal(t, "Title", out[0].PlainText())
}

func TestBuild_HeadingFlattensInlineMarkup(t *testing.T) {
	out := Build(`<h1>Big <em>News</em> Today</h1>`)

	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].Level)
	require.Len(t, out[0].Spans, 1)
	assert.Equal(t, "Big News Today", out[0].Spans[0].Text)
	assert.False(t, out[0].Spans[0].Italic)
}

func TestBuild_NestedListAttachesChildToParentItem(t *testing.T) {
	out := Build(`<ul><li>A<ul><li>B</li></ul></li></ul>`)

	require.Len(t, out, 1)
	item := out[0]
	assert.Equal(t, models.BlockListItem, item.Type)
	assert.False(t, item.Ordered)
	assert.Equal(t, "A", item.PlainText(), "nested item text must not leak into the parent's spans")

	require.Len(t, item.Children, 1)
	child := item.Children[0]
	assert.Equal(t, models.BlockListItem, child.Type)
	assert.Equal(t, "B", child.PlainText())
	assert.Empty(t, child.Children)
}

func TestBuild_NestedListTypeIsLocalNotInherited(t *testing.T) {
	out := Build(`<ol><li>first<ul><li>bullet</li></ul></li></ol>`)

	require.Len(t, out, 1)
	assert.True(t, out[0].Ordered)
	require.Len(t, out[0].Children, 1)
	assert.False(t, out[0].Children[0].Ordered, "a <ul> nested in an <ol> produces unordered children")
}

func TestBuild_TopLevelListYieldsSiblingItems(t *testing.T) {
	out := Build(`<ul><li>one</li><li>two</li><li>three</li></ul>`)

	require.Len(t, out, 3)
	for i, text := range []string{"one", "two", "three"} {
		assert.Equal(t, models.BlockListItem, out[i].Type)
		assert.Equal(t, text, out[i].PlainText())
	}
}

func TestBuild_SiblingOrderMatchesSource(t *testing.T) {
	out := Build(`<h1>T</h1><p>a</p><ul><li>b</li></ul><p>c</p>`)

	require.Len(t, out, 4)
	assert.Equal(t, models.BlockHeading, out[0].Type)
	assert.Equal(t, models.BlockParagraph, out[1].Type)
	assert.Equal(t, models.BlockListItem, out[2].Type)
	assert.Equal(t, models.BlockParagraph, out[3].Type)
	assert.Equal(t, "c", out[3].PlainText())
}

func TestBuild_UnknownTopLevelElementsSkipped(t *testing.T) {
	out := Build(`<div>ignored</div><p>kept</p><table><tr><td>ignored</td></tr></table>`)

	require.Len(t, out, 1)
	assert.Equal(t, "kept", out[0].PlainText())
}

func TestBuild_InlineVariants(t *testing.T) {
	out := Build(`<p><em>i</em><code>c</code><a href="https://example.com">l</a><b>bb</b></p>`)

	require.Len(t, out, 1)
	require.Len(t, out[0].Spans, 4)
	assert.Equal(t, models.InlineSpan{Text: "i", Italic: true}, out[0].Spans[0])
	assert.Equal(t, models.InlineSpan{Text: "c", Code: true}, out[0].Spans[1])
	assert.Equal(t, models.InlineSpan{Text: "l", LinkURL: "https://example.com"}, out[0].Spans[2])
	assert.Equal(t, models.InlineSpan{Text: "bb", Bold: true}, out[0].Spans[3])
}

func TestBuild_UnknownInlineElementIsTransparent(t *testing.T) {
	out := Build(`<p><span>plain <strong>bold</strong></span></p>`)

	require.Len(t, out, 1)
	require.Len(t, out[0].Spans, 2)
	assert.Equal(t, "plain ", out[0].Spans[0].Text)
	assert.False(t, out[0].Spans[0].Bold)
	assert.True(t, out[0].Spans[1].Bold)
}

func TestBuild_FormattingFlattensSubtree(t *testing.T) {
	out := Build(`<p><strong>bold <em>and italic</em></strong></p>`)

	require.Len(t, out, 1)
	require.Len(t, out[0].Spans, 1)
	assert.Equal(t, models.InlineSpan{Text: "bold and italic", Bold: true}, out[0].Spans[0])
}

func TestBuild_MalformedMarkupDoesNotFail(t *testing.T) {
	out := Build(`<p>unclosed <strong>bold`)

	require.Len(t, out, 1)
	assert.Equal(t, "unclosed bold", out[0].PlainText())
}

func TestBuild_EmptyInput(t *testing.T) {
	assert.Empty(t, Build(""))
}

func TestBuild_DeeplyNestedLists(t *testing.T) {
	out := Build(`<ul><li>a<ol><li>b<ul><li>c</li></ul></li></ol></li></ul>`)

	require.Len(t, out, 1)
	a := out[0]
	require.Len(t, a.Children, 1)
	b := a.Children[0]
	assert.True(t, b.Ordered)
	assert.Equal(t, "b", b.PlainText())
	require.Len(t, b.Children, 1)
	c := b.Children[0]
	assert.False(t, c.Ordered)
	assert.Equal(t, "c", c.PlainText())
}
