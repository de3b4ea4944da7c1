package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helloBye() *Node {
	return NewRoot(
		NewParagraph(NewText("Hello ", FormatBold), NewText("world", 0)),
		NewParagraph(NewText("Bye", 0)),
	)
}

func TestExtractPlainText(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
		want string
	}{
		{name: "nil document", doc: nil, want: ""},
		{name: "empty tree", doc: EmptyDocument(), want: ""},
		{name: "blocks joined by newline", doc: Serialize(helloBye()), want: "Hello world\nBye"},
		{
			name: "nested list items concatenate",
			doc: Serialize(NewRoot(
				NewHeading(1, NewText("Shopping", 0)),
				NewList(false,
					NewListItem(NewText("eggs", 0)),
					NewListItem(NewText("milk", FormatItalic)),
				),
			)),
			want: "Shopping\neggsmilk",
		},
		{
			name: "unknown nodes keep their text",
			doc: Serialize(NewRoot(NewParagraph(
				NewText("a", 0),
				&Node{Type: "tab", Text: "\t"},
				&Node{Type: "link", Children: []*Node{NewText("b", 0)}},
			))),
			want: "a\tb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPlainText(tt.doc))
		})
	}
}

func TestExtractPlainTextDependsOnlyOnContent(t *testing.T) {
	a := Serialize(helloBye())
	b := Serialize(NewRoot(NewParagraph(NewText("other", 0))))

	assert.Equal(t, "Hello world\nBye", ExtractPlainText(a))
	assert.Equal(t, "other", ExtractPlainText(b))
	assert.Equal(t, "Hello world\nBye", ExtractPlainText(a))
}

func TestRenderStructural(t *testing.T) {
	doc := Serialize(NewRoot(
		NewHeading(1, NewText("Title", 0)),
		NewParagraph(NewText("both", FormatBold|FormatItalic)),
		NewQuote(NewText("q", 0)),
		NewList(true, NewListItem(NewText("one", 0))),
		NewList(false, NewListItem(NewText("dot", 0))),
		&Node{Type: "callout", Children: []*Node{NewText("kept", 0)}},
	))

	tree := RenderStructural(doc)
	require.Equal(t, RenderRoot, tree.Kind)
	require.Len(t, tree.Children, 6)

	heading := tree.Children[0]
	assert.Equal(t, RenderHeading, heading.Kind)
	assert.Equal(t, 1, heading.Level)
	assert.Equal(t, "h1", heading.Tag())

	span := tree.Children[1].Children[0]
	assert.Equal(t, RenderSpan, span.Kind)
	assert.True(t, span.Bold)
	assert.True(t, span.Italic)
	assert.False(t, span.Underline)

	quote := tree.Children[2]
	assert.True(t, quote.Quotation)
	assert.Equal(t, "blockquote", quote.Tag())

	assert.Equal(t, "ol", tree.Children[3].Tag())
	assert.Equal(t, "li", tree.Children[3].Children[0].Tag())
	assert.Equal(t, "ul", tree.Children[4].Tag())

	generic := tree.Children[5]
	assert.Equal(t, RenderContainer, generic.Kind)
	assert.Equal(t, "callout", generic.SourceType)
	require.Len(t, generic.Children, 1)
	assert.Equal(t, "kept", generic.Children[0].Text)
}

func TestRenderStructuralDoesNotMutateInput(t *testing.T) {
	doc, err := ParseDocument([]byte(editorStateJSON))
	require.NoError(t, err)
	before := string(doc.Bytes())

	first := RenderStructural(doc)
	second := RenderStructural(doc)

	assert.Equal(t, first, second)
	assert.JSONEq(t, before, string(doc.Bytes()))
}

func TestRenderStructuralNil(t *testing.T) {
	tree := RenderStructural(nil)
	assert.Equal(t, RenderRoot, tree.Kind)
	assert.Empty(t, tree.Children)
}

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name string
		tree *Node
		want string
	}{
		{name: "empty", tree: NewEmptyTree(), want: "<p></p>"},
		{
			name: "formats nest bold outside italic",
			tree: NewRoot(NewParagraph(NewText("x", FormatBold|FormatItalic), NewText(" y", 0))),
			want: "<p><strong><em>x</em></strong> y</p>",
		},
		{
			name: "heading and escaping",
			tree: NewRoot(NewHeading(3, NewText("a < b & c", 0))),
			want: "<h3>a &lt; b &amp; c</h3>",
		},
		{
			name: "lists and quote",
			tree: NewRoot(
				NewList(true, NewListItem(NewText("1", 0))),
				NewList(false, NewListItem(NewText("2", FormatCode))),
				NewQuote(NewText("q", FormatUnderline|FormatStrikethrough)),
			),
			want: "<ol><li>1</li></ol><ul><li><code>2</code></li></ul><blockquote><u><s>q</s></u></blockquote>",
		},
		{
			name: "unknown container",
			tree: NewRoot(&Node{Type: "callout", Children: []*Node{NewText("c", 0)}}),
			want: `<div data-type="callout">c</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderHTML(Serialize(tt.tree)))
		})
	}
}

func TestRenderHTMLStyledSpan(t *testing.T) {
	doc, err := ParseDocument([]byte(editorStateJSON))
	require.NoError(t, err)

	out := RenderHTML(doc)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, `<p style="text-align: center"><span style="color: #F97316"><strong>Hello </strong></span>`)
	assert.Contains(t, out, `<div data-type="horizontalrule"></div>`)
	assert.Equal(t, "", RenderHTML(nil))
}

func TestRenderHTMLKeepsFormatsAfterInMemoryRoundTrip(t *testing.T) {
	root, err := Deserialize(Serialize(NewRoot(NewParagraph(NewText("b", FormatBold|FormatItalic)))))
	require.NoError(t, err)
	assert.Equal(t, "<p><strong><em>b</em></strong></p>", RenderHTML(Serialize(root)))
}

func TestRenderHTMLIgnoresUnknownAlignment(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: "right", want: `<p style="text-align: right">x</p>`},
		{format: "justify", want: `<p style="text-align: justify">x</p>`},
		{format: "left", want: `<p>x</p>`},
		{format: "center; background: url(https://evil.example/x)", want: `<p>x</p>`},
		{format: "", want: `<p>x</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			para := NewParagraph(NewText("x", 0))
			para.setExtra(keyFormat, tt.format)
			assert.Equal(t, tt.want, RenderHTML(Serialize(NewRoot(para))))
		})
	}
}

func TestToMarkdown(t *testing.T) {
	doc := Serialize(NewRoot(
		NewHeading(2, NewText("Plan", 0)),
		NewParagraph(NewText("bold", FormatBold), NewText(" and ", 0), NewText("code", FormatCode)),
		NewList(true, NewListItem(NewText("first", 0)), NewListItem(NewText("second", 0))),
		NewQuote(NewText("said", 0)),
	))

	want := "## Plan\n\n" +
		"**bold** and `code`\n\n" +
		"1. first\n2. second\n\n\n" +
		"> said\n\n"
	assert.Equal(t, want, ToMarkdown(doc))
}

func TestParseContentFallsBackToInput(t *testing.T) {
	assert.Equal(t, "plain words", ParseContent("plain words"))
	assert.Equal(t, "{broken", ParseContent("{broken"))
	assert.Equal(t, "hi\n\n", ParseContent(`{"root":{"type":"root","children":[{"type":"paragraph","children":[{"type":"text","text":"hi","format":0}]}]}}`))
}

func TestStyleWhitelist(t *testing.T) {
	styles := ParseStyle("color: red; font-size: 12px; background-color: #fff;")
	assert.Equal(t, "color: red; background-color: #fff", styles.CSS())
	assert.Equal(t, StyleMap{"color": "red", "background-color": "#fff"}, styles.Whitelisted())
	assert.Nil(t, ParseStyle("font-size: 12px").Whitelisted())
	assert.Equal(t, "", ParseStyle("").BuildAnnotatedOpenTag())
}
