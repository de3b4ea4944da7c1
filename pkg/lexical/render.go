package lexical

// RenderKind is the display role of a RenderNode.
type RenderKind int

const (
	RenderRoot RenderKind = iota
	RenderSpan
	RenderHeading
	RenderBlock
	RenderListItem
	RenderContainer
)

// RenderNode is the read-only display tree produced by RenderStructural.
type RenderNode struct {
	Kind RenderKind

	// Spans.
	Text          string
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Code          bool
	Style         StyleMap

	// Blocks.
	Level     int
	Quotation bool
	List      bool
	Ordered   bool
	Align     string

	// Wire type of a generic container.
	SourceType string

	Children []*RenderNode
}

// Tag is the HTML element the node is displayed as.
func (r *RenderNode) Tag() string {
	switch r.Kind {
	case RenderRoot:
		return "article"
	case RenderSpan:
		return "span"
	case RenderHeading:
		return headingTag(r.Level)
	case RenderBlock:
		switch {
		case r.List && r.Ordered:
			return "ol"
		case r.List:
			return "ul"
		case r.Quotation:
			return "blockquote"
		default:
			return "p"
		}
	case RenderListItem:
		return "li"
	default:
		return "div"
	}
}

// RenderStructural builds the display tree of a document. The input is never
// modified; a nil document renders as an empty root.
func RenderStructural(doc *Document) *RenderNode {
	if doc == nil {
		return &RenderNode{Kind: RenderRoot}
	}
	root, err := Deserialize(doc)
	if err != nil {
		return &RenderNode{Kind: RenderRoot}
	}
	return Render(root)
}

// Render is RenderStructural over an in-memory tree.
func Render(root *Node) *RenderNode {
	out := &RenderNode{Kind: RenderRoot}
	if root == nil {
		return out
	}
	out.Children = renderChildren(root)
	return out
}

func renderNode(n *Node) *RenderNode {
	var r *RenderNode
	switch n.Kind {
	case KindText:
		r = &RenderNode{
			Kind:          RenderSpan,
			Text:          n.Text,
			Bold:          n.Format.Has(FormatBold),
			Italic:        n.Format.Has(FormatItalic),
			Underline:     n.Format.Has(FormatUnderline),
			Strikethrough: n.Format.Has(FormatStrikethrough),
			Code:          n.Format.Has(FormatCode),
			Style:         n.Style().Whitelisted(),
		}
	case KindRoot:
		r = &RenderNode{Kind: RenderRoot}
	case KindHeading:
		r = &RenderNode{Kind: RenderHeading, Level: n.Level(), Align: n.Align()}
	case KindParagraph:
		r = &RenderNode{Kind: RenderBlock, Align: n.Align()}
	case KindQuote:
		r = &RenderNode{Kind: RenderBlock, Quotation: true, Align: n.Align()}
	case KindList:
		r = &RenderNode{Kind: RenderBlock, List: true, Ordered: n.Ordered()}
	case KindListItem:
		r = &RenderNode{Kind: RenderListItem}
	default:
		r = &RenderNode{Kind: RenderContainer, SourceType: n.Type}
		if n.Text != "" {
			r.Children = append(r.Children, &RenderNode{Kind: RenderSpan, Text: n.Text})
		}
	}
	r.Children = append(r.Children, renderChildren(n)...)
	return r
}

func renderChildren(n *Node) []*RenderNode {
	if len(n.Children) == 0 {
		return nil
	}
	out := make([]*RenderNode, 0, len(n.Children))
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		out = append(out, renderNode(child))
	}
	return out
}

func headingTag(level int) string {
	if level < 1 || level > 6 {
		level = defaultHeadingLevel
	}
	return "h" + string(rune('0'+level))
}
