package lexical

import "strings"

// BlockSeparator joins the top-level blocks of a document in plain text.
const BlockSeparator = "\n"

// ExtractPlainText flattens a document to text: text runs verbatim, children
// concatenated without separators, top-level blocks joined by a newline.
// A nil document yields "".
func ExtractPlainText(doc *Document) string {
	if doc == nil {
		return ""
	}
	root, err := Deserialize(doc)
	if err != nil {
		return ""
	}
	return PlainText(root)
}

// PlainText is ExtractPlainText over an in-memory tree.
func PlainText(root *Node) string {
	if root == nil {
		return ""
	}
	blocks := make([]string, 0, len(root.Children))
	for _, child := range root.Children {
		var sb strings.Builder
		writePlainText(child, &sb)
		blocks = append(blocks, sb.String())
	}
	return strings.Join(blocks, BlockSeparator)
}

func writePlainText(n *Node, sb *strings.Builder) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindText:
		sb.WriteString(n.Text)
	case KindRoot, KindParagraph, KindHeading, KindQuote, KindList, KindListItem:
	default:
		// Unknown nodes may carry text of their own (tabs, code tokens).
		sb.WriteString(n.Text)
	}
	for _, child := range n.Children {
		writePlainText(child, sb)
	}
}
