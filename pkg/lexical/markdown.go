package lexical

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Parser handles document to Markdown conversion
type Parser struct{}

// NewParser creates a new parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts Lexical JSON to Markdown
func (p *Parser) Parse(jsonContent string) (string, error) {
	root, err := ParseTree([]byte(jsonContent))
	if err != nil {
		return "", err
	}
	return p.Markdown(root), nil
}

// Markdown converts an in-memory tree to Markdown
func (p *Parser) Markdown(root *Node) string {
	if root == nil {
		return ""
	}
	var sb strings.Builder
	p.walkNode(root, &sb, 0)
	return sb.String()
}

// ToMarkdown renders a document as Markdown. A nil document yields "".
func ToMarkdown(doc *Document) string {
	if doc == nil {
		return ""
	}
	root, err := Deserialize(doc)
	if err != nil {
		return ""
	}
	return NewParser().Markdown(root)
}

// ParseContent is a convenience function to parse a raw string
// It attempts to parse as Lexical JSON; if it fails (not JSON or error), it returns the original string
func ParseContent(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return content
	}

	md, err := NewParser().Parse(trimmed)
	if err != nil {
		return content
	}
	return md
}

func (p *Parser) walkNode(node *Node, sb *strings.Builder, depth int) {
	switch node.Kind {
	case KindRoot:
		for _, child := range node.Children {
			p.walkNode(child, sb, depth)
			sb.WriteString("\n")
		}

	case KindParagraph:
		p.handleParagraph(node, sb, depth)

	case KindHeading:
		sb.WriteString(strings.Repeat("#", node.Level()) + " ")
		p.walkChildren(node, sb, depth)
		sb.WriteString("\n")

	case KindQuote:
		var inner strings.Builder
		p.walkChildren(node, &inner, depth)
		for _, line := range strings.Split(inner.String(), "\n") {
			sb.WriteString("> " + line + "\n")
		}

	case KindText:
		p.handleText(node, sb)

	case KindList:
		p.handleList(node, sb, depth)

	// Loose list items; items inside a list are marked by handleList.
	case KindListItem:
		p.walkChildren(node, sb, depth)

	default:
		switch node.Type {
		case "table":
			p.handleTable(node, sb)
		case "link", "autolink":
			p.handleLink(node, sb)
		case "horizontalrule":
			sb.WriteString("---\n")
		case "linebreak":
			sb.WriteString("  \n")
		default:
			sb.WriteString(node.Text)
			p.walkChildren(node, sb, depth)
		}
	}
}

func (p *Parser) walkChildren(node *Node, sb *strings.Builder, depth int) {
	for _, child := range node.Children {
		p.walkNode(child, sb, depth)
	}
}

func (p *Parser) handleParagraph(node *Node, sb *strings.Builder, depth int) {
	align := node.Align()
	if align == "left" {
		align = ""
	}

	if align != "" {
		sb.WriteString(fmt.Sprintf("<div align=\"%s\">", align))
	}
	p.walkChildren(node, sb, depth)
	if align != "" {
		sb.WriteString("</div>")
	}
	sb.WriteString("\n")
}

func (p *Parser) handleText(node *Node, sb *strings.Builder) {
	openTag := node.Style().BuildAnnotatedOpenTag()
	if openTag != "" {
		sb.WriteString(openTag)
	}

	isBold := node.Format.Has(FormatBold)
	isItalic := node.Format.Has(FormatItalic)
	isUnderline := node.Format.Has(FormatUnderline)
	isCode := node.Format.Has(FormatCode)
	isStrike := node.Format.Has(FormatStrikethrough)

	// Code > Bold > Italic > Underline > Strike. Underline has no Markdown form.
	if isCode {
		sb.WriteString("`")
	}
	if isBold {
		sb.WriteString("**")
	}
	if isItalic {
		sb.WriteString("_")
	}
	if isUnderline {
		sb.WriteString("<u>")
	}
	if isStrike {
		sb.WriteString("~~")
	}

	sb.WriteString(node.Text)

	if isStrike {
		sb.WriteString("~~")
	}
	if isUnderline {
		sb.WriteString("</u>")
	}
	if isItalic {
		sb.WriteString("_")
	}
	if isBold {
		sb.WriteString("**")
	}
	if isCode {
		sb.WriteString("`")
	}

	if openTag != "" {
		sb.WriteString("</span>")
	}
}

func (p *Parser) handleLink(node *Node, sb *strings.Builder) {
	sb.WriteString("[")
	p.walkChildren(node, sb, 0)
	sb.WriteString(fmt.Sprintf("](%s)", extraString(node, "url")))
}

func (p *Parser) handleList(node *Node, sb *strings.Builder, depth int) {
	index := 1
	if start := extraInt(node, "start"); start > 0 {
		index = start
	}

	for _, child := range node.Children {
		if child.Kind != KindListItem {
			continue
		}

		sb.WriteString(strings.Repeat("  ", depth))

		switch node.ListType {
		case ListTypeNumber:
			sb.WriteString(fmt.Sprintf("%d. ", index))
			index++
		case ListTypeCheck:
			if extraBool(child, "checked") {
				sb.WriteString("- [x] ")
			} else {
				sb.WriteString("- [ ] ")
			}
		default:
			sb.WriteString("- ")
		}

		// Nested lists are children of the list item.
		for _, grandChild := range child.Children {
			if grandChild.Kind == KindList {
				sb.WriteString("\n")
				p.handleList(grandChild, sb, depth+1)
			} else {
				p.walkNode(grandChild, sb, depth)
			}
		}
		sb.WriteString("\n")
	}
	if depth == 0 {
		sb.WriteString("\n")
	}
}

func (p *Parser) handleTable(node *Node, sb *strings.Builder) {
	var rows [][]string
	maxCols := 0

	for _, row := range node.Children {
		if row.Type != "tablerow" {
			continue
		}

		var rowData []string
		for _, cell := range row.Children {
			var cellSb strings.Builder
			p.walkChildren(cell, &cellSb, 0)
			// Newlines break MD table rows
			rowData = append(rowData, strings.ReplaceAll(cellSb.String(), "\n", " "))
		}
		rows = append(rows, rowData)
		if len(rowData) > maxCols {
			maxCols = len(rowData)
		}
	}

	if len(rows) == 0 {
		return
	}

	writeRow := func(row []string) {
		sb.WriteString("|")
		for i := 0; i < maxCols; i++ {
			if i < len(row) {
				sb.WriteString(" " + row[i] + " |")
			} else {
				sb.WriteString("  |")
			}
		}
		sb.WriteString("\n")
	}

	writeRow(rows[0])
	sb.WriteString("|" + strings.Repeat("---|", maxCols) + "\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
	sb.WriteString("\n")
}

func extraString(n *Node, key string) string {
	var s string
	if raw, ok := n.Extra[key]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

func extraInt(n *Node, key string) int {
	var i int
	if raw, ok := n.Extra[key]; ok {
		_ = json.Unmarshal(raw, &i)
	}
	return i
}

func extraBool(n *Node, key string) bool {
	var b bool
	if raw, ok := n.Extra[key]; ok {
		_ = json.Unmarshal(raw, &b)
	}
	return b
}
