package lexical

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the closed set of node kinds the editor model understands.
// Anything else decodes as KindUnknown and keeps its wire type.
type Kind int

const (
	KindUnknown Kind = iota
	KindRoot
	KindText
	KindParagraph
	KindHeading
	KindQuote
	KindList
	KindListItem
)

var kindNames = map[Kind]string{
	KindUnknown:   "unknown",
	KindRoot:      TypeRoot,
	KindText:      TypeText,
	KindParagraph: TypeParagraph,
	KindHeading:   TypeHeading,
	KindQuote:     TypeQuote,
	KindList:      TypeList,
	KindListItem:  TypeListItem,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// KindOf maps a wire type name to its Kind.
func KindOf(typ string) Kind {
	switch typ {
	case TypeRoot:
		return KindRoot
	case TypeText:
		return KindText
	case TypeParagraph:
		return KindParagraph
	case TypeHeading:
		return KindHeading
	case TypeQuote:
		return KindQuote
	case TypeList:
		return KindList
	case TypeListItem:
		return KindListItem
	default:
		return KindUnknown
	}
}

const defaultHeadingLevel = 2

// Node is a node of the in-memory document tree.
//
// Tag and ListType hold the wire strings ("h1", "number"); use Level and
// Ordered for their meaning. Extra carries keys the model does not own so the
// node serializes back to what it was decoded from.
type Node struct {
	Kind     Kind
	Type     string
	Children []*Node

	Text   string
	Format Format

	Tag      string
	ListType string

	Extra map[string]json.RawMessage

	// Wire keys that were absent in the decoded source.
	noType     bool
	noChildren bool
	noText     bool
	noFormat   bool

	// Top-level editor-state keys, only set on a decoded root.
	docExtra map[string]json.RawMessage
}

// Level is the heading level; a heading with a missing or unreadable tag is h2.
func (n *Node) Level() int {
	if n == nil || n.Kind != KindHeading {
		return 0
	}
	if lvl, ok := parseHeadingTag(n.Tag); ok {
		return lvl
	}
	return defaultHeadingLevel
}

// Ordered reports whether a list is numbered.
func (n *Node) Ordered() bool {
	return n != nil && n.Kind == KindList && n.ListType == ListTypeNumber
}

// IsLeaf reports whether the node is a text leaf.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Kind == KindText
}

// Style returns the inline CSS of a text node, if any.
func (n *Node) Style() StyleMap {
	if n == nil {
		return StyleMap{}
	}
	var s string
	if raw, ok := n.Extra["style"]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return ParseStyle(s)
}

// Align returns the block alignment the editor stores in a block's format.
// Values outside the editor's alignment set read as "".
func (n *Node) Align() string {
	if n == nil || n.Kind == KindText {
		return ""
	}
	var s string
	if raw, ok := n.Extra[keyFormat]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	switch s {
	case "left", "center", "right", "justify", "start", "end":
		return s
	}
	return ""
}

// Append adds children in order and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Clone returns a deep copy of the subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	if n.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(n.Extra))
		for k, v := range n.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	c.docExtra = cloneExtra(n.docExtra)
	return &c
}

func NewRoot(children ...*Node) *Node {
	return &Node{Kind: KindRoot, Type: TypeRoot, Children: nonNil(children)}
}

func NewText(text string, format Format) *Node {
	return &Node{Kind: KindText, Type: TypeText, Text: text, Format: format, noChildren: true}
}

func NewParagraph(children ...*Node) *Node {
	return &Node{Kind: KindParagraph, Type: TypeParagraph, Children: nonNil(children)}
}

// NewHeading builds a heading; levels outside 1..6 fall back to h2.
func NewHeading(level int, children ...*Node) *Node {
	if level < 1 || level > 6 {
		level = defaultHeadingLevel
	}
	return &Node{
		Kind:     KindHeading,
		Type:     TypeHeading,
		Tag:      fmt.Sprintf("h%d", level),
		Children: nonNil(children),
	}
}

func NewQuote(children ...*Node) *Node {
	return &Node{Kind: KindQuote, Type: TypeQuote, Children: nonNil(children)}
}

func NewList(ordered bool, items ...*Node) *Node {
	listType := ListTypeBullet
	if ordered {
		listType = ListTypeNumber
	}
	return &Node{Kind: KindList, Type: TypeList, ListType: listType, Children: nonNil(items)}
}

func NewListItem(children ...*Node) *Node {
	return &Node{Kind: KindListItem, Type: TypeListItem, Children: nonNil(children)}
}

// NewEmptyTree is the canonical blank post: a root holding one empty paragraph.
func NewEmptyTree() *Node {
	return NewRoot(NewParagraph())
}

// EmptyDocument is the serialized form of NewEmptyTree.
func EmptyDocument() *Document {
	return Serialize(NewEmptyTree())
}

// Equal reports structural equality: same kinds in the same order with the
// same payloads. Keys carried in Extra are not compared.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || len(a.Children) != len(b.Children) {
		return false
	}
	switch a.Kind {
	case KindText:
		if a.Text != b.Text || a.Format != b.Format {
			return false
		}
	case KindHeading:
		if a.Level() != b.Level() {
			return false
		}
	case KindList:
		if a.Ordered() != b.Ordered() {
			return false
		}
	case KindUnknown:
		if a.Type != b.Type || a.Text != b.Text {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func parseHeadingTag(tag string) (int, bool) {
	if !strings.HasPrefix(tag, "h") || len(tag) != 2 {
		return 0, false
	}
	lvl, err := strconv.Atoi(tag[1:])
	if err != nil || lvl < 1 || lvl > 6 {
		return 0, false
	}
	return lvl, true
}

func nonNil(children []*Node) []*Node {
	if children == nil {
		return []*Node{}
	}
	return children
}
