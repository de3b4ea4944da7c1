package lexical

import (
	"encoding/json"
	"math"
)

// Serialize converts a tree to its wire form. It never fails; a nil tree
// serializes as the canonical empty document.
func Serialize(root *Node) *Document {
	if root == nil {
		root = NewEmptyTree()
	}
	return &Document{
		Root:  serializeNode(root),
		Extra: cloneExtra(root.docExtra),
	}
}

// Deserialize converts a wire document to a tree.
//
// Decoding is permissive: missing children are empty, a missing or invalid
// text format is 0, unknown node types become KindUnknown containers that keep
// their children, and the top node is treated as the root whatever its type.
// Structural problems are left in place for Validate to report; the error
// result is reserved for callers that want strict decoding, see
// DeserializeStrict.
func Deserialize(doc *Document) (*Node, error) {
	if doc == nil {
		return NewEmptyTree(), nil
	}
	root := decodeNode(&doc.Root)
	root.Kind = KindRoot
	root.docExtra = cloneExtra(doc.Extra)
	return root, nil
}

// DeserializeStrict is Deserialize followed by Validate. A structurally
// invalid document yields a *MalformedDocumentError wrapping
// ErrMalformedDocument.
func DeserializeStrict(doc *Document) (*Node, error) {
	root, err := Deserialize(doc)
	if err != nil {
		return nil, err
	}
	if err := Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}

// ParseTree decodes wire JSON straight into a tree.
func ParseTree(data []byte) (*Node, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return Deserialize(doc)
}

func serializeNode(n *Node) SerializedNode {
	sn := SerializedNode{
		Type:   n.Type,
		Extra:  cloneExtra(n.Extra),
		noType: n.noType && n.Type == "",
	}
	if _, rawType := sn.Extra[keyType]; sn.Type == "" && !rawType && !n.noType && n.Kind != KindUnknown {
		sn.Type = n.Kind.String()
	}

	switch n.Kind {
	case KindText:
		if n.Text != "" || !n.noText {
			text := n.Text
			sn.Text = &text
		}
		_, rawFormat := sn.Extra[keyFormat]
		switch {
		case n.Format != 0:
			sn.Format = float64(n.Format)
		case rawFormat:
			// Unreadable source format stays verbatim in Extra.
		case !n.noFormat:
			sn.Format = 0
		}
	case KindHeading:
		if n.Tag != "" {
			tag := n.Tag
			sn.Tag = &tag
		}
	case KindList:
		if n.ListType != "" {
			listType := n.ListType
			sn.ListType = &listType
		}
	case KindUnknown:
		if n.Text != "" || !n.noText {
			text := n.Text
			sn.Text = &text
		}
	}

	if len(n.Children) > 0 || !n.noChildren {
		sn.Children = make([]SerializedNode, len(n.Children))
		for i, child := range n.Children {
			sn.Children[i] = serializeNode(child)
		}
	}
	return sn
}

func decodeNode(sn *SerializedNode) *Node {
	n := &Node{
		Kind:       KindOf(sn.Type),
		Type:       sn.Type,
		Extra:      cloneExtra(sn.Extra),
		noType:     sn.noType,
		noChildren: sn.Children == nil,
		noText:     true,
		noFormat:   true,
	}

	// Fields a kind does not own go back to Extra untouched.
	text, tag, listType, format := true, true, true, true
	switch n.Kind {
	case KindText:
		if sn.Text != nil {
			n.Text, n.noText = *sn.Text, false
		}
		text = false
		format = false
		if sn.Format != nil {
			n.noFormat = false
			if f, ok := formatBits(sn.Format); ok {
				n.Format = f
			} else {
				n.setExtra(keyFormat, sn.Format)
			}
		}
	case KindHeading:
		if sn.Tag != nil {
			n.Tag = *sn.Tag
		}
		tag = false
	case KindList:
		if sn.ListType != nil {
			n.ListType = *sn.ListType
		}
		listType = false
	case KindUnknown:
		if sn.Text != nil {
			n.Text, n.noText = *sn.Text, false
		}
		text = false
	}
	if text && sn.Text != nil {
		n.setExtra(keyText, *sn.Text)
	}
	if tag && sn.Tag != nil {
		n.setExtra(keyTag, *sn.Tag)
	}
	if listType && sn.ListType != nil {
		n.setExtra(keyListType, *sn.ListType)
	}
	if format && sn.Format != nil {
		n.setExtra(keyFormat, sn.Format)
	}

	n.Children = make([]*Node, 0, len(sn.Children))
	for i := range sn.Children {
		n.Children = append(n.Children, decodeNode(&sn.Children[i]))
	}
	return n
}

// formatBits reads a text format bitmask. Values come from encoding/json
// (float64, json.Number) or from code building a SerializedNode by hand.
func formatBits(v interface{}) (Format, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case Format:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		return 0, false
	}
	return Format(int(f)), true
}

func (n *Node) setExtra(key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if n.Extra == nil {
		n.Extra = make(map[string]json.RawMessage)
	}
	n.Extra[key] = raw
}

func cloneExtra(extra map[string]json.RawMessage) map[string]json.RawMessage {
	if extra == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(extra))
	for k, v := range extra {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}
