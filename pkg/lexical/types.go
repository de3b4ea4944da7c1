package lexical

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is the wire form of an editor state as produced by the Lexical
// editor: {"root": {...}}. It is what the backend stores in content_json.
type Document struct {
	Root  SerializedNode
	Extra map[string]json.RawMessage
}

// SerializedNode is one node of the wire tree.
// Keys the model does not interpret are kept in Extra so that a
// decode/encode cycle reproduces the input.
type SerializedNode struct {
	Type string `json:"type"`

	// nil means the key was absent; an empty non-nil slice is "children": [].
	Children []SerializedNode `json:"children,omitempty"`

	Text     *string     `json:"text,omitempty"`
	Format   interface{} `json:"format,omitempty"` // int bitmask on text, alignment string on blocks
	Tag      *string     `json:"tag,omitempty"`
	ListType *string     `json:"listType,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`

	// Set when the decoded source had no "type" key.
	noType bool
}

// Keys owned by SerializedNode; everything else lands in Extra.
const (
	keyType     = "type"
	keyChildren = "children"
	keyText     = "text"
	keyFormat   = "format"
	keyTag      = "tag"
	keyListType = "listType"
	keyRoot     = "root"
)

// Constants for Text Format Bitmask
type Format int

const (
	FormatBold Format = 1 << iota
	FormatItalic
	FormatStrikethrough
	FormatUnderline
	FormatCode
	FormatSubscript
	FormatSuperscript
	FormatHighlight
)

// Has reports whether every bit of flag is set.
func (f Format) Has(flag Format) bool {
	return f&flag == flag
}

// Wire type names.
const (
	TypeRoot      = "root"
	TypeText      = "text"
	TypeParagraph = "paragraph"
	TypeHeading   = "heading"
	TypeQuote     = "quote"
	TypeList      = "list"
	TypeListItem  = "listitem"
)

// List types used by the editor's list plugin.
const (
	ListTypeNumber = "number"
	ListTypeBullet = "bullet"
	ListTypeCheck  = "check"
)

func (n *SerializedNode) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = SerializedNode{}
	if raw == nil {
		return nil
	}
	_, hasType := raw[keyType]
	n.noType = !hasType

	for key, value := range raw {
		var err error
		switch {
		case isOwnedKey(key) && isNull(value):
			// An explicit null on an owned key is kept as written.
			if n.Extra == nil {
				n.Extra = make(map[string]json.RawMessage)
			}
			n.Extra[key] = append(json.RawMessage(nil), value...)
		case key == keyType:
			err = json.Unmarshal(value, &n.Type)
		case key == keyChildren:
			n.Children = []SerializedNode{}
			err = json.Unmarshal(value, &n.Children)
		case key == keyText:
			var s string
			if err = json.Unmarshal(value, &s); err == nil {
				n.Text = &s
			}
		case key == keyFormat:
			err = json.Unmarshal(value, &n.Format)
		case key == keyTag:
			var s string
			if err = json.Unmarshal(value, &s); err == nil {
				n.Tag = &s
			}
		case key == keyListType:
			var s string
			if err = json.Unmarshal(value, &s); err == nil {
				n.ListType = &s
			}
		default:
			if n.Extra == nil {
				n.Extra = make(map[string]json.RawMessage)
			}
			n.Extra[key] = append(json.RawMessage(nil), value...)
		}

		// A well-formed JSON value of the wrong shape for an owned key is
		// kept verbatim instead of failing the whole document.
		if err != nil {
			if _, ok := err.(*json.UnmarshalTypeError); !ok {
				return err
			}
			if key == keyChildren {
				n.Children = nil
			}
			if n.Extra == nil {
				n.Extra = make(map[string]json.RawMessage)
			}
			n.Extra[key] = append(json.RawMessage(nil), value...)
		}
	}
	return nil
}

func (n SerializedNode) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(n.Extra)+6)
	for k, v := range n.Extra {
		out[k] = v
	}
	if _, ok := out[keyType]; n.Type != "" || (!ok && !n.noType) {
		out[keyType] = n.Type
	}
	if n.Children != nil {
		out[keyChildren] = n.Children
	}
	if n.Text != nil {
		out[keyText] = *n.Text
	}
	if n.Format != nil {
		out[keyFormat] = n.Format
	}
	if n.Tag != nil {
		out[keyTag] = *n.Tag
	}
	if n.ListType != nil {
		out[keyListType] = *n.ListType
	}
	return json.Marshal(out)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("lexical: document must be an object")
	}

	*d = Document{}
	rootRaw, ok := raw[keyRoot]
	if !ok {
		// Bare root node without the editor-state wrapper.
		var node SerializedNode
		if err := json.Unmarshal(data, &node); err != nil {
			return err
		}
		if node.Type != TypeRoot {
			return fmt.Errorf("lexical: missing %q", keyRoot)
		}
		d.Root = node
		return nil
	}

	if err := json.Unmarshal(rootRaw, &d.Root); err != nil {
		return fmt.Errorf("lexical: root: %w", err)
	}
	for k, v := range raw {
		if k == keyRoot {
			continue
		}
		if d.Extra == nil {
			d.Extra = make(map[string]json.RawMessage)
		}
		d.Extra[k] = append(json.RawMessage(nil), v...)
	}
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Extra)+1)
	for k, v := range d.Extra {
		out[k] = v
	}
	out[keyRoot] = d.Root
	return json.Marshal(out)
}

// ParseDocument decodes the wire JSON of an editor state.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse lexical json: %w", err)
	}
	return &doc, nil
}

// Bytes encodes the document. Encoding a Document cannot fail for values
// produced by ParseDocument or Serialize.
func (d *Document) Bytes() []byte {
	if d == nil {
		return nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil
	}
	return b
}

func isOwnedKey(key string) bool {
	switch key {
	case keyType, keyChildren, keyText, keyFormat, keyTag, keyListType:
		return true
	}
	return false
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
