package lexical

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedDocument marks a document that breaks the tree invariants.
var ErrMalformedDocument = errors.New("malformed document")

// Violation is one broken invariant, located by a path such as
// "root.children[1].children[0]".
type Violation struct {
	Path   string
	Reason string
}

// MalformedDocumentError lists every violation found in a tree.
type MalformedDocumentError struct {
	Violations []Violation
}

func (e *MalformedDocumentError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Path + ": " + v.Reason
	}
	return fmt.Sprintf("%s: %s", ErrMalformedDocument, strings.Join(parts, "; "))
}

func (e *MalformedDocumentError) Unwrap() error {
	return ErrMalformedDocument
}

// Validate checks the structural invariants of a tree:
//   - the top node is the only root
//   - text nodes are leaves
//   - list items are direct children of lists
//   - every node has a type
//
// Empty containers are legal. It returns nil or a *MalformedDocumentError.
func Validate(root *Node) error {
	if root == nil {
		return &MalformedDocumentError{Violations: []Violation{{Path: "root", Reason: "document has no root"}}}
	}

	var violations []Violation
	if root.Type != TypeRoot {
		violations = append(violations, Violation{
			Path:   "root",
			Reason: fmt.Sprintf("top node has type %q, want %q", root.Type, TypeRoot),
		})
	}

	var walk func(n *Node, parent *Node, path string)
	walk = func(n *Node, parent *Node, path string) {
		if n == nil {
			violations = append(violations, Violation{Path: path, Reason: "nil node"})
			return
		}
		if parent != nil {
			if n.Type == "" {
				violations = append(violations, Violation{Path: path, Reason: "node has no type"})
			}
			if n.Kind == KindRoot {
				violations = append(violations, Violation{Path: path, Reason: "root nested inside the tree"})
			}
			if n.Kind == KindListItem && parent.Kind != KindList {
				violations = append(violations, Violation{
					Path:   path,
					Reason: fmt.Sprintf("listitem inside %s, want list", parent.Type),
				})
			}
		}
		if n.Kind == KindText && len(n.Children) > 0 {
			violations = append(violations, Violation{Path: path, Reason: "text node has children"})
		}
		for i, child := range n.Children {
			walk(child, n, fmt.Sprintf("%s.children[%d]", path, i))
		}
	}
	walk(root, nil, "root")

	if len(violations) == 0 {
		return nil
	}
	return &MalformedDocumentError{Violations: violations}
}
