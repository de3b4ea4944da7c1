package main

import (
	"regexp"
	"strings"

	"smart-blog-be/pkg/lexical"
)

var numberedItem = regexp.MustCompile(`^\d+\.\s+`)

// appendLine adds one typed line to the document. Consecutive list lines of
// the same kind extend the previous list. Blank lines are skipped.
func appendLine(root *lexical.Node, line string) bool {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return false
	}
	dropBlankStart(root)

	switch {
	case strings.HasPrefix(line, "### "):
		root.Append(lexical.NewHeading(3, text(line[4:])))
	case strings.HasPrefix(line, "## "):
		root.Append(lexical.NewHeading(2, text(line[3:])))
	case strings.HasPrefix(line, "# "):
		root.Append(lexical.NewHeading(1, text(line[2:])))
	case strings.HasPrefix(line, "> "):
		root.Append(lexical.NewQuote(text(line[2:])))
	case strings.HasPrefix(line, "- "):
		appendListItem(root, false, line[2:])
	case numberedItem.MatchString(line):
		appendListItem(root, true, numberedItem.ReplaceAllString(line, ""))
	default:
		root.Append(lexical.NewParagraph(text(line)))
	}
	return true
}

func appendListItem(root *lexical.Node, ordered bool, body string) {
	item := lexical.NewListItem(text(body))
	if n := len(root.Children); n > 0 {
		last := root.Children[n-1]
		if last.Kind == lexical.KindList && last.Ordered() == ordered {
			last.Append(item)
			return
		}
	}
	root.Append(lexical.NewList(ordered, item))
}

// dropBlankStart removes the placeholder paragraph of a fresh post so the
// first typed line becomes the first block.
func dropBlankStart(root *lexical.Node) {
	if len(root.Children) != 1 {
		return
	}
	only := root.Children[0]
	if only.Kind == lexical.KindParagraph && len(only.Children) == 0 {
		root.Children = nil
	}
}

func text(s string) *lexical.Node {
	return lexical.NewText(s, 0)
}
