package lexical

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML renders a document as an HTML fragment for the published page.
// A nil document yields "".
func RenderHTML(doc *Document) string {
	return RenderStructural(doc).HTML()
}

// HTML renders the display tree as an HTML fragment. The root itself emits no
// element, only its children.
func (r *RenderNode) HTML() string {
	if r == nil {
		return ""
	}
	var nodes []*html.Node
	if r.Kind == RenderRoot {
		for _, child := range r.Children {
			nodes = append(nodes, child.htmlNodes()...)
		}
	} else {
		nodes = r.htmlNodes()
	}

	var sb strings.Builder
	for _, n := range nodes {
		if err := html.Render(&sb, n); err != nil {
			return sb.String()
		}
	}
	return sb.String()
}

func (r *RenderNode) htmlNodes() []*html.Node {
	switch r.Kind {
	case RenderSpan:
		out := []*html.Node{r.spanNode()}
		for _, child := range r.Children {
			out = append(out, child.htmlNodes()...)
		}
		return out
	case RenderRoot:
		var out []*html.Node
		for _, child := range r.Children {
			out = append(out, child.htmlNodes()...)
		}
		return out
	}

	el := element(r.Tag())
	if r.Align != "" && r.Align != "left" {
		el.Attr = append(el.Attr, html.Attribute{Key: "style", Val: "text-align: " + r.Align})
	}
	if r.Kind == RenderContainer && r.SourceType != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "data-type", Val: r.SourceType})
	}
	for _, child := range r.Children {
		for _, n := range child.htmlNodes() {
			el.AppendChild(n)
		}
	}
	return []*html.Node{el}
}

// spanNode wraps the text innermost-first so bold+italic renders as
// <strong><em>text</em></strong>.
func (r *RenderNode) spanNode() *html.Node {
	n := &html.Node{Type: html.TextNode, Data: r.Text}
	wrap := func(tag string) {
		el := element(tag)
		el.AppendChild(n)
		n = el
	}
	if r.Code {
		wrap("code")
	}
	if r.Strikethrough {
		wrap("s")
	}
	if r.Underline {
		wrap("u")
	}
	if r.Italic {
		wrap("em")
	}
	if r.Bold {
		wrap("strong")
	}
	if css := r.Style.CSS(); css != "" {
		el := element("span")
		el.Attr = []html.Attribute{{Key: "style", Val: css}}
		el.AppendChild(n)
		n = el
	}
	return n
}

func element(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}
