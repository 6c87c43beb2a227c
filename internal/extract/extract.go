package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText removes markup from content and returns the remaining text.
// Tags and their names are dropped, entities are decoded, and the bodies of
// non-visible elements (script, style, template) are skipped. Text the
// parser hoists into <head>, such as a leading <title>, is kept. Block-level
// elements are separated by newlines so words on either side of a paragraph
// break never merge into one.
func PlainText(content string) string {
	if !strings.ContainsAny(content, "<&") {
		return content
	}
	node, err := html.Parse(strings.NewReader(content))
	if err != nil || node == nil {
		return content
	}
	var b strings.Builder
	collectText(&b, node)
	return b.String()
}

func collectText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		if skipElement(n.Data) {
			return
		}
		if isBlock(n.Data) {
			b.WriteString("\n")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}

	if n.Type == html.ElementNode && isBlock(n.Data) {
		b.WriteString("\n")
	}
}

func skipElement(name string) bool {
	switch strings.ToLower(name) {
	case "script", "style", "noscript", "template":
		return true
	}
	return false
}

func isBlock(name string) bool {
	switch strings.ToLower(name) {
	case "title", "p", "div", "br", "hr", "li", "ul", "ol", "dl", "dt", "dd",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"pre", "blockquote", "table", "tr", "td", "th",
		"section", "article", "main", "header", "footer", "nav", "aside",
		"figure", "figcaption":
		return true
	}
	return false
}
