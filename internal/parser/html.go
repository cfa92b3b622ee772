package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/plaintext/internal/component"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Elements carrying a data-i18n attribute
// become translatable components keyed by the attribute value; their own
// content is the untranslated fallback and is dropped.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSuffix(strings.TrimSuffix(filename, ".html"), ".htm")

	// Extract title from <title> tag if present.
	if t := findTitle(doc); t != "" {
		title = t
	}

	// Find <body> or use whole document.
	root := findBody(doc)
	if root == nil {
		root = doc
	}

	var b htmlBuilder
	return &Document{
		Title: title,
		Root:  component.Text("", b.children(root)...),
	}, nil
}

// htmlBuilder tracks the separator owed between block elements. Breaks are
// only emitted once text follows, so the output never starts or ends with
// one.
type htmlBuilder struct {
	pendingBreak string
	wrote        bool
}

func (b *htmlBuilder) breakWith(sep string) {
	if strings.Count(sep, "\n") > strings.Count(b.pendingBreak, "\n") || b.pendingBreak == "" {
		b.pendingBreak = sep
	}
}

// flush returns the separator owed before the next piece of text, if any.
func (b *htmlBuilder) flush() []component.Component {
	var out []component.Component
	if b.wrote && b.pendingBreak != "" {
		out = append(out, component.Text(b.pendingBreak))
	}
	b.pendingBreak = ""
	b.wrote = true
	return out
}

func (b *htmlBuilder) children(n *html.Node) []component.Component {
	var out []component.Component
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, b.node(c)...)
	}
	return out
}

func (b *htmlBuilder) node(n *html.Node) []component.Component {
	switch n.Type {
	case html.TextNode:
		text := collapseSpace(n.Data)
		if b.pendingBreak != "" || !b.wrote {
			text = strings.TrimLeft(text, " ")
		}
		if text == "" {
			return nil
		}
		return append(b.flush(), component.Text(text))

	case html.ElementNode:
		return b.element(n)
	}
	return b.children(n)
}

func (b *htmlBuilder) element(n *html.Node) []component.Component {
	switch n.Data {
	case "script", "style", "head", "noscript", "template":
		return nil
	case "br":
		b.breakWith("\n")
		return nil
	}

	sep := blockSeparator(n.Data)
	if sep != "" {
		b.breakWith(sep)
	}

	var out []component.Component
	if key := attr(n, "data-i18n"); key != "" {
		out = append(b.flush(), component.WithStyle(component.Translatable(key), elementStyle(n)))
	} else if children := b.children(n); len(children) > 0 {
		style := elementStyle(n)
		if style.IsEmpty() && len(children) == 1 {
			out = children
		} else {
			out = []component.Component{component.WithStyle(component.Text("", children...), style)}
		}
	}

	if sep != "" {
		b.breakWith(sep)
	}
	return out
}

func blockSeparator(tag string) string {
	switch tag {
	case "p", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre",
		"section", "article", "aside", "main", "table", "ul", "ol", "dl", "figure", "hr":
		return "\n\n"
	case "div", "li", "tr", "dt", "dd", "figcaption", "caption":
		return "\n"
	case "td", "th":
		return " "
	}
	return ""
}

func elementStyle(n *html.Node) component.Style {
	var style component.Style
	switch n.Data {
	case "b", "strong", "h1", "h2", "h3", "h4", "h5", "h6":
		style.Decorations = style.Decorations.With(component.Bold)
	case "i", "em", "cite":
		style.Decorations = style.Decorations.With(component.Italic)
	case "u", "ins":
		style.Decorations = style.Decorations.With(component.Underlined)
	case "s", "del", "strike":
		style.Decorations = style.Decorations.With(component.Strikethrough)
	case "a":
		if href := attr(n, "href"); href != "" {
			style.Click = &component.ClickEvent{Action: component.OpenURL, Value: href}
		}
	case "font":
		style.Color = attr(n, "color")
	}
	if title := attr(n, "title"); title != "" {
		style.Hover = &component.HoverEvent{Action: component.ShowText, Value: component.Text(title)}
	}
	return style
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collapseSpace replaces each run of HTML whitespace with a single space.
func collapseSpace(s string) string {
	var buf strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				buf.WriteByte(' ')
			}
			space = true
		default:
			buf.WriteRune(r)
			space = false
		}
	}
	return buf.String()
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
