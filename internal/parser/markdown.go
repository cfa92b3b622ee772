package parser

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/plaintext/internal/component"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	b := markdownBuilder{src: src}
	return &Document{
		Title: strings.TrimSuffix(strings.TrimSuffix(filename, ".md"), ".markdown"),
		Root:  component.Text("", joinBlocks("\n\n", b.blocks(doc))...),
	}, nil
}

// markdownBuilder maps a goldmark AST onto components. Headings and strong
// emphasis become bold, emphasis italic, links click and hover events.
type markdownBuilder struct {
	src []byte
}

func (b *markdownBuilder) blocks(parent ast.Node) []component.Component {
	var out []component.Component
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, b.block(n))
	}
	return out
}

func (b *markdownBuilder) block(n ast.Node) component.Component {
	switch node := n.(type) {
	case *ast.Heading:
		return component.Decorate(component.Text("", b.inlines(node)...), component.Bold)

	case *ast.Paragraph, *ast.TextBlock:
		return component.Text("", b.inlines(node)...)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return component.Text(strings.TrimRight(b.lines(node), "\n"))

	case *ast.List:
		items := b.blocks(node)
		for i, item := range items {
			marker := "- "
			if node.IsOrdered() {
				marker = strconv.Itoa(node.Start+i) + ". "
			}
			items[i] = component.Text(marker, item)
		}
		return component.Text("", joinBlocks("\n", items)...)

	case *ast.ListItem:
		return component.Text("", joinBlocks("\n", b.blocks(node))...)

	case *ast.Blockquote:
		return component.Text("", joinBlocks("\n\n", b.blocks(node))...)

	case *ast.ThematicBreak, *ast.HTMLBlock:
		return nil

	default:
		if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
			return component.Text(strings.TrimSpace(b.lines(n)))
		}
		return component.Text("", b.inlines(n)...)
	}
}

func (b *markdownBuilder) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(b.src))
	}
	return buf.String()
}

func (b *markdownBuilder) inlines(parent ast.Node) []component.Component {
	var out []component.Component
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if c := b.inline(n); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (b *markdownBuilder) inline(n ast.Node) component.Component {
	switch node := n.(type) {
	case *ast.Text:
		content := string(node.Segment.Value(b.src))
		if node.HardLineBreak() || node.SoftLineBreak() {
			content += "\n"
		}
		return component.Text(content)

	case *ast.String:
		return component.Text(string(node.Value))

	case *ast.Emphasis:
		d := component.Italic
		if node.Level >= 2 {
			d = component.Bold
		}
		return component.Decorate(component.Text("", b.inlines(node)...), d)

	case *ast.Link:
		style := component.Style{
			Click: &component.ClickEvent{Action: component.OpenURL, Value: string(node.Destination)},
		}
		if len(node.Title) > 0 {
			style.Hover = &component.HoverEvent{Action: component.ShowText, Value: component.Text(string(node.Title))}
		}
		return component.WithStyle(component.Text("", b.inlines(node)...), style)

	case *ast.AutoLink:
		return component.WithStyle(component.Text(string(node.Label(b.src))), component.Style{
			Click: &component.ClickEvent{Action: component.OpenURL, Value: string(node.URL(b.src))},
		})

	case *ast.RawHTML:
		return nil

	default:
		// Code spans, images (alt text) and other containers keep their
		// inline children.
		return component.Text("", b.inlines(n)...)
	}
}
