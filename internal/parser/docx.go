package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/plaintext/internal/component"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Every non-empty paragraph becomes a
// block holding one text node per run; heading paragraphs are bold.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*Document, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "plaintext-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var blocks []component.Component
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		runs := docxRuns(para)
		if len(runs) == 0 {
			continue
		}
		block := component.Component(component.Text("", runs...))
		if docxIsHeading(para) {
			block = component.Decorate(block, component.Bold)
		}
		blocks = append(blocks, block)
	}

	return &Document{
		Title: strings.TrimSuffix(filename, ".docx"),
		Root:  component.Text("", joinBlocks("\n\n", blocks)...),
	}, nil
}

func docxIsHeading(para *docx.Paragraph) bool {
	if para.Properties == nil || para.Properties.Style == nil {
		return false
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	return strings.HasPrefix(style, "heading") || style == "title"
}

// docxRuns returns one text node per run; paragraphs with only
// whitespace yield nothing.
func docxRuns(para *docx.Paragraph) []component.Component {
	var runs []component.Component
	blank := true
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var buf strings.Builder
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
		if buf.Len() == 0 {
			continue
		}
		if strings.TrimSpace(buf.String()) != "" {
			blank = false
		}
		runs = append(runs, component.Text(buf.String()))
	}
	if blank {
		return nil
	}
	return runs
}
