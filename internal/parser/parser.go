package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/plaintext/internal/component"
)

// Document is a parsed file: a title and the component tree of its body.
type Document struct {
	Title string
	Root  component.Component
}

// Parser converts raw document bytes into a component tree.
type Parser interface {
	Parse(r io.Reader, filename string) (*Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Format returns the lower-cased extension of filename without the dot.
func Format(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// Options tunes parsers returned by ForFile.
type Options struct {
	PDFFallbackPdftotext bool
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// joinBlocks returns blocks with a text node holding sep between each
// consecutive pair. Nil blocks are dropped.
func joinBlocks(sep string, blocks []component.Component) []component.Component {
	out := make([]component.Component, 0, 2*len(blocks))
	for _, b := range blocks {
		if b == nil {
			continue
		}
		if len(out) > 0 {
			out = append(out, component.Text(sep))
		}
		out = append(out, b)
	}
	return out
}
