package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/plaintext/internal/serializer/plain"
)

// TextParser handles plain text files. The whole file becomes a single
// text node, so flattening it returns the input unchanged.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Document{
		Title: strings.TrimSuffix(filename, ".txt"),
		Root:  plain.Default.Deserialize(string(data)),
	}, nil
}
