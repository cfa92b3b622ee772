package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/plaintext/internal/component"
)

// CSVParser handles CSV files. Each data row becomes one text node of
// "header: value" pairs; rows are separated by newlines.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &Document{
		Title: strings.TrimSuffix(filename, ".csv"),
		Root:  component.Text(""),
	}
	if len(records) == 0 {
		return doc, nil
	}

	// First row is headers.
	headers := records[0]

	rows := make([]component.Component, 0, len(records)-1)
	for _, row := range records[1:] {
		var text strings.Builder
		for j, cell := range row {
			if j < len(headers) {
				text.WriteString(headers[j] + ": " + cell)
			} else {
				text.WriteString(cell)
			}
			if j < len(row)-1 {
				text.WriteString(", ")
			}
		}
		rows = append(rows, component.Text(text.String()))
	}

	doc.Root = component.Text("", joinBlocks("\n", rows)...)
	return doc, nil
}
