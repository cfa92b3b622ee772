// Package plain flattens component trees into plain text. Colors,
// decorations, click and hover events are discarded; only literal and
// resolved text is kept, in pre-order.
package plain

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/plaintext/internal/component"
)

// ErrUnsupportedVariant is returned when the traversal reaches a component
// type that has no text contribution rule.
var ErrUnsupportedVariant = errors.New("plain: unsupported component variant")

// TranslationResolver maps a translatable node to its display text. It is
// called once per translatable node, in traversal order. An error aborts
// the serialization and is returned to the caller unchanged.
type TranslationResolver func(*component.TranslatableComponent) (string, error)

func emptyResolver(*component.TranslatableComponent) (string, error) {
	return "", nil
}

// Serializer converts components to and from plain text. It holds no
// mutable state and may be shared between goroutines as long as its
// resolver may be.
type Serializer struct {
	translatable TranslationResolver
}

// Default renders every translatable node as the empty string.
var Default = NewDefault()

// New creates a Serializer that resolves translatable nodes with resolver.
// A nil resolver behaves like the one used by NewDefault.
func New(resolver TranslationResolver) *Serializer {
	if resolver == nil {
		resolver = emptyResolver
	}
	return &Serializer{translatable: resolver}
}

// NewDefault creates a Serializer that renders translatable nodes as the
// empty string.
func NewDefault() *Serializer {
	return New(emptyResolver)
}

// Serialize returns the plain text of the tree rooted at root. On error no
// partial output is returned.
func (s *Serializer) Serialize(root component.Component) (string, error) {
	var b strings.Builder
	if _, err := s.Write(&b, root); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write writes the plain text of the tree rooted at root to w and returns
// the number of bytes written. Output already written before an error is
// left in w.
func (s *Serializer) Write(w io.StringWriter, root component.Component) (int, error) {
	var nTotal int
	err := component.Walk(root, func(n component.Component) error {
		text, err := s.ownText(n)
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}
		nPart, err := w.WriteString(text)
		nTotal += nPart
		return err
	})
	return nTotal, err
}

// ownText returns the text a node contributes before its children.
func (s *Serializer) ownText(n component.Component) (string, error) {
	switch c := n.(type) {
	case *component.TextComponent:
		return c.Content(), nil
	case *component.TranslatableComponent:
		return s.translatable(c)
	case *component.KeybindComponent, *component.ScoreComponent, *component.SelectorComponent:
		return "", nil
	default:
		return "", fmt.Errorf("%w: don't know how to turn %T into a string", ErrUnsupportedVariant, n)
	}
}

// Deserialize wraps input in a single text node without children. It is
// not the inverse of Serialize for any tree with more than one node.
func (s *Serializer) Deserialize(input string) *component.TextComponent {
	return component.Text(input)
}
