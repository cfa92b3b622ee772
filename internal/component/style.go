package component

// Decoration is a single text decoration flag.
type Decoration uint8

const (
	Bold Decoration = 1 << iota
	Italic
	Underlined
	Strikethrough
	Obfuscated
)

// Decorations is a set of Decoration flags.
type Decorations uint8

// Has reports whether d is set.
func (s Decorations) Has(d Decoration) bool { return s&Decorations(d) != 0 }

// With returns the set with d added.
func (s Decorations) With(d Decoration) Decorations { return s | Decorations(d) }

// ClickAction is what a client does when the text is clicked.
type ClickAction string

const (
	OpenURL         ClickAction = "open_url"
	OpenFile        ClickAction = "open_file"
	RunCommand      ClickAction = "run_command"
	SuggestCommand  ClickAction = "suggest_command"
	ChangePage      ClickAction = "change_page"
	CopyToClipboard ClickAction = "copy_to_clipboard"
)

// ClickEvent is an action attached to a node.
type ClickEvent struct {
	Action ClickAction
	Value  string
}

// HoverAction is what a client shows when the text is hovered.
type HoverAction string

const (
	ShowText   HoverAction = "show_text"
	ShowItem   HoverAction = "show_item"
	ShowEntity HoverAction = "show_entity"
)

// HoverEvent is a tooltip attached to a node. Its value is a separate tree
// and is not part of the node's children.
type HoverEvent struct {
	Action HoverAction
	Value  Component
}

// Style is the formatting of a node. The zero value means no formatting.
type Style struct {
	Color       string // Named color or "#rrggbb"; empty for inherited
	Decorations Decorations
	Click       *ClickEvent
	Hover       *HoverEvent
	Insertion   string
}

// IsEmpty reports whether the style carries no formatting.
func (s Style) IsEmpty() bool {
	return s.Color == "" && s.Decorations == 0 && s.Click == nil && s.Hover == nil && s.Insertion == ""
}

// Decorate returns c with the decoration added to its style.
func Decorate(c Component, d Decoration) Component {
	st := c.Style()
	st.Decorations = st.Decorations.With(d)
	return WithStyle(c, st)
}

// WithStyle returns a copy of c with the style replaced.
func WithStyle(c Component, style Style) Component {
	switch n := c.(type) {
	case *TextComponent:
		cp := *n
		cp.style = style
		return &cp
	case *TranslatableComponent:
		cp := *n
		cp.style = style
		return &cp
	case *KeybindComponent:
		cp := *n
		cp.style = style
		return &cp
	case *ScoreComponent:
		cp := *n
		cp.style = style
		return &cp
	case *SelectorComponent:
		cp := *n
		cp.style = style
		return &cp
	}
	return c
}

// Append returns a copy of c with children added after the existing ones.
func Append(c Component, children ...Component) Component {
	merged := make([]Component, 0, len(c.Children())+len(children))
	merged = append(merged, c.Children()...)
	merged = append(merged, children...)

	switch n := c.(type) {
	case *TextComponent:
		cp := *n
		cp.children = merged
		return &cp
	case *TranslatableComponent:
		cp := *n
		cp.children = merged
		return &cp
	case *KeybindComponent:
		cp := *n
		cp.children = merged
		return &cp
	case *ScoreComponent:
		cp := *n
		cp.children = merged
		return &cp
	case *SelectorComponent:
		cp := *n
		cp.children = merged
		return &cp
	}
	return c
}
