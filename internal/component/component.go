package component

// Component is a node in a rich text tree. The set of implementations is
// closed: only the variants declared in this package satisfy it.
type Component interface {
	// Children returns the ordered child list. Callers must not modify it.
	Children() []Component
	// Style returns the formatting attached to this node.
	Style() Style

	isComponent()
}

// base carries the fields shared by every variant.
type base struct {
	style    Style
	children []Component
}

func (b *base) Children() []Component { return b.children }
func (b *base) Style() Style          { return b.style }
func (b *base) isComponent()          {}

func newBase(children []Component) base {
	return base{children: cloneChildren(children)}
}

func cloneChildren(children []Component) []Component {
	if len(children) == 0 {
		return nil
	}
	out := make([]Component, len(children))
	copy(out, children)
	return out
}

// TextComponent holds a literal string.
type TextComponent struct {
	base
	content string
}

// Text creates a text node with the given content and children.
func Text(content string, children ...Component) *TextComponent {
	return &TextComponent{base: newBase(children), content: content}
}

// Content returns the literal text of the node.
func (c *TextComponent) Content() string { return c.content }

// TranslatableComponent holds a translation key whose display text is
// resolved by the caller.
type TranslatableComponent struct {
	base
	key  string
	args []Component
}

// Translatable creates a translatable node for key with optional format
// arguments.
func Translatable(key string, args ...Component) *TranslatableComponent {
	return &TranslatableComponent{key: key, args: cloneChildren(args)}
}

// Key returns the translation key.
func (c *TranslatableComponent) Key() string { return c.key }

// Args returns the format arguments. They are not part of the child list.
func (c *TranslatableComponent) Args() []Component { return c.args }

// KeybindComponent refers to a client key binding by identifier.
type KeybindComponent struct {
	base
	keybind string
}

// Keybind creates a keybind node.
func Keybind(keybind string, children ...Component) *KeybindComponent {
	return &KeybindComponent{base: newBase(children), keybind: keybind}
}

// Keybind returns the key binding identifier.
func (c *KeybindComponent) Keybind() string { return c.keybind }

// ScoreComponent refers to a scoreboard value for an entity.
type ScoreComponent struct {
	base
	name      string
	objective string
}

// Score creates a score node.
func Score(name, objective string, children ...Component) *ScoreComponent {
	return &ScoreComponent{base: newBase(children), name: name, objective: objective}
}

func (c *ScoreComponent) Name() string      { return c.name }
func (c *ScoreComponent) Objective() string { return c.objective }

// SelectorComponent refers to an entity selector pattern.
type SelectorComponent struct {
	base
	pattern string
}

// Selector creates a selector node.
func Selector(pattern string, children ...Component) *SelectorComponent {
	return &SelectorComponent{base: newBase(children), pattern: pattern}
}

func (c *SelectorComponent) Pattern() string { return c.pattern }
