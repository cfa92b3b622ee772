package plain_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dgallion1/plaintext/internal/component"
	"github.com/dgallion1/plaintext/internal/serializer/plain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	t.Run("Text", func(t *testing.T) {
		s, err := plain.Default.Serialize(component.Text("abc"))
		require.NoError(t, err)
		assert.Equal(t, "abc", s)
	})

	t.Run("Verbatim", func(t *testing.T) {
		// No trimming, escaping or whitespace normalization.
		s, err := plain.Default.Serialize(component.Text("  <b>&amp;\n\t ", component.Text(" x ")))
		require.NoError(t, err)
		assert.Equal(t, "  <b>&amp;\n\t  x ", s)
	})

	t.Run("ChildOrder", func(t *testing.T) {
		a := component.Text("A", component.Text("a1"), component.Text("a2"))
		b := component.Text("B")
		c := component.Text("C", component.Text("c1"))
		root := component.Text("root:", a, b, c)

		s, err := plain.Default.Serialize(root)
		require.NoError(t, err)

		var want strings.Builder
		want.WriteString("root:")
		for _, child := range []component.Component{a, b, c} {
			part, err := plain.Default.Serialize(child)
			require.NoError(t, err)
			want.WriteString(part)
		}
		assert.Equal(t, want.String(), s)
		assert.Equal(t, "root:Aa1a2BCc1", s)
	})

	t.Run("Empty", func(t *testing.T) {
		s, err := plain.Default.Serialize(component.Text(""))
		require.NoError(t, err)
		assert.Equal(t, "", s)
	})

	t.Run("FormattingDiscarded", func(t *testing.T) {
		link := component.WithStyle(component.Text("docs"), component.Style{
			Color: "#ff0000",
			Click: &component.ClickEvent{Action: component.OpenURL, Value: "https://example.com"},
			Hover: &component.HoverEvent{Action: component.ShowText, Value: component.Text("tooltip")},
		})
		root := component.Text("see ", component.Decorate(link, component.Bold), component.Text("."))

		s, err := plain.Default.Serialize(root)
		require.NoError(t, err)
		assert.Equal(t, "see docs.", s)
	})

	t.Run("NoTextVariants", func(t *testing.T) {
		// Variants without text of their own still have their
		// children visited.
		root := component.Text("",
			component.Keybind("key.jump", component.Text("k")),
			component.Score("alice", "kills", component.Text("s")),
			component.Selector("@p", component.Text("p")),
		)
		s, err := plain.Default.Serialize(root)
		require.NoError(t, err)
		assert.Equal(t, "ksp", s)
	})

	t.Run("Nil", func(t *testing.T) {
		s, err := plain.Default.Serialize(nil)
		require.NoError(t, err)
		assert.Equal(t, "", s)
	})
}

func TestSerializeTranslatable(t *testing.T) {
	t.Run("DefaultResolver", func(t *testing.T) {
		root := component.Text("[", component.Append(component.Translatable("chat.type.text"), component.Text("!")), component.Text("]"))
		s, err := plain.Default.Serialize(root)
		require.NoError(t, err)
		assert.Equal(t, "[!]", s)
	})

	t.Run("NilResolver", func(t *testing.T) {
		s, err := plain.New(nil).Serialize(component.Translatable("k"))
		require.NoError(t, err)
		assert.Equal(t, "", s)
	})

	t.Run("PreOrderPosition", func(t *testing.T) {
		var calls []string
		serializer := plain.New(func(c *component.TranslatableComponent) (string, error) {
			calls = append(calls, c.Key())
			if c.Key() == "greeting" {
				return "hello", nil
			}
			return "<" + c.Key() + ">", nil
		})

		root := component.Text("a",
			component.Append(component.Translatable("first", component.Text("ignored arg")), component.Text("b")),
			component.Text("c", component.Translatable("greeting")),
			component.Translatable("last"),
		)
		s, err := serializer.Serialize(root)
		require.NoError(t, err)
		assert.Equal(t, "a<first>bchello<last>", s)
		assert.Equal(t, []string{"first", "greeting", "last"}, calls)
	})

	t.Run("ResolverFailure", func(t *testing.T) {
		errBoom := errors.New("boom")
		var calls int
		serializer := plain.New(func(c *component.TranslatableComponent) (string, error) {
			calls++
			if c.Key() == "bad" {
				return "", errBoom
			}
			return "ok", nil
		})

		root := component.Text("x", component.Translatable("good"), component.Translatable("bad"), component.Translatable("never"))
		s, err := serializer.Serialize(root)
		assert.Same(t, errBoom, err)
		assert.Equal(t, "", s)
		assert.Equal(t, 2, calls)
	})
}

type unknownComponent struct {
	*component.TextComponent
}

func TestSerializeUnsupportedVariant(t *testing.T) {
	root := component.Text("before", unknownComponent{component.Text("hidden")})
	s, err := plain.Default.Serialize(root)
	require.ErrorIs(t, err, plain.ErrUnsupportedVariant)
	assert.Contains(t, err.Error(), "unknownComponent")
	assert.Equal(t, "", s)
}

func TestSerializeDeepTree(t *testing.T) {
	const depth = 100000

	var leaf component.Component = component.Text("9")
	for i := depth - 1; i > 0; i-- {
		leaf = component.Text(string(rune('0'+i%10)), leaf)
	}

	s, err := plain.Default.Serialize(leaf)
	require.NoError(t, err)
	require.Len(t, s, depth)

	for i := 1; i < depth; i++ {
		if s[i-1] != byte('0'+i%10) {
			t.Fatalf("position %d: expected %q, got %q", i-1, '0'+i%10, s[i-1])
		}
	}
	assert.Equal(t, byte('9'), s[depth-1])
}

func TestWrite(t *testing.T) {
	t.Run("Count", func(t *testing.T) {
		var b strings.Builder
		n, err := plain.Default.Write(&b, component.Text("Hello", component.Text(", "), component.Text("world!")))
		require.NoError(t, err)
		assert.Equal(t, 13, n)
		assert.Equal(t, "Hello, world!", b.String())
	})

	t.Run("PartialOutput", func(t *testing.T) {
		errBoom := errors.New("boom")
		serializer := plain.New(func(*component.TranslatableComponent) (string, error) {
			return "", errBoom
		})

		var b strings.Builder
		n, err := serializer.Write(&b, component.Text("kept", component.Translatable("k"), component.Text("lost")))
		assert.Same(t, errBoom, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, "kept", b.String())
	})

	t.Run("WriterError", func(t *testing.T) {
		errFull := errors.New("full")
		n, err := plain.Default.Write(failingWriter{err: errFull}, component.Text("a", component.Text("b")))
		assert.Same(t, errFull, err)
		assert.Equal(t, 0, n)
	})
}

type failingWriter struct {
	err error
}

func (w failingWriter) WriteString(string) (int, error) { return 0, w.err }

func TestDeserialize(t *testing.T) {
	for _, in := range []string{"", "abc", "  spaced  ", "multi\nline", "ünïcödé"} {
		c := plain.Default.Deserialize(in)
		assert.Equal(t, in, c.Content())
		assert.Empty(t, c.Children())
		assert.True(t, c.Style().IsEmpty())

		s, err := plain.Default.Serialize(c)
		require.NoError(t, err)
		assert.Equal(t, in, s)
	}
}

func TestSerializeIsManyToOne(t *testing.T) {
	// Distinct trees can flatten to the same string.
	a, err := plain.Default.Serialize(component.Text("ab"))
	require.NoError(t, err)
	b, err := plain.Default.Serialize(component.Text("a", component.Text("b")))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDefaultConcurrentUse(t *testing.T) {
	root := component.Text("x", component.Text("y"), component.Translatable("z"))

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := plain.Default.Serialize(root)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results[i] = s
		}()
	}
	wg.Wait()

	for _, s := range results {
		assert.Equal(t, "xy", s)
	}
}
