package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"inline.md":             {Data: []byte("# Inline rules\n\nFirst match wins.")},
		"option-format.txt":     {Data: []byte("Output formats")},
		"nested/strict.txxt":    {Data: []byte("Strictness")},
		"nested/ignore.json":    {Data: []byte("{}")},
		"nested/deeper/type.md": {Data: []byte("Package types")},
	}
}

func TestNewScansTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm, err := New(testFS(), Options{})
		require.NoError(t, err)

		assert.Equal(t, []string{"inline", "option-format", "type"}, tm.ListTopics())

		topic, ok := tm.GetTopic("inline")
		require.True(t, ok)
		assert.Equal(t, "# Inline rules\n\nFirst match wins.", topic.Content)
		assert.Equal(t, "inline.md", topic.Path)

		_, ok = tm.GetTopic("strict")
		assert.False(t, ok)
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm, err := New(testFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"strict"}, tm.ListTopics())
	})
}

func TestGetTopicFlagStyle(t *testing.T) {
	tm, err := New(testFS(), Options{})
	require.NoError(t, err)

	for _, name := range []string{"--format", "-format", "format", "option-format"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "Output formats", topic.Content)
	}
}

type upperRenderer struct{}

func (upperRenderer) Render(content, format string) string {
	return format + ":" + content
}

func newRoot(t *testing.T, opts Options) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	root := &cobra.Command{Use: "tool", Short: "A tool"}
	root.AddCommand(&cobra.Command{Use: "describe", Short: "Describe packages", Run: func(*cobra.Command, []string) {}})

	tm, err := New(testFS(), opts)
	require.NoError(t, err)
	tm.Install(root)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	return root, &buf
}

func TestHelpCommand(t *testing.T) {
	t.Run("renders a topic", func(t *testing.T) {
		root, buf := newRoot(t, Options{Renderer: upperRenderer{}})
		root.SetArgs([]string{"help", "inline"})
		require.NoError(t, root.Execute())
		assert.Equal(t, ".md:# Inline rules\n\nFirst match wins.", buf.String())
	})

	t.Run("lists topics", func(t *testing.T) {
		root, buf := newRoot(t, Options{})
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())

		out := buf.String()
		assert.Contains(t, out, "General topics:\n  inline\n  type\n")
		assert.Contains(t, out, "Option topics:\n  --format\n")
		assert.Contains(t, out, "Use 'tool help <topic>'")
	})

	t.Run("falls back to command help", func(t *testing.T) {
		root, buf := newRoot(t, Options{})
		root.SetArgs([]string{"help", "describe"})
		require.NoError(t, root.Execute())
		assert.Contains(t, buf.String(), "Describe packages")
	})
}

func TestPlainRenderer(t *testing.T) {
	assert.Equal(t, "# x", (&PlainRenderer{}).Render("# x", ".md"))
}

func TestGlamourRendererSkipsNonMarkdown(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))

	r.Style = "notty"
	assert.Contains(t, r.Render("# Title", ".md"), "Title")
}
