package html_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/deeplinks/pkg/dom"
	"github.com/yaklabco/deeplinks/pkg/parser/html"
)

func texts(doc *dom.Document) []string {
	var out []string
	for _, n := range doc.TextNodes() {
		out = append(out, n.Data)
	}
	return out
}

func TestParse_TextNodes(t *testing.T) {
	t.Parallel()

	src := "<!doctype html>\n<html><head><title>T</title></head>\n<body>\n<p>Hello, <b>bold</b> world</p>\n<!-- note -->\n<p id=\"second\">second &amp; last</p>\n</body></html>"
	doc, err := html.New().Parse(context.Background(), "page.html", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, "page.html", doc.Path)
	assert.Equal(t, src, string(doc.Content))
	assert.Equal(t, "body", doc.Body().Tag)
	assert.Equal(t, []string{"\n", "Hello, ", "bold", " world", "\n", "\n", "second & last", "\n"}, texts(doc))

	second := doc.ElementByID("second")
	require.NotNil(t, second)
	assert.Equal(t, "p", second.Tag)

	comments := dom.FindAll(doc.Root, func(n *dom.Node) bool { return n.Kind == dom.NodeComment })
	require.Len(t, comments, 1)
	assert.Equal(t, " note ", comments[0].Data)
}

func TestParse_ImpliedStructure(t *testing.T) {
	t.Parallel()

	doc, err := html.New().Parse(context.Background(), "", []byte("<p>one<p>two"))
	require.NoError(t, err)

	body := doc.Body()
	require.Equal(t, "body", body.Tag)
	assert.Equal(t, 2, body.ChildCount())
	assert.Equal(t, []string{"one", "two"}, texts(doc))
}

func TestParse_ContentIsCopied(t *testing.T) {
	t.Parallel()

	content := []byte("<p>x</p>")
	doc, err := html.New().Parse(context.Background(), "", content)
	require.NoError(t, err)
	content[3] = 'y'
	assert.Equal(t, "<p>x</p>", string(doc.Content))
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := html.New().Parse(ctx, "", []byte("<p>x</p>"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseReader_WholeTextMatchesData(t *testing.T) {
	t.Parallel()

	root, err := html.ParseReader(strings.NewReader("<p>a<!---->b</p><p>c</p>"))
	require.NoError(t, err)
	for _, n := range dom.TextNodes(root) {
		assert.Equal(t, n.Data, n.WholeText())
	}
}
