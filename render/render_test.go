package render_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/russross/blackfriday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/umark/block"
	"github.com/jcorbin/umark/inline"
	. "github.com/jcorbin/umark/render"
)

func fragment(t *testing.T, in string) string {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, inline.Parse(in, inline.Context{}), Options{Fragment: true}))
	return buf.String()
}

func TestHTML_fragment(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out string
	}{
		{"a **b** \\*", `a <strong>b</strong> *`},
		{"*i* ~~d~~ `c<d`", `<em>i</em> <del>d</del> <code>c&lt;d</code>`},
		{"__u__ ^s^ _b_ ||h||", `<span style="text-decoration: underline;">u</span> <sup>s</sup> <sub>b</sub> <mark>h</mark>`},
		{`""q"" $$x$$`, `<q>q</q> <span class="math">x</span>`},
		{"[text](https://x.org title)", `<a href="https://x.org" title="title">text</a>`},
		{"[a **b**]", `<span>a <strong>b</strong></span>`},
		{"a\nb", `a b`},
		{"a < b", `a &lt; b`},
	} {
		t.Run(fmt.Sprintf("%q", tc.in), func(t *testing.T) {
			assert.Equal(t, tc.out, fragment(t, tc.in))
		})
	}
}

func TestHTML_escapedNewline(t *testing.T) {
	out := fragment(t, "a\\\nb")
	assert.True(t, strings.HasPrefix(out, "a<br"), "got %q", out)
	assert.True(t, strings.HasSuffix(out, "b"), "got %q", out)
}

func TestHTML_paragraph(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, inline.Parse("a *b*", inline.Context{}), Options{}))
	assert.Equal(t, "<p>a <em>b</em></p>", strings.TrimSpace(buf.String()))
}

func TestBlocks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Blocks(&buf, block.Parse("## Title *em*\n\nsome **text**", inline.Context{})))
	out := buf.String()
	assert.Contains(t, out, "<h2>Title <em>em</em></h2>")
	assert.Contains(t, out, "<p>some <strong>text</strong></p>")
	assert.Less(t, strings.Index(out, "<h2>"), strings.Index(out, "<p>"))
}

func TestDocument(t *testing.T) {
	doc := Document(block.Parse("# a\n\nb", inline.Context{}))
	var types []blackfriday.NodeType
	for node := doc.FirstChild; node != nil; node = node.Next {
		types = append(types, node.Type)
	}
	assert.Equal(t, []blackfriday.NodeType{blackfriday.Heading, blackfriday.Paragraph}, types)
	assert.Equal(t, 1, doc.FirstChild.Level)
}

var errClosed = errors.New("closed")

type closedWriter struct{}

func (closedWriter) Write([]byte) (int, error) { return 0, errClosed }

func TestBlocks_writeError(t *testing.T) {
	err := Blocks(closedWriter{}, block.Parse("a\n\nb", inline.Context{}))
	assert.True(t, errors.Is(err, errClosed), "got %v", err)
}

func ExampleHTML() {
	HTML(os.Stdout, inline.Parse("***bold**italic*", inline.Context{}), Options{Fragment: true})
	fmt.Println()
	// Output:
	// <em><strong>bold</strong>italic</em>
}
