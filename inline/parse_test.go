package inline_test

import (
	"fmt"
	"math/rand"
	"os"
	"reflect"
	"strings"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/umark/inline"
	"github.com/jcorbin/umark/token"
)

func tree(inlines []Inline) string {
	parts := make([]string, len(inlines))
	for i, in := range inlines {
		parts[i] = fmt.Sprintf("%v", in)
	}
	return strings.Join(parts, ", ")
}

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		ctx  Context
		out  string
	}{
		{name: "plain", in: "plain text", out: `Plain "plain text"`},
		{name: "italic", in: "*italic*", out: `Italic[Plain "italic"]`},
		{name: "bold", in: "**bold**", out: `Bold[Plain "bold"]`},
		{name: "bold italic", in: "***both***", out: `Bold[Italic[Plain "both"]]`},
		{name: "bold closes first", in: "***bold**italic*", out: `Italic[Bold[Plain "bold"], Plain "italic"]`},
		{name: "italic closes first", in: "**b *bi***", out: `Bold[Plain "b ", Italic[Plain "bi"]]`},
		{name: "combined close", in: "**bold***italic*", out: `Bold[Plain "bold"], Italic[Plain "italic"]`},
		{name: "underline subscript", in: "___a__b_", out: `Subscript[Underline[Plain "a"], Plain "b"]`},
		{name: "open before space", in: "* not italic*", out: `Plain "* not italic*"`},
		{name: "combined open before space", in: "*** a**", out: `Bold[Plain "* a"]`},
		{name: "unclosed", in: "**bold", out: `Bold[Plain "bold"]`},
		{name: "implicit inner close", in: "**~~strike**", out: `Bold[Strikethrough[Plain "strike"]]`},
		{name: "implicit inner ambiguous", in: "~~a **b~~", out: `Strikethrough[Plain "a ", Bold[Plain "b"]]`},
		{name: "superscript", in: "^sup^", out: `Superscript[Plain "sup"]`},
		{name: "highlight", in: "||hi||", out: `Highlight[Plain "hi"]`},
		{name: "quote", in: `""q""`, out: `Quote[Plain "q"]`},

		{name: "escapes", in: `\*a\*`, out: `EscapedPlain "*", Plain "a", EscapedPlain "*"`},
		{name: "escaped space", in: `a\ b`, out: `Plain "a", EscapedWhitespace " ", Plain "b"`},
		{name: "whitespace collapse", in: "a   b", out: `Plain "a b"`},
		{name: "keep whitespaces", in: "a   b", ctx: Context{KeepWhitespaces: true}, out: `Plain "a   b"`},
		{name: "implicit newline", in: "a\nb", out: `Plain "a", ImplicitNewline, Plain "b"`},
		{name: "keep newline", in: "a\nb", ctx: Context{KeepNewline: true}, out: `Plain "a", Newline, Plain "b"`},
		{name: "escaped newline", in: "a\\\nb", out: `Plain "a", EscapedNewline, Plain "b"`},
		{name: "blank line ends", in: "*a\n\nb*", out: `Italic[Plain "a"]`},
		{name: "logic only", in: "**a**", ctx: Context{LogicOnly: true}, out: `Plain "**a**"`},

		{name: "verbatim", in: "`a *b*`", out: `Verbatim[Plain "a *b*"]`},
		{name: "verbatim after space", in: "`a `b`", out: `Verbatim[Plain "a ` + "`" + `b"]`},
		{name: "math", in: "$$x^2$$", out: `Math[Plain "x^2"]`},
		{name: "text box", in: "[a **b**] c", out: `TextBox[Plain "a ", Bold[Plain "b"]], Plain " c"`},
		{name: "text box scope", in: "**outer[**inner]", out: `Bold[Plain "outer", TextBox[Bold[Plain "inner"]]]`},
		{name: "hyperlink", in: "[text](https://x.org title)", out: `Hyperlink<https://x.org>"title"[Plain "text"]`},
		{name: "group", in: "(**a)**", out: `Plain "(", Bold[Plain "a"], Plain ")**"`},
		{name: "group hides closer", in: "**a (b** c)", out: `Bold[Plain "a (b** c)"]`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, tree(Parse(tc.in, tc.ctx)), "parse %q", tc.in)
		})
	}
}

func TestParse_positions(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out string
	}{
		{"*italic*", `Italic 1:1-1:9[Plain "italic" 1:2-1:8]`},
		{"**~~strike**", `Bold 1:1-1:13[Strikethrough 1:3-1:11 implicit[Plain "strike" 1:5-1:11]]`},
		{"**bold", `Bold 1:1-1:7 implicit[Plain "bold" 1:3-1:7]`},
		{"***a***", `Bold 1:1-1:8[Italic 1:3-1:6[Plain "a" 1:4-1:5]]`},
		{"(**a)", `Plain "(" 1:1-1:2, Bold 1:2-1:5 implicit[Plain "a" 1:4-1:5], Plain ")" 1:5-1:6`},
		{"{a\n}", `Plain "{a" 1:1-1:3, ImplicitNewline 1:3-2:1, Plain "}" 2:1-2:2`},
		{"(a\n) b", `Plain "(a" 1:1-1:3, ImplicitNewline 1:3-2:1, Plain ") b" 2:1-2:4`},
		{"[a\n]", `TextBox 1:1-2:2[Plain "a" 1:2-1:3, ImplicitNewline 1:3-2:1]`},
		{"[~~a\n]", `TextBox 1:1-2:2[Strikethrough 1:2-2:1 implicit[Plain "a" 1:4-1:5, ImplicitNewline 1:5-2:1]]`},
		{"`a\\", `Verbatim 1:1-1:4 implicit[Plain "a" 1:2-1:3, EscapedNewline 1:3-1:4]`},
	} {
		t.Run(fmt.Sprintf("%q", tc.in), func(t *testing.T) {
			inlines := Parse(tc.in, Context{})
			parts := make([]string, len(inlines))
			for i, in := range inlines {
				parts[i] = fmt.Sprintf("%+v", in)
			}
			assert.Equal(t, tc.out, strings.Join(parts, ", "))
		})
	}
}

// nestingError describes the first element that ends before it starts,
// overlaps its previous sibling, or leaves the span of its parent.
func nestingError(inlines []Inline, parent *Inline) string {
	for i, in := range inlines {
		switch {
		case in.End.Less(in.Start):
			return fmt.Sprintf("%+v ends before it starts", in)
		case i > 0 && in.Start.Less(inlines[i-1].End):
			return fmt.Sprintf("%+v overlaps %+v", in, inlines[i-1])
		case parent != nil && in.Start.Less(parent.Start):
			return fmt.Sprintf("%+v starts before its parent %+v", in, *parent)
		case parent != nil && parent.End.Less(in.End):
			return fmt.Sprintf("%+v ends after its parent %+v", in, *parent)
		}
		if msg := nestingError(in.Inner, &inlines[i]); msg != "" {
			return msg
		}
	}
	return ""
}

func TestParse_nesting(t *testing.T) {
	for _, in := range []string{
		"***bold**italic*",
		"**bold***italic*",
		"**b *bi***",
		"(**a)** and [**b] c",
		"~~a **b~~ __c_d___",
		"`v` $$m$$ ^s^ *x\ny*",
		"{a\n}",
		"(a\n) b",
		"[a\n]",
		"[a~~*\n]",
		"`a\\",
		"b{ _]\n]$$\n}",
	} {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			assert.Empty(t, nestingError(Parse(in, Context{}), nil))
		})
	}
}

const alphabet = "#*-+_^`‾|~\"$:.\\()[]{} \n\ta!"

func markupValues(args []reflect.Value, r *rand.Rand) {
	rs := []rune(alphabet)
	var sb strings.Builder
	for i, n := 0, r.Intn(64); i < n; i++ {
		sb.WriteRune(rs[r.Intn(len(rs))])
	}
	args[0] = reflect.ValueOf(sb.String())
}

func TestParse_nestingQuick(t *testing.T) {
	assert.NoError(t, quick.Check(func(in string) bool {
		if msg := nestingError(Parse(in, Context{}), nil); msg != "" {
			t.Logf("%q: %s", in, msg)
			return false
		}
		return true
	}, &quick.Config{MaxCount: 1000, Values: markupValues}))
}

func TestParse_logf(t *testing.T) {
	var lines []string
	Parse("**bold***italic*", Context{
		Logf: func(format string, args ...interface{}) {
			lines = append(lines, fmt.Sprintf(format, args...))
		},
	})
	require.NotEmpty(t, lines)
	found := false
	for _, line := range lines {
		if strings.HasPrefix(line, "split ") {
			found = true
		}
		assert.False(t, strings.HasPrefix(line, "defect:"), "unexpected %q", line)
	}
	assert.True(t, found, "a split is traced in %q", lines)
}

func TestParseTokens_blockEnd(t *testing.T) {
	it := token.NewIterator(token.Lex("a *b*\n\nnext")).Nest(nil, token.BlankLine{})
	parsed := ParseTokens(it, Context{})
	assert.Equal(t, `Plain "a ", Italic[Plain "b"]`, tree(parsed.Inlines))
	assert.True(t, parsed.EndReached)
	assert.False(t, parsed.PrefixMismatch)
	assert.Equal(t, 5, it.Index(), "the blank line is left to the block parser")
}

func TestParseTokens_prefixMismatch(t *testing.T) {
	it := token.NewIteratorWith(token.Lex("*a\n> b*\nc"), token.Prefix{token.Any, token.Space}, nil)
	parsed := ParseTokens(it, Context{})
	assert.Equal(t, `Italic[Plain "a", ImplicitNewline, Plain "b"]`, tree(parsed.Inlines))
	assert.True(t, parsed.PrefixMismatch)
	assert.False(t, parsed.EndReached)
}

func TestUnimarkup(t *testing.T) {
	for _, in := range []string{
		"plain text",
		"***bold**italic*",
		"**bold***italic*",
		"**~~strike**",
		`\*a\* b`,
		"[text](https://x.org title)",
		"[a **b**] c",
		"`a *b*`",
		"(**a)**",
	} {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			assert.Equal(t, in, Unimarkup(Parse(in, Context{})))
		})
	}
}

func TestPlainString(t *testing.T) {
	inlines := Parse("***bold**italic*\n[a](x b) `c`", Context{})
	assert.Equal(t, "bolditalic a c", PlainString(inlines))
	require.NotEmpty(t, inlines)
	assert.Equal(t, "bolditalic", fmt.Sprintf("%s", inlines[0]))
	assert.Equal(t, `"bolditalic"`, fmt.Sprintf("%q", inlines[0]))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "Strikethrough", Strikethrough.String())
	assert.Equal(t, "InvalidKind99", Kind(99).String())
	assert.True(t, Math.IsFormat())
	assert.True(t, Math.IsScoped())
	assert.False(t, TextBox.IsFormat())
	assert.Equal(t, "~~", Strikethrough.Delimiter())
	assert.Equal(t, "", Plain.Delimiter())
}

func ExampleWriteTree() {
	WriteTree(os.Stdout, Parse("***bold**italic*", Context{}))
	// Output:
	// Italic 1:1-1:17
	//   Bold 1:2-1:10
	//     Plain "bold" 1:4-1:8
	//   Plain "italic" 1:10-1:16
}
