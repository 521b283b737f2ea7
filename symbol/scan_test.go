package symbol_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/umark/internal/scanio"
	. "github.com/jcorbin/umark/symbol"
)

func kinds(syms []Symbol) []Kind {
	ks := make([]Kind, len(syms))
	for i, sym := range syms {
		ks[i] = sym.Kind
	}
	return ks
}

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		in   string
		kind Kind
	}{
		{"", Eoi},
		{"\n", Newline},
		{"\r\n", Newline},
		{" ", Whitespace},
		{"\t", Whitespace},
		{" ", Whitespace},
		{"a", Plain},
		{"é", Plain},
		{"!", TerminalPunctuation},
		{"?", TerminalPunctuation},
		{"。", TerminalPunctuation},
		{".", Dot},
		{":", Colon},
		{"*", Star},
		{"‾", Overline},
		{"\\", Backslash},
		{"{", OpenBrace},
		{"}", CloseBrace},
	} {
		t.Run(fmt.Sprintf("%q", tc.in), func(t *testing.T) {
			assert.Equal(t, tc.kind, Classify(tc.in))
		})
	}
}

func TestKind(t *testing.T) {
	assert.True(t, Star.IsKeyword())
	assert.False(t, Plain.IsKeyword())
	assert.False(t, Any.IsKeyword())
	assert.True(t, OpenBracket.IsOpenParenthesis())
	assert.True(t, CloseBrace.IsCloseParenthesis())
	assert.True(t, CloseBrace.IsParenthesis())
	assert.False(t, Star.IsParenthesis())
	assert.True(t, Eoi.IsSpace())
	assert.Equal(t, "~", Tilde.Keyword())
	assert.Equal(t, "Tilde", Tilde.String())
	assert.Equal(t, `Tilde("~")`, fmt.Sprintf("%+v", Tilde))
	assert.Equal(t, "InvalidKind200", Kind(200).String())
}

func TestScan(t *testing.T) {
	syms := Scan("a*\r\nb")
	assert.Equal(t, []Kind{Plain, Star, Newline, Plain, Eoi}, kinds(syms))

	nl := syms[2]
	assert.Equal(t, "\r\n", nl.String())
	assert.Equal(t, Position{1, 3, 3, 3}, nl.Start)
	assert.Equal(t, Position{2, 1, 1, 1}, nl.End)

	eoi := syms[4]
	assert.Equal(t, scanio.Span{Start: 5, End: 5}, eoi.Offset)
	assert.Equal(t, Position{2, 2, 2, 2}, eoi.Start)
	assert.Equal(t, eoi.Start, eoi.End)
}

func TestScan_columns(t *testing.T) {
	// U+1F600 takes 4 UTF-8 bytes and 2 UTF-16 units; e + U+0301 is one
	// grapheme of 3 bytes and 2 units.
	syms := Scan("😀éx")
	require.Len(t, syms, 4)
	assert.Equal(t, Position{1, 5, 3, 2}, syms[0].End)
	assert.Equal(t, Position{1, 8, 5, 3}, syms[1].End)
	assert.Equal(t, Position{1, 9, 6, 4}, syms[2].End)
	assert.Equal(t, Eoi, syms[3].Kind)
}

func TestScan_coverage(t *testing.T) {
	for _, in := range []string{
		"",
		"plain text",
		"**bold** and *italic*\n\n  \nnext",
		"\\\n\\*`code`\r\n",
		"日本語。テキスト！",
	} {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			syms := Scan(in)
			require.NotEmpty(t, syms)
			assert.Equal(t, Eoi, syms[len(syms)-1].Kind)

			var sb strings.Builder
			last := 0
			for _, sym := range syms {
				assert.Equal(t, last, sym.Offset.Start, "contiguous offsets")
				last = sym.Offset.End
				sb.WriteString(sym.String())
			}
			assert.Equal(t, in, sb.String())

			ar := scanio.MakeArea(in)
			for _, sym := range syms {
				ar.Add(sym.Offset)
			}
			assert.Empty(t, ar.Holes())
		})
	}
}

func TestSymbol_Format(t *testing.T) {
	sym := Scan("*")[0]
	assert.Equal(t, "*", fmt.Sprintf("%s", sym))
	assert.Equal(t, `"*"`, fmt.Sprintf("%q", sym))
	assert.Equal(t, `Star "*"`, fmt.Sprintf("%v", sym))
	assert.Equal(t, `Star "*" @0:1 1:1/1/1-1:2/2/2`, fmt.Sprintf("%+v", sym))
}

func ExampleScan() {
	for i, sym := range Scan("# Hi!\n") {
		fmt.Printf("%v. %v %v-%v\n", i+1, sym, sym.Start, sym.End)
	}
	// Output:
	// 1. Hash "#" 1:1-1:2
	// 2. Whitespace " " 1:2-1:3
	// 3. Plain "H" 1:3-1:4
	// 4. Plain "i" 1:4-1:5
	// 5. TerminalPunctuation "!" 1:5-1:6
	// 6. Newline "\n" 1:6-2:1
	// 7. Eoi "" 2:1-2:1
}
