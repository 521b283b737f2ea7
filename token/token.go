// Package token builds tokens from scanned symbols, collapsing runs of
// identical keyword symbols, and provides the nestable, scope aware token
// iterator consumed by the inline and block parsers.
package token

import (
	"fmt"
	"strconv"

	"github.com/jcorbin/umark/internal/scanio"
	"github.com/jcorbin/umark/symbol"
)

// Token is one lexical unit: either a single symbol promoted as-is, or a run
// of symbols collapsed into one unit. Its offset is the union of its
// symbols' offsets.
type Token struct {
	Input  string
	Kind   Kind
	Offset scanio.Span
	Start  symbol.Position
	End    symbol.Position
}

// LineEnd returns true for Newline, EscapedNewline and Blankline tokens.
func (tok Token) LineEnd() bool { return tok.Kind.IsLineEnd() }

// String returns the token's source text.
func (tok Token) String() string { return tok.Offset.Text(tok.Input) }

// Format writes the token text for %s and %q; %v writes "Kind" plus the
// quoted text, and %+v adds the offset and positions.
func (tok Token) Format(f fmt.State, c rune) {
	switch c {
	case 's':
		fmt.Fprint(f, tok.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(tok.String()))
	case 'v':
		fmt.Fprintf(f, "%v %q", tok.Kind, tok.String())
		if f.Flag('+') {
			fmt.Fprintf(f, " %v %+v-%+v", tok.Offset, tok.Start, tok.End)
		}
	default:
		fmt.Fprintf(f, "!(ERROR invalid format verb %%%s)", string(c))
	}
}

func promote(sym symbol.Symbol) Token {
	return Token{
		Input:  sym.Input,
		Kind:   FromSymbol(sym.Kind),
		Offset: sym.Offset,
		Start:  sym.Start,
		End:    sym.End,
	}
}

func (tok *Token) extend(sym symbol.Symbol) {
	tok.Offset = tok.Offset.Extend(sym.Offset)
	tok.End = sym.End
}
