package inline

import (
	"fmt"

	"github.com/jcorbin/umark/internal/scanio"
	"github.com/jcorbin/umark/symbol"
	"github.com/jcorbin/umark/token"
)

// mark is the inline reading of a token: which format delimiter a keyword
// run denotes, if any.
type mark uint8

const (
	markPlain mark = iota
	markEscapedPlain
	markEscapedWhitespace
	markEscapedNewline
	markWhitespace
	markNewline
	markEnd // Eoi, or a Blankline ending inline content

	// formats sharing one open format state
	markBold
	markItalic
	markBoldItalic
	markUnderline
	markSubscript
	markUnderlineSubscript
	markSuperscript
	markOverline
	markStrikethrough
	markHighlight
	markQuote

	// scoped formats
	markVerbatim
	markMath
	markNamedSubstitution

	markOpenParenthesis
	markCloseParenthesis
	markOpenBracket
	markCloseBracket
	markOpenBrace
	markCloseBrace
)

func markOf(k token.Kind) mark {
	n := k.Count()
	switch k.Base() {
	case token.Star:
		switch n {
		case 1:
			return markItalic
		case 2:
			return markBold
		case 3:
			return markBoldItalic
		}
	case token.Underline:
		switch n {
		case 1:
			return markSubscript
		case 2:
			return markUnderline
		case 3:
			return markUnderlineSubscript
		}
	case token.Caret:
		if n == 1 {
			return markSuperscript
		}
	case token.Overline:
		if n == 1 {
			return markOverline
		}
	case token.Tilde:
		if n == 2 {
			return markStrikethrough
		}
	case token.Pipe:
		if n == 2 {
			return markHighlight
		}
	case token.Quote:
		if n == 2 {
			return markQuote
		}
	case token.Tick:
		if n == 1 {
			return markVerbatim
		}
	case token.Dollar:
		if n == 2 {
			return markMath
		}
	case token.Colon:
		if n == 2 {
			return markNamedSubstitution
		}

	case token.OpenParenthesis:
		return markOpenParenthesis
	case token.CloseParenthesis:
		return markCloseParenthesis
	case token.OpenBracket:
		return markOpenBracket
	case token.CloseBracket:
		return markCloseBracket
	case token.OpenBrace:
		return markOpenBrace
	case token.CloseBrace:
		return markCloseBrace

	case token.Whitespace:
		return markWhitespace
	case token.Newline:
		return markNewline
	case token.Eoi, token.Blankline:
		return markEnd
	case token.EscapedPlain:
		return markEscapedPlain
	case token.EscapedWhitespace:
		return markEscapedWhitespace
	case token.EscapedNewline:
		return markEscapedNewline
	}
	return markPlain
}

func (m mark) isKeyword() bool { return m >= markBold }

func (m mark) isSpace() bool {
	return m == markWhitespace || m == markNewline || m == markEnd
}

func (m mark) isFormat() bool { return m >= markBold && m <= markQuote }

func (m mark) isScoped() bool { return m >= markVerbatim && m <= markNamedSubstitution }

func (m mark) isOpenParenthesis() bool {
	return m == markOpenParenthesis || m == markOpenBracket || m == markOpenBrace
}

func (m mark) isAmbiguous() bool { return m == markBoldItalic || m == markUnderlineSubscript }

// kind returns the element kind that a format mark opens.
func (m mark) kind() (Kind, bool) {
	switch m {
	case markBold:
		return Bold, true
	case markItalic:
		return Italic, true
	case markUnderline:
		return Underline, true
	case markSubscript:
		return Subscript, true
	case markSuperscript:
		return Superscript, true
	case markOverline:
		return Overline, true
	case markStrikethrough:
		return Strikethrough, true
	case markHighlight:
		return Highlight, true
	case markQuote:
		return Quote, true
	case markVerbatim:
		return Verbatim, true
	case markMath:
		return Math, true
	}
	return Plain, false
}

// width returns the byte width of a format delimiter; ambiguous delimiters
// are as wide as both of their parts.
func (m mark) width() int {
	switch m {
	case markBoldItalic, markUnderlineSubscript:
		return 3
	case markBold, markUnderline, markStrikethrough, markHighlight, markQuote, markMath, markNamedSubstitution:
		return 2
	case markOverline:
		return len("‾")
	case markItalic, markSubscript, markSuperscript, markVerbatim:
		return 1
	}
	return 0
}

// counterpart returns the other format sharing a keyword, e.g. italic for
// bold; other marks are their own counterpart.
func (m mark) counterpart() mark {
	switch m {
	case markBold:
		return markItalic
	case markItalic:
		return markBold
	case markUnderline:
		return markSubscript
	case markSubscript:
		return markUnderline
	}
	return m
}

// main returns the outer part of an ambiguous mark.
func (m mark) main() mark {
	switch m {
	case markItalic, markBoldItalic:
		return markBold
	case markSubscript, markUnderlineSubscript:
		return markUnderline
	}
	return m
}

// sub returns the inner part of an ambiguous mark.
func (m mark) sub() mark {
	switch m {
	case markBold, markBoldItalic:
		return markItalic
	case markUnderline, markUnderlineSubscript:
		return markSubscript
	}
	return m
}

// ambiguous returns the combined mark of a counterpart pair.
func (m mark) ambiguous() mark {
	switch m {
	case markBold, markItalic:
		return markBoldItalic
	case markUnderline, markSubscript:
		return markUnderlineSubscript
	}
	return m
}

func (m mark) compatible(other mark) bool {
	return m == other || m == other.counterpart() || m == other.ambiguous()
}

func (m mark) String() string { return fmt.Sprint(m) }

func (m mark) Format(f fmt.State, _ rune) {
	switch m {
	case markPlain:
		fmt.Fprint(f, "Plain")
	case markEscapedPlain:
		fmt.Fprint(f, "EscapedPlain")
	case markEscapedWhitespace:
		fmt.Fprint(f, "EscapedWhitespace")
	case markEscapedNewline:
		fmt.Fprint(f, "EscapedNewline")
	case markWhitespace:
		fmt.Fprint(f, "Whitespace")
	case markNewline:
		fmt.Fprint(f, "Newline")
	case markEnd:
		fmt.Fprint(f, "End")
	case markBoldItalic:
		fmt.Fprint(f, "BoldItalic")
	case markUnderlineSubscript:
		fmt.Fprint(f, "UnderlineSubscript")
	case markNamedSubstitution:
		fmt.Fprint(f, "NamedSubstitution")
	case markOpenParenthesis, markCloseParenthesis, markOpenBracket, markCloseBracket, markOpenBrace, markCloseBrace:
		fmt.Fprint(f, "Parenthesis")
	default:
		if k, ok := m.kind(); ok {
			fmt.Fprint(f, k)
		} else {
			fmt.Fprintf(f, "InvalidMark%d", int(m))
		}
	}
}

// itoken is a token as read by the inline parser. Splitting an ambiguous
// delimiter yields itokens that no single token.Token corresponds to.
type itoken struct {
	mark   mark
	kind   token.Kind
	input  string
	offset scanio.Span
	start  symbol.Position
	end    symbol.Position
}

func readToken(tok token.Token) itoken {
	return itoken{
		mark:   markOf(tok.Kind),
		kind:   tok.Kind,
		input:  tok.Input,
		offset: tok.Offset,
		start:  tok.Start,
		end:    tok.End,
	}
}

func (t itoken) String() string { return t.offset.Text(t.input) }

func (t itoken) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "%v %q @%v", t.mark, t.String(), t.start)
}

// split cuts an ambiguous delimiter after the width of first; the remainder
// is its counterpart. Delimiter symbols are single byte graphemes, so the
// positions advance by width in every unit.
func split(t itoken, first mark) (itoken, itoken) {
	w := first.width()
	head, tail := t, t
	head.mark = first
	head.offset.End = t.offset.Start + w
	head.end = t.start.Advance(w)
	tail.mark = first.counterpart()
	tail.offset.Start = head.offset.End
	tail.start = head.end
	if base := t.kind.Base(); t.kind.IsRun() {
		head.kind = base.N(w)
		tail.kind = base.N(t.kind.Count() - w)
	}
	return head, tail
}

// implicitEnd returns where an element implicitly closed after prev ends; it
// never spans over a closing line end.
func implicitEnd(prev itoken) symbol.Position {
	switch prev.mark {
	case markNewline, markEscapedNewline, markEnd:
		return prev.start
	}
	return prev.end
}
