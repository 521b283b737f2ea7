package token

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/umark/symbol"
)

// Kind classifies a Token. Run kinds (Hash through Dot) also carry the run
// length of their token, see N and Count; a run kind with no count matches
// runs of any length.
type Kind uint64

const countShift = 8

// Token kinds.
const (
	Plain Kind = iota
	TerminalPunctuation
	Whitespace
	Newline
	Blankline
	Eoi

	EscapedPlain
	EscapedWhitespace
	EscapedNewline

	OpenParenthesis
	CloseParenthesis
	OpenBracket
	CloseBracket
	OpenBrace
	CloseBrace

	// Any matches any one token; valid only in matcher sequences.
	Any
	// Space matches a single U+0020 whitespace token; valid only in matcher
	// sequences.
	Space

	// run kinds
	Hash
	Star
	Minus
	Plus
	Underline
	Caret
	Tick
	Overline
	Pipe
	Tilde
	Quote
	Dollar
	Colon
	Dot

	numKinds
)

var runSymbol = map[Kind]symbol.Kind{
	Hash:      symbol.Hash,
	Star:      symbol.Star,
	Minus:     symbol.Minus,
	Plus:      symbol.Plus,
	Underline: symbol.Underline,
	Caret:     symbol.Caret,
	Tick:      symbol.Tick,
	Overline:  symbol.Overline,
	Pipe:      symbol.Pipe,
	Tilde:     symbol.Tilde,
	Quote:     symbol.Quote,
	Dollar:    symbol.Dollar,
	Colon:     symbol.Colon,
	Dot:       symbol.Dot,
}

var fromSymbol = map[symbol.Kind]Kind{
	symbol.Plain:               Plain,
	symbol.TerminalPunctuation: TerminalPunctuation,
	symbol.Whitespace:          Whitespace,
	symbol.Newline:             Newline,
	symbol.Eoi:                 Eoi,
	symbol.OpenParenthesis:     OpenParenthesis,
	symbol.CloseParenthesis:    CloseParenthesis,
	symbol.OpenBracket:         OpenBracket,
	symbol.CloseBracket:        CloseBracket,
	symbol.OpenBrace:           OpenBrace,
	symbol.CloseBrace:          CloseBrace,
}

func init() {
	for k, sk := range runSymbol {
		fromSymbol[sk] = k
	}
}

// FromSymbol returns the base token kind for a symbol kind; Backslash has no
// token kind of its own and maps to Plain.
func FromSymbol(k symbol.Kind) Kind {
	if tk, ok := fromSymbol[k]; ok {
		return tk
	}
	return Plain
}

// N returns the run kind with the given count.
// Panics if the receiver is not a run kind.
func (k Kind) N(n int) Kind {
	if !k.IsRun() {
		panic(fmt.Sprintf("token kind %v has no run length", k))
	}
	return k.Base() | Kind(n)<<countShift
}

// Base returns the kind without run length.
func (k Kind) Base() Kind { return k & (1<<countShift - 1) }

// Count returns the run length, 0 for kinds that are not runs.
func (k Kind) Count() int { return int(k >> countShift) }

// IsRun returns true for run kinds.
func (k Kind) IsRun() bool { b := k.Base(); return b >= Hash && b <= Dot }

// IsKeyword returns true for run and parenthesis kinds.
func (k Kind) IsKeyword() bool { return k.IsRun() || k.IsParenthesis() }

// IsParenthesis returns true for all bracket-like kinds.
func (k Kind) IsParenthesis() bool { return k >= OpenParenthesis && k <= CloseBrace }

// IsOpenParenthesis returns true for "(", "[" and "{".
func (k Kind) IsOpenParenthesis() bool {
	return k == OpenParenthesis || k == OpenBracket || k == OpenBrace
}

// IsCloseParenthesis returns true for ")", "]" and "}".
func (k Kind) IsCloseParenthesis() bool {
	return k == CloseParenthesis || k == CloseBracket || k == CloseBrace
}

// Closer returns the closing parenthesis kind of an opening one, or the
// receiver.
func (k Kind) Closer() Kind {
	switch k {
	case OpenParenthesis:
		return CloseParenthesis
	case OpenBracket:
		return CloseBracket
	case OpenBrace:
		return CloseBrace
	}
	return k
}

// IsSpace returns true for Whitespace, Newline, Blankline and Eoi.
func (k Kind) IsSpace() bool {
	return k == Whitespace || k == Newline || k == Blankline || k == Eoi
}

// IsLineEnd returns true for kinds after which line prefixes are matched.
func (k Kind) IsLineEnd() bool {
	return k == Newline || k == EscapedNewline || k == Blankline
}

// Matches returns true if k satisfies the pattern kind; a run pattern
// without count matches runs of any length.
func (k Kind) Matches(pattern Kind) bool {
	switch {
	case pattern == Any:
		return true
	case pattern.IsRun() && pattern.Count() == 0:
		return k.Base() == pattern
	}
	return k == pattern
}

// String returns the text form of the kind: a run renders its keyword
// repeated count times, Blankline renders as two newlines.
func (k Kind) String() string {
	switch b := k.Base(); {
	case k.IsRun():
		n := k.Count()
		if n == 0 {
			n = 1
		}
		return strings.Repeat(runSymbol[b].Keyword(), n)
	case b == Whitespace, b == Space:
		return " "
	case b == Newline, b == EscapedNewline:
		return "\n"
	case b == Blankline:
		return "\n\n"
	case b == OpenParenthesis:
		return "("
	case b == CloseParenthesis:
		return ")"
	case b == OpenBracket:
		return "["
	case b == CloseBracket:
		return "]"
	case b == OpenBrace:
		return "{"
	case b == CloseBrace:
		return "}"
	}
	return ""
}

// Format writes the kind name, run kinds as "Name(count)"; %s writes the
// text form from String.
func (k Kind) Format(f fmt.State, c rune) {
	if c == 's' {
		io.WriteString(f, k.String())
		return
	}
	switch b := k.Base(); b {
	case Plain:
		io.WriteString(f, "Plain")
	case TerminalPunctuation:
		io.WriteString(f, "TerminalPunctuation")
	case Whitespace:
		io.WriteString(f, "Whitespace")
	case Newline:
		io.WriteString(f, "Newline")
	case Blankline:
		io.WriteString(f, "Blankline")
	case Eoi:
		io.WriteString(f, "Eoi")
	case EscapedPlain:
		io.WriteString(f, "EscapedPlain")
	case EscapedWhitespace:
		io.WriteString(f, "EscapedWhitespace")
	case EscapedNewline:
		io.WriteString(f, "EscapedNewline")
	case Any:
		io.WriteString(f, "Any")
	case Space:
		io.WriteString(f, "Space")
	case OpenParenthesis:
		io.WriteString(f, "OpenParenthesis")
	case CloseParenthesis:
		io.WriteString(f, "CloseParenthesis")
	case OpenBracket:
		io.WriteString(f, "OpenBracket")
	case CloseBracket:
		io.WriteString(f, "CloseBracket")
	case OpenBrace:
		io.WriteString(f, "OpenBrace")
	case CloseBrace:
		io.WriteString(f, "CloseBrace")
	default:
		if !k.IsRun() {
			fmt.Fprintf(f, "InvalidKind%v", uint64(k))
			return
		}
		fmt.Fprint(f, runSymbol[b])
		if n := k.Count(); n > 0 {
			fmt.Fprintf(f, "(%d)", n)
		}
	}
}
