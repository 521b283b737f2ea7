package symbol

import (
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a Symbol.
type Kind uint8

// Symbol kinds.
const (
	Plain Kind = iota
	Whitespace
	Newline
	Eoi
	TerminalPunctuation

	// keywords
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
	Backslash
	OpenParenthesis
	CloseParenthesis
	OpenBracket
	CloseBracket
	OpenBrace
	CloseBrace

	// Any matches any one symbol; valid only in matcher sequences.
	Any
	// Space matches a single U+0020 whitespace symbol; valid only in matcher
	// sequences.
	Space
)

var keywords = map[string]Kind{
	"#":  Hash,
	"*":  Star,
	"-":  Minus,
	"+":  Plus,
	"_":  Underline,
	"^":  Caret,
	"`":  Tick,
	"‾":  Overline,
	"|":  Pipe,
	"~":  Tilde,
	"\"": Quote,
	"$":  Dollar,
	":":  Colon,
	".":  Dot,
	"\\": Backslash,
	"(":  OpenParenthesis,
	")":  CloseParenthesis,
	"[":  OpenBracket,
	"]":  CloseBracket,
	"{":  OpenBrace,
	"}":  CloseBrace,
}

var keywordText [Space + 1]string

func init() {
	for s, k := range keywords {
		keywordText[k] = s
	}
}

// Classify returns the kind of a single grapheme cluster.
func Classify(grapheme string) Kind {
	switch grapheme {
	case "":
		return Eoi
	case "\n", "\r\n":
		return Newline
	}
	if k, ok := keywords[grapheme]; ok {
		return k
	}
	r, _ := utf8.DecodeRuneInString(grapheme)
	switch {
	case unicode.IsSpace(r):
		return Whitespace
	case unicode.Is(unicode.Terminal_Punctuation, r):
		return TerminalPunctuation
	}
	return Plain
}

// IsKeyword returns true for kinds that have a fixed textual form.
func (k Kind) IsKeyword() bool { return k >= Hash && k <= CloseBrace }

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

// IsSpace returns true for Whitespace, Newline and Eoi.
func (k Kind) IsSpace() bool { return k == Whitespace || k == Newline || k == Eoi }

// Keyword returns the fixed text of a keyword kind, or "".
func (k Kind) Keyword() string {
	if int(k) < len(keywordText) {
		return keywordText[k]
	}
	return ""
}

// String returns the kind name.
func (k Kind) String() string { return fmt.Sprint(k) }

// Format writes the kind name; the keyword text is appended when formatted
// with %+v.
func (k Kind) Format(f fmt.State, _ rune) {
	switch k {
	case Plain:
		io.WriteString(f, "Plain")
	case Whitespace:
		io.WriteString(f, "Whitespace")
	case Newline:
		io.WriteString(f, "Newline")
	case Eoi:
		io.WriteString(f, "Eoi")
	case TerminalPunctuation:
		io.WriteString(f, "TerminalPunctuation")
	case Hash:
		io.WriteString(f, "Hash")
	case Star:
		io.WriteString(f, "Star")
	case Minus:
		io.WriteString(f, "Minus")
	case Plus:
		io.WriteString(f, "Plus")
	case Underline:
		io.WriteString(f, "Underline")
	case Caret:
		io.WriteString(f, "Caret")
	case Tick:
		io.WriteString(f, "Tick")
	case Overline:
		io.WriteString(f, "Overline")
	case Pipe:
		io.WriteString(f, "Pipe")
	case Tilde:
		io.WriteString(f, "Tilde")
	case Quote:
		io.WriteString(f, "Quote")
	case Dollar:
		io.WriteString(f, "Dollar")
	case Colon:
		io.WriteString(f, "Colon")
	case Dot:
		io.WriteString(f, "Dot")
	case Backslash:
		io.WriteString(f, "Backslash")
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
	case Any:
		io.WriteString(f, "Any")
	case Space:
		io.WriteString(f, "Space")
	default:
		fmt.Fprintf(f, "InvalidKind%v", int(k))
		return
	}
	if f.Flag('+') && k.IsKeyword() {
		fmt.Fprintf(f, "(%q)", k.Keyword())
	}
}
