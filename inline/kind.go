package inline

import (
	"fmt"
	"io"
)

// Kind is the kind of an Inline element.
type Kind uint8

// Inline element kinds.
const (
	Plain Kind = iota
	EscapedPlain
	EscapedWhitespace
	Newline
	ImplicitNewline
	EscapedNewline

	// formats
	Bold
	Italic
	Underline
	Subscript
	Superscript
	Overline
	Strikethrough
	Highlight
	Quote

	// scoped formats
	Verbatim
	Math

	TextBox
	Hyperlink
)

// IsFormat returns true for kinds that wrap inner elements between a pair of
// delimiters.
func (k Kind) IsFormat() bool { return k >= Bold && k <= Math }

// IsScoped returns true for formats whose content is taken verbatim.
func (k Kind) IsScoped() bool { return k == Verbatim || k == Math }

// Delimiter returns the markup text opening and closing a format kind, or "".
func (k Kind) Delimiter() string {
	switch k {
	case Bold:
		return "**"
	case Italic:
		return "*"
	case Underline:
		return "__"
	case Subscript:
		return "_"
	case Superscript:
		return "^"
	case Overline:
		return "‾"
	case Strikethrough:
		return "~~"
	case Highlight:
		return "||"
	case Quote:
		return `""`
	case Verbatim:
		return "`"
	case Math:
		return "$$"
	}
	return ""
}

// String returns the kind name.
func (k Kind) String() string { return fmt.Sprint(k) }

// Format writes the kind name.
func (k Kind) Format(f fmt.State, _ rune) {
	switch k {
	case Plain:
		io.WriteString(f, "Plain")
	case EscapedPlain:
		io.WriteString(f, "EscapedPlain")
	case EscapedWhitespace:
		io.WriteString(f, "EscapedWhitespace")
	case Newline:
		io.WriteString(f, "Newline")
	case ImplicitNewline:
		io.WriteString(f, "ImplicitNewline")
	case EscapedNewline:
		io.WriteString(f, "EscapedNewline")
	case Bold:
		io.WriteString(f, "Bold")
	case Italic:
		io.WriteString(f, "Italic")
	case Underline:
		io.WriteString(f, "Underline")
	case Subscript:
		io.WriteString(f, "Subscript")
	case Superscript:
		io.WriteString(f, "Superscript")
	case Overline:
		io.WriteString(f, "Overline")
	case Strikethrough:
		io.WriteString(f, "Strikethrough")
	case Highlight:
		io.WriteString(f, "Highlight")
	case Quote:
		io.WriteString(f, "Quote")
	case Verbatim:
		io.WriteString(f, "Verbatim")
	case Math:
		io.WriteString(f, "Math")
	case TextBox:
		io.WriteString(f, "TextBox")
	case Hyperlink:
		io.WriteString(f, "Hyperlink")
	default:
		fmt.Fprintf(f, "InvalidKind%v", int(k))
	}
}
