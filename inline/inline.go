// Package inline parses inline formatting from a token stream into a tree
// of Inline elements, resolving ambiguous delimiters such as "***" into
// properly nested formats.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jcorbin/umark/symbol"
)

// Inline is one element of inline content. Text carries the content of
// plain and escaped elements and the link text of a Hyperlink; formats,
// text boxes and hyperlinks carry their content in Inner.
type Inline struct {
	Kind  Kind
	Text  string
	Link  string
	Inner []Inline
	Start symbol.Position
	End   symbol.Position

	// ImplicitEnd is set on elements closed without their closing
	// delimiter.
	ImplicitEnd bool
}

// Unimarkup returns markup text that parses back into the element; whitespace
// runs are collapsed, and implicitly closed elements omit their closer.
func (in Inline) Unimarkup() string {
	var sb strings.Builder
	in.writeUnimarkup(&sb)
	return sb.String()
}

// Unimarkup returns the markup text of a sequence of elements.
func Unimarkup(inlines []Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		in.writeUnimarkup(&sb)
	}
	return sb.String()
}

func (in Inline) writeUnimarkup(sb *strings.Builder) {
	switch in.Kind {
	case Plain:
		sb.WriteString(in.Text)
	case EscapedPlain, EscapedWhitespace:
		sb.WriteByte('\\')
		sb.WriteString(in.Text)
	case Newline, ImplicitNewline:
		sb.WriteByte('\n')
	case EscapedNewline:
		sb.WriteString("\\\n")
	case TextBox, Hyperlink:
		sb.WriteByte('[')
		for _, child := range in.Inner {
			child.writeUnimarkup(sb)
		}
		if in.Kind == TextBox {
			if !in.ImplicitEnd {
				sb.WriteByte(']')
			}
			break
		}
		sb.WriteString("](")
		sb.WriteString(in.Link)
		if in.Text != "" {
			sb.WriteByte(' ')
			sb.WriteString(in.Text)
		}
		if !in.ImplicitEnd {
			sb.WriteByte(')')
		}
	default:
		delim := in.Kind.Delimiter()
		sb.WriteString(delim)
		for _, child := range in.Inner {
			child.writeUnimarkup(sb)
		}
		if !in.ImplicitEnd {
			sb.WriteString(delim)
		}
	}
}

// PlainString returns the text content of the element, without any markup.
func (in Inline) PlainString() string {
	var sb strings.Builder
	in.writePlain(&sb)
	return sb.String()
}

// PlainString returns the text content of a sequence of elements.
func PlainString(inlines []Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		in.writePlain(&sb)
	}
	return sb.String()
}

func (in Inline) writePlain(sb *strings.Builder) {
	switch in.Kind {
	case Plain, EscapedPlain, EscapedWhitespace:
		sb.WriteString(in.Text)
	case ImplicitNewline:
		sb.WriteByte(' ')
	case Newline, EscapedNewline:
		sb.WriteByte('\n')
	default:
		for _, child := range in.Inner {
			child.writePlain(sb)
		}
	}
}

// Format writes the plain string for %s and %q. %v writes a one line tree
// form like `Bold[Plain "bold"]`; %+v adds positions and implicit end
// markers.
func (in Inline) Format(f fmt.State, c rune) {
	switch c {
	case 's':
		io.WriteString(f, in.PlainString())
	case 'q':
		io.WriteString(f, strconv.Quote(in.PlainString()))
	case 'v':
		in.format(f, f.Flag('+'))
	default:
		fmt.Fprintf(f, "!(ERROR invalid format verb %%%s)", string(c))
	}
}

func (in Inline) format(w io.Writer, verbose bool) {
	fmt.Fprint(w, in.Kind)
	switch in.Kind {
	case Plain, EscapedPlain, EscapedWhitespace:
		fmt.Fprintf(w, " %q", in.Text)
	case Hyperlink:
		fmt.Fprintf(w, "<%s>", in.Link)
		if in.Text != "" {
			fmt.Fprintf(w, "%q", in.Text)
		}
	}
	if verbose {
		fmt.Fprintf(w, " %v-%v", in.Start, in.End)
		if in.ImplicitEnd {
			io.WriteString(w, " implicit")
		}
	}
	if in.Kind.IsFormat() || in.Kind == TextBox || in.Kind == Hyperlink {
		io.WriteString(w, "[")
		for i, child := range in.Inner {
			if i > 0 {
				io.WriteString(w, ", ")
			}
			child.format(w, verbose)
		}
		io.WriteString(w, "]")
	}
}

// WriteTree writes one line per element, children indented under their
// parent, in the %+v element form without children.
func WriteTree(w io.Writer, inlines []Inline) error {
	var err error
	var walk func(inlines []Inline, depth int)
	walk = func(inlines []Inline, depth int) {
		for _, in := range inlines {
			if err != nil {
				return
			}
			flat := in
			flat.Inner = nil
			line := fmt.Sprintf("%+v", flat)
			line = strings.TrimSuffix(line, "[]")
			_, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), line)
			walk(in.Inner, depth+1)
		}
	}
	walk(inlines, 0)
	return err
}
