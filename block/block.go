// Package block splits a document into heading and paragraph blocks,
// handing each block's content to the inline parser through a nested token
// iterator.
package block

import (
	"fmt"
	"io"

	"github.com/jcorbin/umark/inline"
	"github.com/jcorbin/umark/internal/scanio"
	"github.com/jcorbin/umark/symbol"
)

// Type is the kind of a Block.
type Type int

// Block types.
const (
	noBlock Type = iota
	Heading
	Paragraph
)

// Block is one parsed block element.
type Block struct {
	Type Type

	// Level is the heading level, 1 to 6.
	Level int

	Inlines []inline.Inline
	Start   symbol.Position
	End     symbol.Position

	content scanio.Area
}

// Content returns the block text without its heading marker and line
// prefixes.
func (b Block) Content() string { return b.content.String() }

// ContentArea returns the input spans making up the block content.
func (b Block) ContentArea() scanio.Area { return b.content }

// Format writes a textual representation of the receiver, providing improved
// fmt.Printf display. Produces a verbose "<Type attr=value>" form when
// formatted with `%+v", a terse "Type" form otherwise.
func (b Block) Format(f fmt.State, _ rune) {
	if f.Flag('+') {
		switch b.Type {
		case Heading:
			fmt.Fprintf(f, "<%v level=%v %v-%v>", b.Type, b.Level, b.Start, b.End)
		default:
			fmt.Fprintf(f, "<%v %v-%v>", b.Type, b.Start, b.End)
		}
	} else {
		switch b.Type {
		case Heading:
			fmt.Fprintf(f, "%v%v", b.Type, b.Level)
		default:
			fmt.Fprint(f, b.Type)
		}
	}
}

// Format writes a type string representing the receiver code.
func (t Type) Format(f fmt.State, _ rune) {
	switch t {
	case noBlock:
		io.WriteString(f, "None")
	case Heading:
		io.WriteString(f, "Heading")
	case Paragraph:
		io.WriteString(f, "Paragraph")
	default:
		fmt.Fprintf(f, "InvalidBlock%v", int(t))
	}
}

// String returns the type name.
func (t Type) String() string { return fmt.Sprint(t) }
