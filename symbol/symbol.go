// Package symbol scans input text into grapheme classified symbols, and
// provides the nestable symbol iterator that the token builder and block
// parsers drive.
package symbol

import (
	"fmt"
	"strconv"

	"github.com/jcorbin/umark/internal/scanio"
)

// Position locates a point in the input. All fields are 1 based, columns are
// counted in UTF-8 bytes, UTF-16 code units and grapheme clusters.
type Position struct {
	Line        int
	ColUTF8     int
	ColUTF16    int
	ColGrapheme int
}

// Start is the position of the first byte of any input.
var Start = Position{1, 1, 1, 1}

// Unit selects one of the column units of a Position.
type Unit uint8

// Column units.
const (
	Grapheme Unit = iota
	UTF8
	UTF16
)

// ParseUnit parses a unit name: "grapheme", "utf8" or "utf16".
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "grapheme":
		return Grapheme, nil
	case "utf8":
		return UTF8, nil
	case "utf16":
		return UTF16, nil
	}
	return 0, fmt.Errorf("invalid column unit %q", s)
}

// String returns the unit name accepted by ParseUnit.
func (u Unit) String() string {
	switch u {
	case UTF8:
		return "utf8"
	case UTF16:
		return "utf16"
	default:
		return "grapheme"
	}
}

// Col returns the column in the given unit.
func (p Position) Col(u Unit) int {
	switch u {
	case UTF8:
		return p.ColUTF8
	case UTF16:
		return p.ColUTF16
	default:
		return p.ColGrapheme
	}
}

// Less returns true if p is before other.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.ColUTF8 < other.ColUTF8
}

// Advance returns the position after n single unit graphemes on the same line.
func (p Position) Advance(n int) Position {
	p.ColUTF8 += n
	p.ColUTF16 += n
	p.ColGrapheme += n
	return p
}

// Format writes "line:col" using the grapheme column; %+v writes all three
// columns as "line:utf8/utf16/grapheme".
func (p Position) Format(f fmt.State, _ rune) {
	if f.Flag('+') {
		fmt.Fprintf(f, "%d:%d/%d/%d", p.Line, p.ColUTF8, p.ColUTF16, p.ColGrapheme)
		return
	}
	fmt.Fprintf(f, "%d:%d", p.Line, p.ColGrapheme)
}

// Symbol is one grapheme cluster of the input, classified by Kind.
// Symbols never own text, they refer into the single scanned input.
type Symbol struct {
	Input  string
	Kind   Kind
	Offset scanio.Span
	Start  Position
	End    Position
}

// LineEnd returns true for Newline symbols.
func (sym Symbol) LineEnd() bool { return sym.Kind == Newline }

// String returns the symbol's text.
func (sym Symbol) String() string { return sym.Offset.Text(sym.Input) }

// Format writes the symbol text for %s and %q; %v writes "Kind" plus the
// quoted text, and %+v adds the offset and positions.
func (sym Symbol) Format(f fmt.State, c rune) {
	switch c {
	case 's':
		fmt.Fprint(f, sym.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(sym.String()))
	case 'v':
		fmt.Fprintf(f, "%v %q", sym.Kind, sym.String())
		if f.Flag('+') {
			fmt.Fprintf(f, " %v %+v-%+v", sym.Offset, sym.Start, sym.End)
		}
	default:
		fmt.Fprintf(f, "!(ERROR invalid format verb %%%s)", string(c))
	}
}
