package scanio

import (
	"fmt"
	"io"
	"sort"
	"strconv"
)

// MakeArea creates a new Area over input covering the given spans.
func MakeArea(input string, spans ...Span) Area {
	ar := Area{input: input}
	for _, sp := range spans {
		ar.Add(sp)
	}
	return ar
}

// Area is a set of byte spans within an input string.
// Spans may be added and removed efficiently; the area keeps them sorted and
// coalesced so that no two stored spans touch.
// The area may be written and formatted as the concatenation of its spans.
type Area struct {
	input string
	spans []Span
}

// Input returns the string that the area spans refer into.
func (ar *Area) Input() string { return ar.input }

// Spans returns the area's sorted and coalesced spans.
// The returned slice must not be modified.
func (ar *Area) Spans() []Span { return ar.spans }

// WriteTo writes all area spans into the given writer, returning the number
// of bytes written and any write error.
func (ar *Area) WriteTo(dest io.Writer) (n int64, err error) {
	return WriteSpans(dest, ar.input, ar.spans...)
}

// String returns the concatenated text of all spans.
func (ar Area) String() string { return fmt.Sprint(ar) }

// Len returns the total number of bytes covered by the area.
func (ar *Area) Len() (n int) {
	for _, sp := range ar.spans {
		n += sp.Len()
	}
	return n
}

// Format writes all spans similarly to how their text would be formatted.
// Provides offset information when formatted with %+v.
func (ar Area) Format(f fmt.State, c rune) {
	var quote bool
	switch c {
	case 'v':
		if f.Flag('+') {
			io.WriteString(f, "Area[")
			for i, sp := range ar.spans {
				if i > 0 {
					io.WriteString(f, " ")
				}
				fmt.Fprintf(f, "@%v:%v", sp.Start, sp.End)
			}
			io.WriteString(f, "]")
			return
		}
	case 's':

	case 'q':
		quote = true

	default:
		fmt.Fprintf(f, "!(ERROR invalid format verb %%%s)", string(c))
		return
	}

	prec, havePrec := f.Precision()
	if quote {
		io.WriteString(f, `"`)
	}
	for _, sp := range ar.spans {
		s := sp.Text(ar.input)
		if havePrec && len(s) > prec {
			s = s[:prec]
		}
		if quote {
			q := strconv.Quote(s)
			s = q[1 : len(q)-1]
		}
		m, err := io.WriteString(f, s)
		if err != nil {
			return
		}
		if havePrec {
			if prec -= m; prec <= 0 {
				break
			}
		}
	}
	if quote {
		io.WriteString(f, `"`)
	}
}

// Add adds a span to the area, merging any prior spans that it overlaps or
// touches.
func (ar *Area) Add(sp Span) {
	if sp.Empty() {
		return
	}
	defer func() {
		ar.spans = compactSpans(ar.spans)
	}()

	i := ar.find(sp.Start)
	j := i
	for j < len(ar.spans) && ar.spans[j].Start <= sp.End {
		merged, overlap := sp.Merge(ar.spans[j])
		if !overlap {
			break
		}
		sp = merged
		j++
	}
	if i > 0 {
		if merged, overlap := ar.spans[i-1].Merge(sp); overlap {
			i--
			sp = merged
		}
	}

	// replace spans[i:j] with the merged span
	switch {
	case j > i:
		ar.spans[i] = sp
		n := i + 1
		n += copy(ar.spans[n:], ar.spans[j:])
		ar.spans = ar.spans[:n]
	case i >= len(ar.spans):
		ar.spans = append(ar.spans, sp)
	default:
		ar.spans = append(ar.spans, Span{})
		copy(ar.spans[i+1:], ar.spans[i:])
		ar.spans[i] = sp
	}
}

// Sub removes a span from the area, potentially fragmenting prior spans, and
// eliding any fully covered ones.
func (ar *Area) Sub(sp Span) {
	if sp.Empty() || len(ar.spans) == 0 {
		return
	}
	defer func() {
		ar.spans = compactSpans(ar.spans)
	}()

	out := make([]Span, 0, len(ar.spans)+1)
	for _, have := range ar.spans {
		if have.End <= sp.Start || have.Start >= sp.End {
			out = append(out, have)
			continue
		}
		head, tail := have.Sub(sp)
		if !head.Empty() && head.Start < sp.Start {
			out = append(out, head)
		}
		if !tail.Empty() {
			out = append(out, tail)
		}
	}
	ar.spans = append(ar.spans[:0], out...)
}

// Empty return true if the area contains no non-empty spans.
func (ar *Area) Empty() bool {
	for _, sp := range ar.spans {
		if !sp.Empty() {
			return false
		}
	}
	return true
}

// Clear removes all spans from the area, keeping its input.
func (ar *Area) Clear() {
	ar.spans = ar.spans[:0]
}

// Holes returns the spans within [0, len(input)) that the area does not cover.
func (ar *Area) Holes() (holes []Span) {
	last := 0
	for _, sp := range ar.spans {
		if sp.Start > last {
			holes = append(holes, Span{last, sp.Start})
		}
		last = sp.End
	}
	if last < len(ar.input) {
		holes = append(holes, Span{last, len(ar.input)})
	}
	return holes
}

func (ar *Area) find(offset int) int {
	i := sort.Search(len(ar.spans), func(i int) bool {
		return ar.spans[i].Start > offset
	})
	if i > 0 && ar.spans[i-1].End > offset {
		i--
	}
	return i
}

// Find searches the area's spans for the given offset, returning the number
// of preceding bytes within the area and whether the given offset is
// contained.
func (ar Area) Find(offset int) (before int, found bool) {
	for _, sp := range ar.spans {
		if sp.Start > offset {
			break
		}
		if sp.Contains(offset) {
			found = true
		}
		end := sp.End
		if end > offset {
			end = offset
		}
		before += end - sp.Start
	}
	return before, found
}
