package scanio

import (
	"fmt"
	"io"
)

// Span is a half open range of byte offsets within an input buffer.
type Span struct{ Start, End int }

// Empty returns true if the span covers no bytes.
func (sp Span) Empty() bool { return sp.End == sp.Start }

// Len returns how many bytes the span covers.
func (sp Span) Len() int { return sp.End - sp.Start }

// Contains returns true if offset lies within the span.
func (sp Span) Contains(offset int) bool {
	return offset >= sp.Start && offset < sp.End
}

// Merge extends the receiver to cover other if they overlap or touch,
// returning false if they are disjoint.
func (sp Span) Merge(other Span) (_ Span, overlap bool) {
	if other.Start > sp.End || other.End < sp.Start {
		return sp, false
	}
	if sp.Start > other.Start {
		sp.Start = other.Start
	}
	if sp.End < other.End {
		sp.End = other.End
	}
	return sp, true
}

// Extend returns the receiver stretched to end where other ends.
// Panics if other starts before the receiver.
func (sp Span) Extend(other Span) Span {
	if other.Start < sp.Start {
		panic(fmt.Sprintf("cannot extend span @%v:%v by earlier span @%v:%v",
			sp.Start, sp.End, other.Start, other.End))
	}
	if other.End > sp.End {
		sp.End = other.End
	}
	return sp
}

// Add shifts the span by n bytes.
func (sp Span) Add(n int) Span {
	sp.Start += n
	sp.End += n
	return sp
}

// Sub removes other from the receiver, returning what remains before and
// after it.
func (sp Span) Sub(other Span) (head, tail Span) {
	head = sp
	if other.Start < sp.End {
		if other.End < sp.Start {
			return
		}
		head.End = other.Start
		if head.End < head.Start {
			head = Span{}
		}
		if other.End < sp.End {
			tail = sp
			tail.Start = other.End
		}
	}
	return
}

// SplitAt cuts the span n bytes after its start.
// Panics if n is outside [0, Len()].
func (sp Span) SplitAt(n int) (head, tail Span) {
	if n < 0 || n > sp.Len() {
		panic(fmt.Sprintf("span split %v out of range [0:%v]", n, sp.Len()))
	}
	mid := sp.Start + n
	return Span{sp.Start, mid}, Span{mid, sp.End}
}

// Slice returns a sub-span, acting similarly to s[i:j] over the spanned
// bytes. Both i and j are span relative, but j may be negative to count back
// from the end of the span.
// Panics if the resulting range is invalid.
func (sp Span) Slice(i, j int) Span {
	old := sp
	if j < 0 {
		sp.End = sp.End + 1 + j
	} else {
		sp.End = sp.Start + j
	}
	sp.Start += i
	if sp.End < sp.Start ||
		sp.Start < 0 ||
		sp.Start < old.Start ||
		sp.Start > old.End ||
		sp.End > old.End {
		panic(fmt.Sprintf(
			"span slice [%v:%v] out of range [%v:%v]",
			i, j, old.Start, old.End))
	}
	return sp
}

// Text returns the spanned bytes of input, clipped to its length.
func (sp Span) Text(input string) string {
	start, end := sp.Start, sp.End
	if end > len(input) {
		end = len(input)
	}
	if start > end {
		start = end
	}
	return input[start:end]
}

// Format prints the span as "@start:end".
func (sp Span) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "@%v:%v", sp.Start, sp.End)
}

// WriteSpans writes the text of every span of input into dest, returning the
// number of bytes written and any write error.
func WriteSpans(dest io.Writer, input string, spans ...Span) (int64, error) {
	var n int64
	for _, sp := range spans {
		m, err := io.WriteString(dest, sp.Text(input))
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func compactSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return spans
	}
	tmp := spans
	spans = spans[:0]
	cur := tmp[0]
	for _, sp := range tmp[1:] {
		if sp.Empty() {
			continue
		} else if sp.Start == cur.End {
			cur.End = sp.End
		} else {
			if !cur.Empty() {
				spans = append(spans, cur)
			}
			cur = sp
		}
	}
	if !cur.Empty() {
		spans = append(spans, cur)
	}
	return spans
}
