package symbol

import (
	"fmt"

	"github.com/jcorbin/umark/internal/cursor"
)

// Matcher is handed to strategies when an Iterator checks for its end or
// strips a line prefix.
type Matcher = cursor.Matcher[Symbol]

// Strategy decides iterator ends and consumes line prefixes.
type Strategy = cursor.Strategy[Symbol]

// Strategy combinators.
type (
	All      = cursor.All[Symbol]
	OneOf    = cursor.Any[Symbol]
	Not      = cursor.Not[Symbol]
	OuterEnd = cursor.OuterEnd[Symbol]
)

// Func adapts an ad hoc predicate into a Strategy.
type Func = cursor.Func[Symbol]

// Iterator is a nestable cursor over scanned symbols.
type Iterator struct {
	*cursor.Iter[Symbol]
}

// NewIterator returns a root iterator over symbols without strategies.
func NewIterator(symbols []Symbol) Iterator {
	return Iterator{cursor.New(symbols, nil, nil)}
}

// NewIteratorWith returns a root iterator over symbols with the given
// optional prefix and end strategies.
func NewIteratorWith(symbols []Symbol, prefix, end Strategy) Iterator {
	return Iterator{cursor.New(symbols, prefix, end)}
}

// Nest returns a child iterator with optional prefix and end strategies.
func (it Iterator) Nest(prefix, end Strategy) Iterator {
	return Iterator{it.Iter.Nest(prefix, end)}
}

// NestScoped returns a child iterator in a new scope.
func (it Iterator) NestScoped(prefix, end Strategy) Iterator {
	return Iterator{it.Iter.NestScoped(prefix, end)}
}

// NewScopeRoot returns a child iterator starting a fresh scope counter.
func (it Iterator) NewScopeRoot(prefix, end Strategy) Iterator {
	return Iterator{it.Iter.NewScopeRoot(prefix, end)}
}

// Unfold returns the parent view of a nested iterator.
func (it Iterator) Unfold() Iterator { return Iterator{it.Iter.Unfold()} }

// Update merges the receiver's progress into parent.
func (it Iterator) Update(parent Iterator) { it.Iter.Update(parent.Iter) }

// Progress merges the progress of child into the receiver.
func (it Iterator) Progress(child Iterator) { child.Iter.Update(it.Iter) }

// PeekKind returns the kind of the next symbol.
func (it Iterator) PeekKind() (Kind, bool) {
	sym, ok := it.Peek()
	return sym.Kind, ok
}

// PrevKind returns the kind of the previous symbol.
func (it Iterator) PrevKind() (Kind, bool) {
	sym, ok := it.Prev()
	return sym.Kind, ok
}

// Matches returns true if the upcoming symbols match kinds.
func (it Iterator) Matches(kinds ...Kind) bool {
	return it.Matcher().Matches(preds(kinds)...)
}

// ConsumedMatches is Matches, consuming the matched symbols.
func (it Iterator) ConsumedMatches(kinds ...Kind) bool {
	return it.Matcher().ConsumedMatches(preds(kinds)...)
}

// Is returns a predicate accepting symbols of the given kind, honoring the
// Any and Space wildcards.
func Is(k Kind) func(Symbol) bool {
	switch k {
	case Any:
		return func(Symbol) bool { return true }
	case Space:
		return func(sym Symbol) bool {
			return sym.Kind == Whitespace && sym.String() == " "
		}
	}
	return func(sym Symbol) bool { return sym.Kind == k }
}

// IsOneOf returns a predicate accepting symbols of any of the given kinds.
func IsOneOf(kinds ...Kind) func(Symbol) bool {
	return func(sym Symbol) bool {
		for _, k := range kinds {
			if Is(k)(sym) {
				return true
			}
		}
		return false
	}
}

func preds(kinds []Kind) []func(Symbol) bool {
	ps := make([]func(Symbol) bool, len(kinds))
	for i, k := range kinds {
		ps[i] = Is(k)
	}
	return ps
}

// Seq matches a literal kind sequence without consuming it.
type Seq []Kind

// Match implements Strategy.
func (seq Seq) Match(m Matcher) bool { return m.Matches(preds(seq)...) }

// Consume matches and consumes a literal kind sequence.
type Consume []Kind

// Match implements Strategy.
func (seq Consume) Match(m Matcher) bool { return m.ConsumedMatches(preds(seq)...) }

// Prefix consumes a line prefix; it must not contain Newline.
type Prefix []Kind

// Match implements Strategy.
// Panics if the sequence contains a Newline.
func (seq Prefix) Match(m Matcher) bool {
	for _, k := range seq {
		if k == Newline {
			panic(fmt.Sprintf("symbol.Prefix: newline in prefix %v", []Kind(seq)))
		}
	}
	return m.ConsumedMatches(preds(seq)...)
}

// BlankLine matches a Newline (or Eoi) followed by only whitespace up to the
// next Newline or Eoi. The second Newline is not part of the match, so that
// runs of blank lines can each be detected.
type BlankLine struct{}

// Match implements Strategy.
func (BlankLine) Match(m Matcher) bool { return isBlankLine(m) }

// ConsumeBlankLine is BlankLine, consuming the match.
type ConsumeBlankLine struct{}

// Match implements Strategy.
func (ConsumeBlankLine) Match(m Matcher) bool {
	if !isBlankLine(m) {
		return false
	}
	m.Consume()
	return true
}

func isBlankLine(m Matcher) bool {
	lineEnd := IsOneOf(Newline, Eoi)
	return m.Lookahead(func() bool {
		first, ok := m.PeekingNext(lineEnd)
		if !ok {
			return false
		}
		if first.Kind == Eoi {
			return true
		}
		for {
			if _, ok := m.PeekingNext(Is(Whitespace)); !ok {
				break
			}
		}
		peek := m.PeekIndex()
		last, ok := m.PeekingNext(lineEnd)
		if ok && last.Kind == Newline {
			m.SetPeekIndex(peek)
		}
		return ok
	})
}

// EmptyLine matches when only whitespace remains before the next Newline or
// Eoi; nothing is consumed, so that nested prefix strategies see the line too.
type EmptyLine struct{}

// Match implements Strategy.
func (EmptyLine) Match(m Matcher) bool {
	peek := m.PeekIndex()
	defer m.SetPeekIndex(peek)
	for {
		if _, ok := m.PeekingNext(Is(Whitespace)); !ok {
			break
		}
	}
	_, ok := m.PeekingNext(IsOneOf(Newline, Eoi))
	return ok
}

// PrevIs matches if the previous symbol has the given kind.
type PrevIs Kind

// Match implements Strategy.
func (k PrevIs) Match(m Matcher) bool {
	prev, ok := m.Prev()
	return ok && prev.Kind == Kind(k)
}

// PrevIsSpace matches if the previous symbol is whitespace, a newline, Eoi, or
// if there is no previous symbol.
type PrevIsSpace struct{}

// Match implements Strategy.
func (PrevIsSpace) Match(m Matcher) bool {
	prev, ok := m.Prev()
	return !ok || prev.Kind.IsSpace()
}
