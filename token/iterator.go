package token

import (
	"fmt"

	"github.com/jcorbin/umark/internal/cursor"
)

// Matcher is handed to strategies when an Iterator checks for its end or
// strips a line prefix.
type Matcher = cursor.Matcher[Token]

// Strategy decides iterator ends and consumes line prefixes.
type Strategy = cursor.Strategy[Token]

// Checkpoint is iterator state saved for a later Rollback.
type Checkpoint = cursor.Checkpoint[Token]

// Strategy combinators.
type (
	All      = cursor.All[Token]
	OneOf    = cursor.Any[Token]
	Not      = cursor.Not[Token]
	OuterEnd = cursor.OuterEnd[Token]
)

// Func adapts an ad hoc predicate into a Strategy.
type Func = cursor.Func[Token]

// Iterator is a nestable, scope aware cursor over tokens.
type Iterator struct {
	*cursor.Iter[Token]
}

// NewIterator returns a root iterator over tokens without strategies.
func NewIterator(tokens []Token) Iterator {
	return Iterator{cursor.New(tokens, nil, nil)}
}

// NewIteratorWith returns a root iterator over tokens with the given
// optional prefix and end strategies.
func NewIteratorWith(tokens []Token, prefix, end Strategy) Iterator {
	return Iterator{cursor.New(tokens, prefix, end)}
}

// Nest returns a child iterator with optional prefix and end strategies.
func (it Iterator) Nest(prefix, end Strategy) Iterator {
	return Iterator{it.Iter.Nest(prefix, end)}
}

// NestScoped returns a child iterator in a new scope; the strategies of
// scoped parents pause until it is unfolded.
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

// PeekKind returns the kind of the next token.
func (it Iterator) PeekKind() (Kind, bool) {
	tok, ok := it.Peek()
	return tok.Kind, ok
}

// PrevKind returns the kind of the previous token.
func (it Iterator) PrevKind() (Kind, bool) {
	tok, ok := it.Prev()
	return tok.Kind, ok
}

// Matches returns true if the upcoming tokens match kinds.
func (it Iterator) Matches(kinds ...Kind) bool {
	return it.Matcher().Matches(preds(kinds)...)
}

// ConsumedMatches is Matches, consuming the matched tokens.
func (it Iterator) ConsumedMatches(kinds ...Kind) bool {
	return it.Matcher().ConsumedMatches(preds(kinds)...)
}

// Is returns a predicate accepting tokens that match the pattern kind,
// honoring the Any and Space wildcards.
func Is(k Kind) func(Token) bool {
	if k == Space {
		return func(tok Token) bool {
			return tok.Kind == Whitespace && tok.String() == " "
		}
	}
	return func(tok Token) bool { return tok.Kind.Matches(k) }
}

// IsOneOf returns a predicate accepting tokens matching any of kinds.
func IsOneOf(kinds ...Kind) func(Token) bool {
	return func(tok Token) bool {
		for _, k := range kinds {
			if Is(k)(tok) {
				return true
			}
		}
		return false
	}
}

func preds(kinds []Kind) []func(Token) bool {
	ps := make([]func(Token) bool, len(kinds))
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

// Prefix consumes a line prefix; it must contain neither Newline nor
// Blankline.
type Prefix []Kind

// Match implements Strategy.
// Panics if the sequence contains a line end kind.
func (seq Prefix) Match(m Matcher) bool {
	for _, k := range seq {
		if k == Newline || k == Blankline {
			panic(fmt.Sprintf("token.Prefix: line end in prefix %v", []Kind(seq)))
		}
	}
	return m.ConsumedMatches(preds(seq)...)
}

// BlankLine matches a Blankline token or Eoi.
type BlankLine struct{}

// Match implements Strategy.
func (BlankLine) Match(m Matcher) bool { return isBlankLine(m) }

// ConsumeBlankLine is BlankLine, consuming a matched Blankline token; Eoi is
// left in place.
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
	return m.Lookahead(func() bool {
		if _, ok := m.PeekingNext(Is(Blankline)); ok {
			return true
		}
		tok, ok := m.Peek()
		return ok && tok.Kind == Eoi
	})
}

// EmptyLine matches when only whitespace remains before the next line end
// or Eoi; nothing is consumed, so that nested prefix strategies see the line
// too.
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
	_, ok := m.PeekingNext(IsOneOf(Newline, Blankline, Eoi))
	return ok
}

// PrevIs matches if the previous token matches the given kind.
type PrevIs Kind

// Match implements Strategy.
func (k PrevIs) Match(m Matcher) bool {
	prev, ok := m.Prev()
	return ok && prev.Kind.Matches(Kind(k))
}

// PrevIsSpace matches if the previous token is whitespace, a line end, Eoi,
// or if there is no previous token.
type PrevIsSpace struct{}

// Match implements Strategy.
func (PrevIsSpace) Match(m Matcher) bool {
	prev, ok := m.Prev()
	return !ok || prev.Kind.IsSpace()
}
