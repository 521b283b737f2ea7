package cursor

// Matcher is the capability handed to strategies. It views an iterator from
// one of its frames: peeking through a matcher skips the strategies of that
// frame, but honors those of its parents.
type Matcher[T Item] struct {
	it    *Iter[T]
	level int
}

// Index returns the committed index.
func (m Matcher[T]) Index() int { return m.it.index }

// PeekIndex returns the peek index.
func (m Matcher[T]) PeekIndex() int { return m.it.peek }

// SetPeekIndex moves the peek index, never behind the committed index.
func (m Matcher[T]) SetPeekIndex(index int) { m.it.SetPeekIndex(index) }

// Peeking returns true if the matcher runs on behalf of a peek rather than a
// Next; consumed matches then only advance the peek index.
func (m Matcher[T]) Peeking() bool { return m.it.frames[m.level].inPeek }

// PeekingNext peeks the next item if accept returns true for it.
func (m Matcher[T]) PeekingNext(accept func(T) bool) (T, bool) {
	return m.it.peekAt(m.level, accept)
}

// Peek returns the next item without moving the peek index.
func (m Matcher[T]) Peek() (T, bool) {
	peek := m.it.peek
	item, ok := m.it.peekAt(m.level, acceptAll[T])
	m.it.SetPeekIndex(peek)
	return item, ok
}

// Lookahead runs fn, which may peek freely. If fn returns true, the match
// index is set to where peeking stopped. The peek index is always restored.
func (m Matcher[T]) Lookahead(fn func() bool) bool {
	peek := m.it.peek
	ok := fn()
	if ok && m.it.peek >= m.it.index {
		m.it.frames[m.level].match = m.it.peek
	}
	m.it.SetPeekIndex(peek)
	return ok
}

// Matches returns true if the upcoming items are each accepted by the
// corresponding predicate. Nothing is consumed.
func (m Matcher[T]) Matches(seq ...func(T) bool) bool {
	return m.Lookahead(func() bool {
		for _, accept := range seq {
			if _, ok := m.it.peekAt(m.level, accept); !ok {
				return false
			}
		}
		return true
	})
}

// Consume advances over the last successful match: the peek index always,
// the committed index unless the matcher is peeking.
func (m Matcher[T]) Consume() {
	match := m.it.frames[m.level].match
	m.it.SetPeekIndex(match)
	if !m.Peeking() {
		m.it.SetIndex(match)
	}
}

// ConsumedMatches is Matches followed by Consume on success.
func (m Matcher[T]) ConsumedMatches(seq ...func(T) bool) bool {
	if !m.Matches(seq...) {
		return false
	}
	m.Consume()
	return true
}

// Prev returns the item last produced or consumed.
func (m Matcher[T]) Prev() (T, bool) { return m.it.prevAt(m.level) }

// OuterEnd returns true if a parent frame already ended, or would end before
// the next item.
func (m Matcher[T]) OuterEnd() bool {
	if m.level == 0 {
		return false
	}
	for l := m.level - 1; l >= 0; l-- {
		if f := &m.it.frames[l]; f.ended || f.mismatch {
			return true
		}
	}
	peek := m.it.peek
	_, ok := m.it.peekAt(m.level-1, acceptAll[T])
	m.it.SetPeekIndex(peek)
	return !ok
}
