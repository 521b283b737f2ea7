package cursor

// All matches if every strategy matches in order; consumption of earlier
// strategies is undone if a later one fails.
type All[T Item] []Strategy[T]

// Match implements Strategy.
func (ss All[T]) Match(m Matcher[T]) bool {
	index, peek := m.it.index, m.it.peek
	for _, s := range ss {
		if !s.Match(m) {
			m.it.SetIndex(index)
			m.it.SetPeekIndex(peek)
			return false
		}
	}
	return true
}

// Any matches the first strategy that matches.
type Any[T Item] []Strategy[T]

// Match implements Strategy.
func (ss Any[T]) Match(m Matcher[T]) bool {
	for _, s := range ss {
		if s.Match(m) {
			return true
		}
	}
	return false
}

// Not inverts a strategy, never consuming anything.
type Not[T Item] struct{ Strategy[T] }

// Match implements Strategy.
func (n Not[T]) Match(m Matcher[T]) bool {
	index, peek := m.it.index, m.it.peek
	matched := n.Strategy.Match(m)
	m.it.SetIndex(index)
	m.it.SetPeekIndex(peek)
	return !matched
}

// OuterEnd matches if a parent frame ended or would end before the next
// item.
type OuterEnd[T Item] struct{}

// Match implements Strategy.
func (OuterEnd[T]) Match(m Matcher[T]) bool { return m.OuterEnd() }
