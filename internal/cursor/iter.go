// Package cursor implements a cooperative, nestable two-cursor iterator over
// an immutable item buffer.
//
// Every Iter carries a committed index, advanced only by Next, and a peek
// index, advanced by speculative lookahead. Nesting an iterator pushes a
// frame that may carry an end Strategy, checked before each item is
// produced, and a prefix Strategy, run after each line ending item to strip
// the continuation prefix of the next line.
//
// Nested iterators are structural copies: a child never aliases the frame
// stack of its parent, and must be merged back explicitly with Update,
// Progress or Unfold.
package cursor

// Item is an element of an iterated buffer.
type Item interface {
	// LineEnd returns true if the item ends a line, after which line prefix
	// strategies run.
	LineEnd() bool
}

// Strategy is a matcher strategy used to detect iterator ends or to consume
// line prefixes.
type Strategy[T Item] interface {
	Match(m Matcher[T]) bool
}

// Func adapts an ordinary function into a Strategy.
type Func[T Item] func(m Matcher[T]) bool

// Match calls the function.
func (f Func[T]) Match(m Matcher[T]) bool { return f(m) }

type frame[T Item] struct {
	start   int // index when the frame was pushed
	match   int // end of the last successful match
	scope   int
	scoped  bool
	skipEnd int // end matching is skipped while peeking before this index

	prefix Strategy[T]
	end    Strategy[T]

	ended    bool
	mismatch bool
	inNext   bool
	inPeek   bool

	prefixStart    T
	prefixAt       int // committed index after the prefix of prefixStart
	hasPrefixStart bool

	root      bool // frame sits directly on a scope root
	rootScope int  // active scope depth of that root
}

// Iter is a cursor over an item buffer, viewed through a stack of frames.
// The zero value is an exhausted iterator; use New.
type Iter[T Item] struct {
	items  []T
	index  int
	peek   int
	frames []frame[T]
}

// Checkpoint records iterator state for a later Rollback.
// Peek state is not preserved.
type Checkpoint[T Item] struct {
	index          int
	start          int
	skipEnd        int
	prefixStart    T
	prefixAt       int
	hasPrefixStart bool
}

// SkipEndUntil defers end matching while peeking until the given index.
func (cp *Checkpoint[T]) SkipEndUntil(index int) {
	if cp.skipEnd < index {
		cp.skipEnd = index
	}
}

// New creates a root iterator over items with optional prefix and end
// strategies.
func New[T Item](items []T, prefix, end Strategy[T]) *Iter[T] {
	return &Iter[T]{
		items: items,
		frames: []frame[T]{{
			prefix: prefix,
			end:    end,
			root:   true,
		}},
	}
}

func (it *Iter[T]) top() int { return len(it.frames) - 1 }

// Items returns the whole backing buffer.
func (it *Iter[T]) Items() []T { return it.items }

// MaxLen returns the number of items remaining in the backing buffer; fewer
// may be produced due to strategies.
func (it *Iter[T]) MaxLen() int {
	if n := len(it.items) - it.index; n > 0 {
		return n
	}
	return 0
}

// Empty returns true if the backing buffer has no items left.
func (it *Iter[T]) Empty() bool { return it.MaxLen() == 0 }

// Index returns the committed index into the backing buffer.
func (it *Iter[T]) Index() int { return it.index }

// SetIndex moves the committed index, resetting peek to it.
func (it *Iter[T]) SetIndex(index int) {
	it.index = index
	it.peek = index
}

// PeekIndex returns the index of the next peeked item.
func (it *Iter[T]) PeekIndex() int { return it.peek }

// SetPeekIndex moves the peek index; it is never moved behind the committed
// index.
func (it *Iter[T]) SetPeekIndex(index int) {
	if index >= it.index {
		it.peek = index
	}
}

// ResetPeek rewinds the peek index to the committed index.
func (it *Iter[T]) ResetPeek() { it.peek = it.index }

// SkipToPeek commits everything peeked so far.
func (it *Iter[T]) SkipToPeek() { it.SetIndex(it.peek) }

// StartIndex returns the committed index at the time the innermost frame was
// nested.
func (it *Iter[T]) StartIndex() int { return it.frames[it.top()].start }

// Scope returns the scope depth of the innermost frame.
func (it *Iter[T]) Scope() int { return it.frames[it.top()].scope }

// RootScope returns the active scope depth of the nearest scope root.
func (it *Iter[T]) RootScope() int { return it.rootScope(it.top()) }

// SetScope sets the active scope depth of the nearest scope root.
func (it *Iter[T]) SetScope(scope int) { it.setRootScope(it.top(), scope) }

// IsNested returns true if the iterator has parent frames.
func (it *Iter[T]) IsNested() bool { return len(it.frames) > 1 }

// IsScoped returns true if the innermost frame opened a new scope.
func (it *Iter[T]) IsScoped() bool { return it.frames[it.top()].scoped }

// Depth returns the number of frames.
func (it *Iter[T]) Depth() int { return len(it.frames) }

// EndReached returns true once the end strategy of the innermost frame
// matched.
func (it *Iter[T]) EndReached() bool { return it.frames[it.top()].ended }

// PrefixMismatch returns true once the prefix strategy of the innermost frame
// declined a line.
func (it *Iter[T]) PrefixMismatch() bool { return it.frames[it.top()].mismatch }

// Next returns the next committed item, or false if an end matched, a line
// prefix was declined, or the buffer is exhausted.
func (it *Iter[T]) Next() (T, bool) { return it.nextAt(it.top()) }

// PeekingNext returns the next peeked item if accept returns true for it,
// advancing only the peek index.
func (it *Iter[T]) PeekingNext(accept func(T) bool) (T, bool) {
	return it.peekAt(it.top(), accept)
}

// Peek returns the next peeked item without moving the peek index.
func (it *Iter[T]) Peek() (T, bool) {
	peek := it.peek
	item, ok := it.peekAt(it.top(), acceptAll[T])
	it.SetPeekIndex(peek)
	return item, ok
}

// PeekNth peeks n items past the next peeked item, leaving the peek index
// after it.
func (it *Iter[T]) PeekNth(n int) (item T, ok bool) {
	for i := 0; i <= n; i++ {
		if item, ok = it.peekAt(it.top(), acceptAll[T]); !ok {
			return item, false
		}
	}
	return item, ok
}

// PeekingTakeWhile peeks items while accept returns true for them.
func (it *Iter[T]) PeekingTakeWhile(accept func(T) bool) (items []T) {
	for {
		item, ok := it.peekAt(it.top(), accept)
		if !ok {
			return items
		}
		items = append(items, item)
	}
}

// Prev returns the item last produced by Next or consumed by a match.
// A line ending item that preceded a consumed line prefix wins over the raw
// previous item.
func (it *Iter[T]) Prev() (T, bool) { return it.prevAt(it.top()) }

// TakeToEnd collects items until Next returns false.
func (it *Iter[T]) TakeToEnd() (items []T) {
	for {
		item, ok := it.Next()
		if !ok {
			return items
		}
		items = append(items, item)
	}
}

// SkipToEnd discards items until Next returns false.
func (it *Iter[T]) SkipToEnd() {
	for {
		if _, ok := it.Next(); !ok {
			return
		}
	}
}

// Matcher returns a matcher over the innermost frame, allowing strategies to
// be applied directly; consumed matches advance the committed index.
func (it *Iter[T]) Matcher() Matcher[T] { return Matcher[T]{it, it.top()} }

// Checkpoint saves state to rollback to later.
func (it *Iter[T]) Checkpoint() Checkpoint[T] {
	f := &it.frames[it.top()]
	return Checkpoint[T]{
		index:          it.index,
		start:          f.start,
		skipEnd:        f.skipEnd,
		prefixStart:    f.prefixStart,
		prefixAt:       f.prefixAt,
		hasPrefixStart: f.hasPrefixStart,
	}
}

// Rollback restores a checkpoint taken from the same nesting, returning false
// if the checkpoint belongs to another one.
func (it *Iter[T]) Rollback(cp Checkpoint[T]) bool {
	f := &it.frames[it.top()]
	if f.start != cp.start {
		return false
	}
	it.SetIndex(cp.index)
	f.skipEnd = cp.skipEnd
	f.prefixStart = cp.prefixStart
	f.prefixAt = cp.prefixAt
	f.hasPrefixStart = cp.hasPrefixStart
	f.ended = false
	f.mismatch = false
	return true
}

// Nest returns a child iterator viewing this one through a new frame with the
// given optional strategies. The receiver must not be used until the child
// is merged back.
func (it *Iter[T]) Nest(prefix, end Strategy[T]) *Iter[T] {
	cur := it.frames[it.top()]
	return it.push(frame[T]{
		start:          it.index,
		scope:          cur.scope,
		prefix:         prefix,
		end:            end,
		ended:          cur.ended,
		mismatch:       cur.mismatch,
		prefixStart:    cur.prefixStart,
		prefixAt:       cur.prefixAt,
		hasPrefixStart: cur.hasPrefixStart,
	})
}

// NestScoped is like Nest, but pushes a new scope. Strategies of scoped
// frames only run while their scope is the active one.
func (it *Iter[T]) NestScoped(prefix, end Strategy[T]) *Iter[T] {
	cur := it.frames[it.top()]
	child := it.push(frame[T]{
		start:          it.index,
		scope:          cur.scope + 1,
		scoped:         true,
		prefix:         prefix,
		end:            end,
		ended:          cur.ended,
		mismatch:       cur.mismatch,
		prefixStart:    cur.prefixStart,
		prefixAt:       cur.prefixAt,
		hasPrefixStart: cur.hasPrefixStart,
	})
	child.setRootScope(child.top()-1, cur.scope+1)
	return child
}

// NewScopeRoot is like Nest, but starts a fresh scope counter; scoped
// parent frames keep matching as if the child were not there.
func (it *Iter[T]) NewScopeRoot(prefix, end Strategy[T]) *Iter[T] {
	return it.push(frame[T]{
		start:  it.index,
		prefix: prefix,
		end:    end,
		root:   true,
	})
}

func (it *Iter[T]) push(f frame[T]) *Iter[T] {
	frames := it.frames[:len(it.frames):len(it.frames)]
	return &Iter[T]{
		items:  it.items,
		index:  it.index,
		peek:   it.peek,
		frames: append(frames, f),
	}
}

// Update merges child state into parent, as if parent consumed exactly what
// the child did; the parent scope is restored.
// Panics if child was not nested from parent.
func (it *Iter[T]) Update(parent *Iter[T]) {
	n := len(parent.frames)
	if n >= len(it.frames) {
		panic("cursor: update target is not a parent iterator")
	}
	copy(parent.frames, it.frames[:n])
	parent.index = it.index
	parent.peek = it.peek
	if !it.frames[n].root {
		parent.setRootScope(n-1, parent.frames[n-1].scope)
	}
}

// Progress merges the state of a child into the receiver.
func (it *Iter[T]) Progress(child *Iter[T]) { child.Update(it) }

// Unfold returns the parent view of a nested iterator; a root iterator is
// returned unchanged.
func (it *Iter[T]) Unfold() *Iter[T] {
	n := it.top()
	if n == 0 {
		return it
	}
	parent := &Iter[T]{
		items:  it.items,
		frames: make([]frame[T], n),
	}
	it.Update(parent)
	return parent
}

func (it *Iter[T]) rootScope(level int) int {
	for ; level > 0; level-- {
		if it.frames[level].root {
			break
		}
	}
	return it.frames[level].rootScope
}

func (it *Iter[T]) setRootScope(level, scope int) {
	for ; level > 0; level-- {
		if it.frames[level].root {
			break
		}
	}
	it.frames[level].rootScope = scope
}

func (it *Iter[T]) inScope(level int) bool {
	f := &it.frames[level]
	return !f.scoped || f.scope == it.rootScope(level)
}

// prevAt prefers the line end item of the innermost frame whose line prefix
// was the last thing consumed; anything consumed since, by this frame or a
// nested one, makes it stale.
func (it *Iter[T]) prevAt(level int) (item T, ok bool) {
	for ; level >= 0; level-- {
		if f := &it.frames[level]; f.hasPrefixStart && f.prefixAt == it.index {
			return f.prefixStart, true
		}
	}
	if it.index > 0 && it.index <= len(it.items) {
		return it.items[it.index-1], true
	}
	return item, false
}

func (it *Iter[T]) nextAt(level int) (item T, ok bool) {
	if level < 0 {
		if it.index >= len(it.items) {
			return item, false
		}
		item = it.items[it.index]
		it.index++
		it.peek = it.index
		return item, true
	}

	f := &it.frames[level]
	var zero T
	f.prefixStart, f.hasPrefixStart = zero, false
	if f.mismatch || f.ended {
		return item, false
	}
	it.ResetPeek()

	inScope := it.inScope(level)
	if inScope && f.end != nil && f.skipEnd <= it.index {
		f.inNext = true
		matched := f.end.Match(Matcher[T]{it, level})
		f = &it.frames[level]
		f.inNext = false
		if matched {
			f.ended = true
			return item, false
		}
	}

	item, ok = it.nextAt(level - 1)
	f = &it.frames[level]
	if ok && item.LineEnd() {
		f.prefixStart, f.hasPrefixStart = item, true
		if inScope && f.prefix != nil {
			f.inNext = true
			matched := f.prefix.Match(Matcher[T]{it, level})
			f = &it.frames[level]
			f.inNext = false
			if !matched {
				f.mismatch = true
				return zero, false
			}
		}
		f.prefixAt = it.index
	}
	return item, ok
}

func (it *Iter[T]) peekAt(level int, accept func(T) bool) (item T, ok bool) {
	if level < 0 {
		if it.peek >= len(it.items) {
			return item, false
		}
		if item = it.items[it.peek]; !accept(item) {
			var zero T
			return zero, false
		}
		it.peek++
		return item, true
	}

	f := &it.frames[level]
	if f.mismatch || f.ended {
		return item, false
	}

	inScope := it.inScope(level)
	matching := f.inNext || f.inPeek
	if inScope && !matching && f.end != nil && f.skipEnd <= it.peek {
		peek := it.peek
		f.inPeek = true
		matched := f.end.Match(Matcher[T]{it, level})
		f = &it.frames[level]
		f.inPeek = false
		it.SetPeekIndex(peek)
		if matched {
			return item, false
		}
		if f.skipEnd < it.peek {
			f.skipEnd = it.peek
		}
	}

	item, ok = it.peekAt(level-1, accept)
	if !ok {
		return item, false
	}
	f = &it.frames[level]
	if inScope && !matching && item.LineEnd() && f.prefix != nil {
		peek := it.peek
		f.inPeek = true
		matched := f.prefix.Match(Matcher[T]{it, level})
		f = &it.frames[level]
		f.inPeek = false
		if !matched {
			it.SetPeekIndex(peek)
			var zero T
			return zero, false
		}
	}
	return item, true
}

func acceptAll[T Item](T) bool { return true }
