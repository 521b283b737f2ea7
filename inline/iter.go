package inline

import "github.com/jcorbin/umark/token"

// openFormats is a set of open format marks, one bit per format.
type openFormats uint16

func (of openFormats) has(m mark) bool { return of&(1<<(m-markBold)) != 0 }

// tokenIter reads tokens as itokens. It holds at most one cached itoken: the
// remainder of a split ambiguous delimiter, produced before any further
// token. Open formats are tracked per scope.
type tokenIter struct {
	tokens token.Iterator

	cached      itoken
	hasCached   bool
	peekedCache bool

	// set when the last returned itoken was changed after being returned
	updatedPrev    itoken
	hasUpdatedPrev bool

	// the last itoken returned, not counting tokens consumed by end matches
	last itoken

	formats []openFormats
}

func newTokenIter(tokens token.Iterator) *tokenIter {
	return &tokenIter{
		tokens:  tokens,
		formats: []openFormats{0},
	}
}

func acceptAll(itoken) bool { return true }

func (it *tokenIter) resetPeek() {
	it.peekedCache = false
	it.tokens.ResetPeek()
}

func (it *tokenIter) peekingNext(accept func(itoken) bool) (itoken, bool) {
	if it.hasCached && !it.peekedCache {
		if !accept(it.cached) {
			return itoken{}, false
		}
		it.peekedCache = true
		return it.cached, true
	}
	peek := it.tokens.PeekIndex()
	tok, ok := it.tokens.PeekingNext(func(tok token.Token) bool {
		return accept(readToken(tok))
	})
	if !ok {
		it.tokens.SetPeekIndex(peek)
		return itoken{}, false
	}
	return readToken(tok), true
}

func (it *tokenIter) peek() (itoken, bool) {
	peek, peekedCache := it.tokens.PeekIndex(), it.peekedCache
	t, ok := it.peekingNext(acceptAll)
	it.tokens.SetPeekIndex(peek)
	it.peekedCache = peekedCache
	return t, ok
}

func (it *tokenIter) next() (itoken, bool) {
	it.peekedCache = false
	it.hasUpdatedPrev = false
	if it.hasCached {
		it.hasCached = false
		it.setPrev(it.cached)
		return it.cached, true
	}
	tok, ok := it.tokens.Next()
	if !ok {
		return itoken{}, false
	}
	it.last = readToken(tok)
	return it.last, true
}

// prev returns the itoken last returned, or the token consumed by the last
// end match.
func (it *tokenIter) prev() (itoken, bool) {
	if it.hasUpdatedPrev {
		return it.updatedPrev, true
	}
	tok, ok := it.tokens.Prev()
	if !ok {
		return itoken{}, false
	}
	return readToken(tok), true
}

func (it *tokenIter) setPrev(t itoken) {
	it.updatedPrev, it.hasUpdatedPrev = t, true
	it.last = t
}

func (it *tokenIter) cache(t itoken) {
	it.cached, it.hasCached = t, true
	it.peekedCache = false
}

func (it *tokenIter) openFormat(m mark)  { it.formats[len(it.formats)-1] |= 1 << (m - markBold) }
func (it *tokenIter) closeFormat(m mark) { it.formats[len(it.formats)-1] &^= 1 << (m - markBold) }

func (it *tokenIter) formatIsOpen(m mark) bool {
	open := it.formats[len(it.formats)-1]
	switch {
	case m == markBoldItalic:
		return open.has(markBold) || open.has(markItalic)
	case m == markUnderlineSubscript:
		return open.has(markUnderline) || open.has(markSubscript)
	case m.isFormat():
		return open.has(m)
	}
	return false
}

// formatCloses returns true if m would close an open format: a closing
// delimiter must not follow space.
func (it *tokenIter) formatCloses(m mark) bool {
	prev, ok := it.prev()
	if !ok || prev.mark.isSpace() {
		return false
	}
	return it.formatIsOpen(m)
}

// nestScoped enters a new scope with an empty open format state.
func (it *tokenIter) nestScoped(end token.Strategy) {
	it.tokens = it.tokens.NestScoped(nil, end)
	it.formats = append(it.formats, 0)
}

// unfold leaves the innermost nesting, restoring the outer open formats if
// it was scoped.
func (it *tokenIter) unfold() {
	if it.tokens.IsScoped() && len(it.formats) > 1 {
		it.formats = it.formats[:len(it.formats)-1]
	}
	it.tokens = it.tokens.Unfold()
}

func (it *tokenIter) endReached() bool { return it.tokens.EndReached() }

type checkpoint struct {
	tokens    token.Checkpoint
	cached    itoken
	hasCached bool
	formats   openFormats
}

func (it *tokenIter) checkpoint() checkpoint {
	return checkpoint{
		tokens:    it.tokens.Checkpoint(),
		cached:    it.cached,
		hasCached: it.hasCached,
		formats:   it.formats[len(it.formats)-1],
	}
}

func (it *tokenIter) rollback(cp checkpoint) bool {
	if !it.tokens.Rollback(cp.tokens) {
		return false
	}
	it.cached, it.hasCached = cp.cached, cp.hasCached
	it.peekedCache = false
	it.hasUpdatedPrev = false
	it.formats[len(it.formats)-1] = cp.formats
	return true
}

// progress identifies how far the iterator got.
type progress struct {
	index     int
	hasCached bool
	cached    int
}

func (it *tokenIter) progress() progress {
	pr := progress{index: it.tokens.Index(), hasCached: it.hasCached}
	if it.hasCached {
		pr.cached = it.cached.offset.Start
	}
	return pr
}
