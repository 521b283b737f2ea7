package inline

import "github.com/jcorbin/umark/symbol"

// parseDistinct parses formats whose delimiter no other format shares, such
// as strikethrough. They close on the same delimiter, or implicitly before
// any other closing delimiter.
func parseDistinct(p *parser) ([]Inline, bool) {
	open, ok := p.it.peekingNext(acceptAll)
	if !ok {
		return nil, false
	}
	if next, ok := p.it.peek(); !ok || next.mark.isSpace() {
		return nil, false
	}
	p.it.next()
	p.openFormat(open.mark)
	p.logf("open %v", open)

	inner := p.parse()

	var in Inline
	if close, ok := p.it.peek(); ok && close.mark == open.mark {
		p.it.next()
		in = p.format(open.mark, inner, open.start, close.end, false)
	} else if ok {
		p.logf("implicit close of %v at %v", open, close)
		in = p.format(open.mark, inner, open.start, close.start, true)
	} else {
		in = p.format(open.mark, inner, open.start, implicitEnd(p.it.last), true)
	}
	p.it.closeFormat(open.mark)
	return []Inline{in}, true
}

// parseAmbiguous parses formats that share their delimiter keyword with a
// counterpart: bold and italic, underline and subscript. A combined
// delimiter opens both at once, and is split once the order in which they
// close is known.
func parseAmbiguous(p *parser) ([]Inline, bool) {
	open, ok := p.it.peekingNext(acceptAll)
	if !ok {
		return nil, false
	}
	if next, ok := p.it.peek(); !ok || next.mark.isSpace() {
		// only the main part is followed by non space now
		if !open.mark.isAmbiguous() {
			return nil, false
		}
		p.it.next()
		head, tail := split(open, open.mark.main())
		p.logf("split %v before space into %v and %v", open, head, tail)
		p.it.cache(tail)
		open = head
	} else {
		p.it.next()
	}

	if open.mark.isAmbiguous() {
		p.openFormat(open.mark.main())
		p.openFormat(open.mark.sub())
	} else {
		p.openFormat(open.mark)
	}
	p.logf("open %v", open)

	inner := p.parse()
	return p.resolveClosing(open, inner), true
}

// resolveClosing closes the format opened by open, given the token that
// ended its inner content.
func (p *parser) resolveClosing(open itoken, inner []Inline) []Inline {
	close, ok := p.it.peek()
	if !ok {
		end := implicitEnd(p.it.last)
		return []Inline{p.toInline(open, inner, end, end, true)}
	}

	var (
		outer   []Inline
		updated itoken
	)
	switch {
	case open.mark == close.mark:
		p.it.next()
		innerEnd := close.end
		if open.mark.isAmbiguous() {
			head, _ := split(close, open.mark.sub())
			innerEnd = head.end
		}
		p.logf("close %v with %v", open, close)
		return []Inline{p.toInline(open, inner, innerEnd, close.end, false)}

	case open.mark == close.mark.counterpart():
		// e.g. bold closed implicitly by the italic close of "*a **b*"
		p.logf("implicit close of %v at %v", open, close)
		return []Inline{p.toInline(open, inner, close.start, close.start, true)}

	case close.mark.isAmbiguous() && close.mark == open.mark.ambiguous():
		// e.g. the "***" of "**bold***italic*" closes bold, leaving italic
		p.it.next()
		p.it.closeFormat(open.mark)
		head, tail := split(close, open.mark)
		p.logf("split %v into %v closing %v and %v", close, head, open, tail)
		p.it.cache(tail)
		return []Inline{p.format(open.mark, inner, open.start, head.end, false)}

	case open.mark == close.mark.ambiguous():
		// e.g. the "**" of "***bold**italic*" closes bold, italic remains
		p.it.next()
		p.it.closeFormat(close.mark)
		head, tail := split(open, close.mark.counterpart())
		p.logf("split %v into %v and %v closed by %v", open, head, tail, close)
		outer = append(outer, p.format(close.mark, inner, tail.start, close.end, false))
		updated = head

	default:
		// an unrelated closer ends some outer format, and this one with it
		p.logf("implicit close of %v at %v", open, close)
		return []Inline{p.toInline(open, inner, close.start, close.start, true)}
	}

	for _, in := range p.parse() {
		outer = appendInline(outer, in)
	}
	p.it.closeFormat(updated.mark)

	close, ok = p.it.peek()
	switch {
	case ok && close.mark == updated.mark:
		p.it.next()
		p.logf("close %v with %v", updated, close)
		return []Inline{p.format(updated.mark, outer, updated.start, close.end, false)}

	case ok && close.mark.isAmbiguous() && close.mark == updated.mark.ambiguous():
		p.it.next()
		head, tail := split(close, updated.mark)
		p.logf("split %v into %v closing %v and %v", close, head, updated, tail)
		p.it.cache(tail)
		return []Inline{p.format(updated.mark, outer, updated.start, head.end, false)}

	case ok:
		if updated.mark.compatible(close.mark) {
			p.defect("%v cannot close %v", close, updated)
		}
		p.logf("implicit close of %v at %v", updated, close)
		return []Inline{p.format(updated.mark, outer, updated.start, close.start, true)}
	}

	return []Inline{p.format(updated.mark, outer, updated.start, implicitEnd(p.it.last), true)}
}

// toInline closes the format opened by open. An ambiguous open becomes the
// main format wrapping the sub format, which ends at innerEnd.
func (p *parser) toInline(open itoken, inner []Inline, innerEnd, end symbol.Position, implicit bool) Inline {
	if !open.mark.isAmbiguous() {
		p.it.closeFormat(open.mark)
		return p.format(open.mark, inner, open.start, end, implicit)
	}
	p.it.closeFormat(open.mark.main())
	p.it.closeFormat(open.mark.sub())
	outer, sub := split(open, open.mark.main())
	return p.format(outer.mark, []Inline{
		p.format(sub.mark, inner, sub.start, innerEnd, implicit),
	}, outer.start, end, implicit)
}

// ambiguousSplit splits a combined delimiter that is taken as content while
// one of its parts is open; the part that may close is cached to be read
// next.
func (p *parser) ambiguousSplit(tok itoken) itoken {
	if !tok.mark.isAmbiguous() {
		return tok
	}
	var first mark
	switch {
	case p.it.formatIsOpen(tok.mark.main()):
		first = tok.mark.sub()
	case p.it.formatIsOpen(tok.mark.sub()):
		first = tok.mark.main()
	default:
		return tok
	}
	head, tail := split(tok, first)
	p.logf("split %v into content %v and %v", tok, head, tail)
	p.it.cache(tail)
	return head
}

func (p *parser) openFormat(m mark) {
	if !m.isFormat() || m.isAmbiguous() {
		p.defect("%v has no open format state", m)
		return
	}
	p.it.openFormat(m)
}

// format builds a format element; marks that open no format degrade to
// plain content.
func (p *parser) format(m mark, inner []Inline, start, end symbol.Position, implicit bool) Inline {
	kind, ok := m.kind()
	if !ok || !kind.IsFormat() {
		p.defect("%v is not a format", m)
		return Inline{Kind: Plain, Text: PlainString(inner), Start: start, End: end}
	}
	return Inline{
		Kind:        kind,
		Inner:       inner,
		Start:       start,
		End:         coverInner(inner, end),
		ImplicitEnd: implicit,
	}
}
