package inline

import (
	"strings"

	"github.com/jcorbin/umark/token"
)

// parseScoped parses verbatim and math: their content is a scope of its own
// ending at the same delimiter not preceded by space, in which only escapes
// are recognized and whitespace is kept.
func parseScoped(p *parser) ([]Inline, bool) {
	open, ok := p.it.peekingNext(acceptAll)
	if !ok {
		return nil, false
	}
	if next, ok := p.it.peek(); !ok || next.mark.isSpace() {
		return nil, false
	}
	p.it.next()
	p.logf("open scoped %v", open)

	outer := p.ctx
	p.ctx.KeepWhitespaces = true
	p.ctx.LogicOnly = true
	p.it.nestScoped(token.All{
		token.Not{Strategy: token.PrevIsSpace{}},
		token.Consume{open.kind},
	})
	inner := p.parse()
	ended := p.it.endReached()
	p.it.unfold()
	p.ctx = outer

	prev, _ := p.it.prev()
	if ended {
		return []Inline{p.format(open.mark, inner, open.start, prev.end, false)}, true
	}
	return []Inline{p.format(open.mark, inner, open.start, implicitEnd(prev), true)}, true
}

// parseTextBox parses a bracketed text box, which becomes a hyperlink when
// directly followed by a parenthesized link.
func parseTextBox(p *parser) ([]Inline, bool) {
	open, ok := p.it.next()
	if !ok {
		return nil, false
	}
	p.it.nestScoped(token.Consume{token.CloseBracket})
	inner := p.parse()
	ended := p.it.endReached()
	prev, _ := p.it.prev()
	p.it.unfold()

	if ended {
		if next, ok := p.it.peek(); ok && next.mark == markOpenParenthesis {
			return []Inline{p.parseLink(open, inner)}, true
		}
	}
	return []Inline{{
		Kind:        TextBox,
		Inner:       inner,
		Start:       open.start,
		End:         coverInner(inner, implicitEnd(prev)),
		ImplicitEnd: !ended,
	}}, true
}

// parseLink parses "(link text)" after a text box: the link runs up to the
// first space, the rest is its text.
func (p *parser) parseLink(open itoken, inner []Inline) Inline {
	p.it.next()
	p.it.nestScoped(token.Consume{token.CloseParenthesis})
	var link, text strings.Builder
	for inLink := true; ; {
		tok, ok := p.it.peek()
		if !ok {
			p.it.next()
			break
		}
		if tok.mark == markEnd {
			break
		}
		p.it.next()
		switch {
		case inLink && (tok.mark == markWhitespace || tok.mark == markNewline):
			inLink = false
		case inLink:
			link.WriteString(tok.String())
		default:
			text.WriteString(tok.String())
		}
	}
	ended := p.it.endReached()
	prev, _ := p.it.prev()
	p.it.unfold()

	return Inline{
		Kind:        Hyperlink,
		Text:        text.String(),
		Link:        link.String(),
		Inner:       inner,
		Start:       open.start,
		End:         coverInner(inner, implicitEnd(prev)),
		ImplicitEnd: !ended,
	}
}

// parseGroup parses a parenthesized or braced group. Its content is spliced
// into the enclosing elements, but formats opened outside can not close
// within it, nor the other way round.
func parseGroup(p *parser) ([]Inline, bool) {
	open, ok := p.it.next()
	if !ok {
		return nil, false
	}
	p.it.nestScoped(token.Consume{open.kind.Closer()})
	inner := p.parse()
	ended := p.it.endReached()
	close, _ := p.it.prev()
	p.it.unfold()

	group := []Inline{textOf(Plain, open.String(), open)}
	group = append(group, inner...)
	if ended {
		group = append(group, textOf(Plain, close.String(), close))
	}
	return group, true
}
