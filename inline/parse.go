package inline

import (
	"fmt"
	"strings"

	"github.com/jcorbin/umark/symbol"
	"github.com/jcorbin/umark/token"
)

// Context controls how inline content is parsed.
type Context struct {
	// KeepWhitespaces keeps every whitespace token, rather than collapsing
	// runs into one space.
	KeepWhitespaces bool

	// KeepNewline keeps newlines as Newline elements, rather than
	// ImplicitNewline ones that render as a space.
	KeepNewline bool

	// LogicOnly parses only escapes besides plain content.
	LogicOnly bool

	// Logf, if set, receives a trace of delimiter resolution.
	Logf func(format string, args ...interface{})
}

// Parsed is the result of parsing inline content from a token iterator.
type Parsed struct {
	Inlines []Inline

	// EndReached is true if the end strategy of the iterator matched.
	EndReached bool

	// PrefixMismatch is true if a line did not carry the iterator's prefix.
	PrefixMismatch bool
}

// Parse parses the inline content of input, up to its first blank line.
func Parse(input string, ctx Context) []Inline {
	return ParseTokens(token.NewIterator(token.Lex(input)), ctx).Inlines
}

// ParseTokens parses inline content from it, which may be nested with the end
// and prefix strategies of a block element. The progress is merged back into
// it.
func ParseTokens(it token.Iterator, ctx Context) Parsed {
	p := parser{
		it:  newTokenIter(it.NewScopeRoot(nil, nil)),
		ctx: ctx,
	}
	inlines := p.parse()
	p.it.tokens.Update(it)
	return Parsed{
		Inlines:        inlines,
		EndReached:     it.EndReached(),
		PrefixMismatch: it.PrefixMismatch(),
	}
}

type parser struct {
	it  *tokenIter
	ctx Context
}

// parseFunc parses one element, returning false if the token at hand does
// not start one after all.
type parseFunc func(p *parser) ([]Inline, bool)

func (p *parser) logf(format string, args ...interface{}) {
	if p.ctx.Logf != nil {
		p.ctx.Logf(format, args...)
	}
}

// defect reports a state that is unreachable by construction.
func (p *parser) defect(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if debugDefects {
		panic("inline: " + msg)
	}
	p.logf("defect: %s", msg)
}

// parse parses elements until the iterator ends, or until the token at hand
// closes an open format; such a closing token is left for the format parser
// that opened it.
func (p *parser) parse() (inlines []Inline) {
	p.it.resetPeek()
	for {
		tok, ok := p.it.peek()
		if !ok {
			// consume whatever the end strategies matched
			p.it.next()
			return inlines
		}
		if tok.mark == markEnd {
			return inlines
		}

		var fn parseFunc
		switch m := tok.mark; {
		case p.ctx.LogicOnly:
		case m.isScoped() || m.isOpenParenthesis():
			fn = scopedParser(m)
		case m.isFormat():
			if p.it.formatCloses(m) {
				return inlines
			}
			if !p.it.formatIsOpen(m) {
				fn = formatParser(m)
			}
		}

		if fn != nil {
			before := p.it.progress()
			cp := p.it.checkpoint()
			if elems, ok := fn(p); ok {
				if p.it.progress() != before {
					for _, in := range elems {
						inlines = appendInline(inlines, in)
					}
					continue
				}
				p.defect("no progress at %v", tok)
			} else if !p.it.rollback(cp) {
				p.defect("rollback failed at %v", tok)
			}
		}

		inlines = p.parseBase(inlines)
	}
}

func formatParser(m mark) parseFunc {
	switch m {
	case markBold, markItalic, markBoldItalic,
		markUnderline, markSubscript, markUnderlineSubscript:
		return parseAmbiguous
	case markStrikethrough, markSuperscript, markHighlight, markOverline, markQuote:
		return parseDistinct
	}
	return nil
}

func scopedParser(m mark) parseFunc {
	switch m {
	case markVerbatim, markMath:
		return parseScoped
	case markOpenBracket:
		return parseTextBox
	case markOpenParenthesis, markOpenBrace:
		return parseGroup
	}
	return nil
}

// parseBase consumes one token as content.
func (p *parser) parseBase(inlines []Inline) []Inline {
	tok, ok := p.it.next()
	if !ok {
		return inlines
	}
	switch tok.mark {
	case markWhitespace:
		if p.ctx.KeepWhitespaces {
			return appendInline(inlines, textOf(Plain, tok.String(), tok))
		}
		in := textOf(Plain, " ", tok)
		for {
			next, ok := p.it.peek()
			if !ok || next.mark != markWhitespace {
				break
			}
			p.it.next()
			in.End = next.end
		}
		return appendInline(inlines, in)

	case markNewline:
		if p.ctx.KeepNewline {
			return append(inlines, textOf(Newline, "", tok))
		}
		return append(inlines, textOf(ImplicitNewline, "", tok))

	case markEscapedNewline:
		return append(inlines, textOf(EscapedNewline, "", tok))

	case markEscapedPlain:
		return append(inlines, textOf(EscapedPlain, strings.TrimPrefix(tok.String(), `\`), tok))

	case markEscapedWhitespace:
		return append(inlines, textOf(EscapedWhitespace, strings.TrimPrefix(tok.String(), `\`), tok))
	}

	if tok.mark.isKeyword() {
		// a delimiter that did not open or close anything is content, but
		// part of an ambiguous one may still close an open format
		tok = p.ambiguousSplit(tok)
		tok.mark = markPlain
		p.it.setPrev(tok)
	}
	return appendInline(inlines, textOf(Plain, tok.String(), tok))
}

func textOf(kind Kind, text string, tok itoken) Inline {
	return Inline{
		Kind:  kind,
		Text:  text,
		Start: tok.start,
		End:   tok.end,
	}
}

// coverInner extends end over the last inner element, which may be a line
// end taken as content before an implicit close.
func coverInner(inner []Inline, end symbol.Position) symbol.Position {
	if n := len(inner); n > 0 && end.Less(inner[n-1].End) {
		return inner[n-1].End
	}
	return end
}

// appendInline appends in, merging adjacent plain content.
func appendInline(inlines []Inline, in Inline) []Inline {
	if in.Kind == Plain && len(inlines) > 0 {
		if last := &inlines[len(inlines)-1]; last.Kind == Plain {
			last.Text += in.Text
			last.End = in.End
			return inlines
		}
	}
	return append(inlines, in)
}
