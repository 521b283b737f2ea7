package block

import (
	"github.com/jcorbin/umark/inline"
	"github.com/jcorbin/umark/internal/scanio"
	"github.com/jcorbin/umark/token"
)

// MaxHeadingLevel is the deepest heading level; longer hash runs start a
// paragraph.
const MaxHeadingLevel = 6

// Parse splits input into blocks.
func Parse(input string, ctx inline.Context) []Block {
	return ParseTokens(token.NewIterator(token.Lex(input)), ctx)
}

// ParseTokens parses blocks from it until Eoi, or until it ends.
func ParseTokens(it token.Iterator, ctx inline.Context) (blocks []Block) {
	for {
		// blank lines and leading space separate blocks
		for {
			k, ok := it.PeekKind()
			if !ok || k == token.Eoi {
				return blocks
			}
			if k != token.Blankline && k != token.Newline && k != token.Whitespace {
				break
			}
			it.Next()
		}

		b, ok := parseHeading(it, ctx)
		if !ok {
			b = parseParagraph(it, ctx)
		}
		blocks = append(blocks, b)
	}
}

// parseHeading parses 1 to 6 '#' followed by a space; continuation lines
// must be indented by level+1 spaces.
func parseHeading(it token.Iterator, ctx inline.Context) (Block, bool) {
	tok, ok := it.Peek()
	if !ok || !tok.Kind.Matches(token.Hash) || tok.Kind.Count() > MaxHeadingLevel {
		return Block{}, false
	}
	if !it.ConsumedMatches(token.Hash, token.Space) {
		return Block{}, false
	}
	level := tok.Kind.Count()
	space, _ := it.Prev()

	prefix := make(token.Prefix, level+1)
	for i := range prefix {
		prefix[i] = token.Space
	}
	b := parseContent(it, prefix, ctx)
	b.Type = Heading
	b.Level = level
	b.Start = tok.Start
	if b.content.Empty() {
		b.End = space.End
	}
	return b, true
}

func parseParagraph(it token.Iterator, ctx inline.Context) Block {
	b := parseContent(it, nil, ctx)
	b.Type = Paragraph
	return b
}

// parseContent parses inline content up to the next blank line, or up to the
// first line without prefix.
func parseContent(it token.Iterator, prefix token.Prefix, ctx inline.Context) Block {
	start := it.Index()
	var strategy token.Strategy
	if prefix != nil {
		strategy = prefix
	}
	sub := it.Nest(strategy, token.BlankLine{})
	parsed := inline.ParseTokens(sub, ctx)
	sub.Update(it)

	toks := trimLineEnds(it.Items()[start:it.Index()])
	b := Block{
		Inlines: parsed.Inlines,
		content: contentArea(toks, len(prefix)),
	}
	if len(toks) > 0 {
		b.Start = toks[0].Start
		b.End = toks[len(toks)-1].End
	}
	return b
}

func trimLineEnds(toks []token.Token) []token.Token {
	for len(toks) > 0 {
		switch toks[len(toks)-1].Kind {
		case token.Newline, token.Blankline, token.Eoi:
			toks = toks[:len(toks)-1]
			continue
		}
		break
	}
	return toks
}

// contentArea covers toks, less the first prefixLen whitespace tokens of
// every continuation line.
func contentArea(toks []token.Token, prefixLen int) scanio.Area {
	if len(toks) == 0 {
		return scanio.Area{}
	}
	ar := scanio.MakeArea(toks[0].Input)
	skip := 0
	for _, tok := range toks {
		switch {
		case skip > 0 && tok.Kind == token.Whitespace:
			skip--
			continue
		case tok.LineEnd():
			skip = prefixLen
		default:
			skip = 0
		}
		ar.Add(tok.Offset)
	}
	return ar
}
