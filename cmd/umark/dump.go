package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jcorbin/umark/block"
	"github.com/jcorbin/umark/inline"
	"github.com/jcorbin/umark/internal/textio"
	"github.com/jcorbin/umark/symbol"
	"github.com/jcorbin/umark/token"
)

type styles struct {
	kind lipgloss.Style
	pos  lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		return styles{kind: lipgloss.NewStyle(), pos: lipgloss.NewStyle()}
	}
	return styles{
		kind: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		pos:  lipgloss.NewStyle().Faint(true),
	}
}

// dumper writes numbered item dumps of each scanning stage.
type dumper struct {
	unit   symbol.Unit
	styles styles
	ctx    inline.Context
	logOut *textio.PrefixWriter
}

func (d dumper) pos(p symbol.Position) string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col(d.unit))
}

func (d dumper) span(start, end symbol.Position) string {
	return d.styles.pos.Render(d.pos(start) + "-" + d.pos(end))
}

func (d dumper) label(kind interface{}) string {
	return d.styles.kind.Render(fmt.Sprintf("%v", kind))
}

// items writes n numbered items; each is written by item through a writer
// that indents continuation lines under the number, with log output
// indented alike.
func (d dumper) items(w io.Writer, item func(i int, w io.Writer) bool) error {
	i := 0
	return textio.WriteLines(w, func(w io.Writer) bool {
		width, _ := fmt.Fprintf(w, "%v. ", i+1)
		itemOut := textio.NewPrefixWriter(strings.Repeat(" ", width), w)
		itemOut.Skip = true
		defer itemOut.Close()
		if d.logOut != nil {
			defer d.logOut.Push(itemOut.Prefix)()
		}
		more := item(i, itemOut)
		i++
		return more
	})
}

func (d dumper) symbols(w io.Writer, input string) error {
	syms := symbol.Scan(input)
	return d.items(w, func(i int, w io.Writer) bool {
		sym := syms[i]
		fmt.Fprintf(w, "%v %q %v\n", d.label(sym.Kind), sym.String(), d.span(sym.Start, sym.End))
		return i+1 < len(syms)
	})
}

func (d dumper) tokens(w io.Writer, input string) error {
	toks := token.Lex(input)
	return d.items(w, func(i int, w io.Writer) bool {
		tok := toks[i]
		fmt.Fprintf(w, "%v %q %v\n", d.label(tok.Kind), tok.String(), d.span(tok.Start, tok.End))
		return i+1 < len(toks)
	})
}

// inlines dumps the inline tree of each blank line separated paragraph; the
// paragraph is parsed while its item is written, so that any trace lines
// are logged under it.
func (d dumper) inlines(w io.Writer, input string) error {
	it := token.NewIterator(token.Lex(input))
	if !skipBlankLines(it) {
		return nil
	}
	return d.items(w, func(_ int, w io.Writer) bool {
		start := it.Index()
		sub := it.Nest(nil, token.BlankLine{})
		parsed := inline.ParseTokens(sub, d.ctx)
		sub.Update(it)
		inline.WriteTree(w, parsed.Inlines)
		return it.Index() > start && skipBlankLines(it)
	})
}

// skipBlankLines skips line ends, returning false at the end of input.
func skipBlankLines(it token.Iterator) bool {
	for {
		k, ok := it.PeekKind()
		switch {
		case !ok, k == token.Eoi:
			return false
		case k == token.Blankline, k == token.Newline:
			it.Next()
		default:
			return true
		}
	}
}

func (d dumper) blocks(w io.Writer, input string) error {
	blocks := block.Parse(input, d.ctx)
	if len(blocks) == 0 {
		return nil
	}
	return d.items(w, func(i int, w io.Writer) bool {
		b := blocks[i]
		fmt.Fprintf(w, "%v %v %q\n", d.label(b), d.span(b.Start, b.End), b.Content())
		inner := textio.NewPrefixWriter("  ", w)
		inline.WriteTree(inner, b.Inlines)
		inner.Close()
		return i+1 < len(blocks)
	})
}
