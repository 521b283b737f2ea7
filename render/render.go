// Package render writes parsed umark content as HTML, by building a
// blackfriday AST and rendering it with the blackfriday HTML renderer.
package render

import (
	"io"

	"github.com/russross/blackfriday"

	"github.com/jcorbin/umark/block"
	"github.com/jcorbin/umark/inline"
	"github.com/jcorbin/umark/internal/textio"
)

// Options controls HTML output.
type Options struct {
	// Fragment omits the paragraph wrapping inline content.
	Fragment bool
}

// HTML renders inline content, wrapped in a paragraph unless opts.Fragment.
func HTML(w io.Writer, inlines []inline.Inline, opts Options) error {
	doc := blackfriday.NewNode(blackfriday.Document)
	parent := doc
	if !opts.Fragment {
		parent = blackfriday.NewNode(blackfriday.Paragraph)
		doc.AppendChild(parent)
	}
	appendInlines(parent, inlines)
	return writeNode(w, doc)
}

// Blocks renders headings as <hN> and paragraphs as <p>.
func Blocks(w io.Writer, blocks []block.Block) error {
	return writeNode(w, Document(blocks))
}

// Document builds the blackfriday AST of blocks.
func Document(blocks []block.Block) *blackfriday.Node {
	doc := blackfriday.NewNode(blackfriday.Document)
	for _, b := range blocks {
		var node *blackfriday.Node
		switch b.Type {
		case block.Heading:
			node = blackfriday.NewNode(blackfriday.Heading)
			node.Level = b.Level
		default:
			node = blackfriday.NewNode(blackfriday.Paragraph)
		}
		appendInlines(node, b.Inlines)
		doc.AppendChild(node)
	}
	return doc
}

func writeNode(w io.Writer, doc *blackfriday.Node) error {
	ew, _ := w.(*textio.ErrWriter)
	if ew == nil {
		ew = &textio.ErrWriter{Writer: w}
	}
	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.UseXHTML,
	})
	doc.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if ew.Err != nil {
			return blackfriday.Terminate
		}
		return r.RenderNode(ew, node, entering)
	})
	return ew.Err
}

func appendInlines(parent *blackfriday.Node, inlines []inline.Inline) {
	for _, in := range inlines {
		appendInline(parent, in)
	}
}

func appendInline(parent *blackfriday.Node, in inline.Inline) {
	switch in.Kind {
	case inline.Plain, inline.EscapedPlain, inline.EscapedWhitespace:
		parent.AppendChild(literal(blackfriday.Text, in.Text))
	case inline.ImplicitNewline:
		parent.AppendChild(literal(blackfriday.Text, " "))
	case inline.Newline:
		parent.AppendChild(literal(blackfriday.Text, "\n"))
	case inline.EscapedNewline:
		parent.AppendChild(blackfriday.NewNode(blackfriday.Hardbreak))

	case inline.Bold:
		wrap(parent, blackfriday.Strong, in.Inner)
	case inline.Italic:
		wrap(parent, blackfriday.Emph, in.Inner)
	case inline.Strikethrough:
		wrap(parent, blackfriday.Del, in.Inner)
	case inline.Verbatim:
		parent.AppendChild(literal(blackfriday.Code, inline.PlainString(in.Inner)))

	case inline.Hyperlink:
		link := blackfriday.NewNode(blackfriday.Link)
		link.Destination = []byte(in.Link)
		link.Title = []byte(in.Text)
		appendInlines(link, in.Inner)
		parent.AppendChild(link)

	default:
		open, close := spanTags(in.Kind)
		parent.AppendChild(literal(blackfriday.HTMLSpan, open))
		if in.Kind == inline.Math {
			parent.AppendChild(literal(blackfriday.Text, inline.PlainString(in.Inner)))
		} else {
			appendInlines(parent, in.Inner)
		}
		parent.AppendChild(literal(blackfriday.HTMLSpan, close))
	}
}

// spanTags returns raw tags for kinds without a blackfriday node type.
func spanTags(kind inline.Kind) (open, close string) {
	switch kind {
	case inline.Underline:
		return `<span style="text-decoration: underline;">`, "</span>"
	case inline.Overline:
		return `<span style="text-decoration: overline;">`, "</span>"
	case inline.Subscript:
		return "<sub>", "</sub>"
	case inline.Superscript:
		return "<sup>", "</sup>"
	case inline.Highlight:
		return "<mark>", "</mark>"
	case inline.Quote:
		return "<q>", "</q>"
	case inline.Math:
		return `<span class="math">`, "</span>"
	}
	return "<span>", "</span>"
}

func wrap(parent *blackfriday.Node, typ blackfriday.NodeType, inner []inline.Inline) {
	node := blackfriday.NewNode(typ)
	appendInlines(node, inner)
	parent.AppendChild(node)
}

func literal(typ blackfriday.NodeType, text string) *blackfriday.Node {
	node := blackfriday.NewNode(typ)
	node.Literal = []byte(text)
	return node
}
