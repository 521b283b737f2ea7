package token

import "github.com/jcorbin/umark/symbol"

// Lex scans input and builds all of its tokens; the last one is always an
// Eoi token.
func Lex(input string) []Token {
	return Build(symbol.NewIterator(symbol.Scan(input)))
}

// Build builds tokens from it until it stops producing symbols.
func Build(it symbol.Iterator) (tokens []Token) {
	for {
		tok, ok := Next(it)
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next builds one token from the symbols of it:
//   - Eoi becomes an Eoi token
//   - plain runs merge into one Plain token
//   - each whitespace symbol becomes its own Whitespace token
//   - a backslash escapes the following symbol; an escaped newline followed
//     by a blank line is read as a Blankline
//   - a newline before Eoi becomes part of the Eoi token
//   - a newline followed by only whitespace up to the next newline or Eoi
//     becomes a Blankline, leaving that terminator for the next token
//   - parentheses are never merged
//   - runs of identical keyword symbols collapse into a counted run kind
func Next(it symbol.Iterator) (tok Token, ok bool) {
	first, ok := it.Next()
	if !ok {
		return tok, false
	}
	tok = promote(first)

	switch k := first.Kind; {
	case k == symbol.Plain:
		for peekIs(it, symbol.Plain) {
			sym, _ := it.Next()
			tok.extend(sym)
		}

	case k == symbol.Backslash:
		esc, ok := it.Peek()
		switch {
		case !ok:
			tok.Kind = Plain
		case esc.Kind == symbol.Eoi:
			tok.Kind = EscapedNewline
		case esc.Kind == symbol.Whitespace:
			it.Next()
			tok.extend(esc)
			tok.Kind = EscapedWhitespace
		case esc.Kind == symbol.Newline:
			it.Next()
			tok.extend(esc)
			tok.Kind = EscapedNewline
			if n, blank := blankRest(it); blank {
				takeN(it, &tok, n)
				tok.Kind = Blankline
			}
		default:
			it.Next()
			tok.extend(esc)
			tok.Kind = EscapedPlain
		}

	case k == symbol.Newline:
		if peekIs(it, symbol.Eoi) {
			sym, _ := it.Next()
			tok.extend(sym)
			tok.Kind = Eoi
		} else if n, blank := blankRest(it); blank {
			takeN(it, &tok, n)
			tok.Kind = Blankline
		}

	case k.IsParenthesis(), k == symbol.Whitespace, k == symbol.TerminalPunctuation, k == symbol.Eoi:

	case k.IsKeyword():
		n := 1
		for peekIs(it, k) {
			sym, _ := it.Next()
			tok.extend(sym)
			n++
		}
		tok.Kind = tok.Kind.N(n)

	default:
		tok.Kind = Plain
	}
	return tok, true
}

func peekIs(it symbol.Iterator, k symbol.Kind) bool {
	pk, ok := it.PeekKind()
	return ok && pk == k
}

// blankRest peeks whether only whitespace remains on the current line,
// returning how many whitespace symbols precede its terminator.
func blankRest(it symbol.Iterator) (n int, blank bool) {
	defer it.ResetPeek()
	for {
		if _, ok := it.PeekingNext(symbol.Is(symbol.Whitespace)); !ok {
			break
		}
		n++
	}
	_, blank = it.PeekingNext(symbol.IsOneOf(symbol.Newline, symbol.Eoi))
	return n, blank
}

func takeN(it symbol.Iterator, tok *Token, n int) {
	for i := 0; i < n; i++ {
		sym, ok := it.Next()
		if !ok {
			return
		}
		tok.extend(sym)
	}
}
