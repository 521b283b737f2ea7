package symbol

import (
	"github.com/rivo/uniseg"

	"github.com/jcorbin/umark/internal/scanio"
)

// Scan splits input into grapheme cluster symbols, appending a final Eoi
// symbol with an empty offset at the end of input.
//
// Scanning never fails: every grapheme is classified by Classify.
// Symbol offsets are contiguous and cover input exactly.
func Scan(input string) []Symbol {
	symbols := make([]Symbol, 0, len(input)+1)
	pos := Start
	offset := 0
	state := -1
	for rest := input; len(rest) > 0; {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)

		kind := Classify(cluster)
		end := pos
		if kind == Newline {
			end = Position{pos.Line + 1, 1, 1, 1}
		} else {
			end.ColUTF8 += len(cluster)
			end.ColUTF16 += utf16Len(cluster)
			end.ColGrapheme++
		}

		symbols = append(symbols, Symbol{
			Input:  input,
			Kind:   kind,
			Offset: scanio.Span{Start: offset, End: offset + len(cluster)},
			Start:  pos,
			End:    end,
		})
		pos = end
		offset += len(cluster)
	}
	return append(symbols, Symbol{
		Input:  input,
		Kind:   Eoi,
		Offset: scanio.Span{Start: offset, End: offset},
		Start:  pos,
		End:    pos,
	})
}

func utf16Len(s string) (n int) {
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
