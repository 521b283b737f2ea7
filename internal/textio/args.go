package textio

import (
	"bufio"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// QuotedArgs joins args with spaces, quoting any arg that contains a space.
func QuotedArgs(args []string) string {
	n := len(args)
	for _, arg := range args {
		n += 2 * len(arg)
	}
	return string(AppendQuotedArgs(make([]byte, 0, n), args))
}

// AppendQuotedArgs appends each element of args, quoting them with strconv if
// they contain a space.
func AppendQuotedArgs(b []byte, args []string) []byte {
	for _, arg := range args {
		if len(b) > 0 {
			b = append(b, ' ')
		}
		if strings.ContainsRune(arg, ' ') {
			b = strconv.AppendQuote(b, arg)
		} else {
			b = append(b, arg...)
		}
	}
	return b
}

// SplitArgs splits a command line into space separated args; single or
// double quoted args may contain spaces, and are unquoted.
func SplitArgs(line string) (args []string) {
	sc := bufio.NewScanner(strings.NewReader(line))
	sc.Split(ScanArgs)
	for sc.Scan() {
		arg := sc.Text()
		if len(arg) > 0 && (arg[0] == '"' || arg[0] == '\'') {
			arg = unquote(arg)
		}
		args = append(args, arg)
	}
	return args
}

func unquote(arg string) string {
	q := arg[0]
	body := arg[1:]
	if q == '"' {
		if s, err := strconv.Unquote(arg + `"`); err == nil {
			return s
		}
	}
	return strings.ReplaceAll(body, `\`+string(q), string(q))
}

// ScanArgs implements a bufio.SplitFunc that scans optionally quoted args.
// Quoted tokens retain their opening quote, but not the closing one.
func ScanArgs(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	var r rune
	for width := 0; start < len(data); start += width {
		r, width = utf8.DecodeRune(data[start:])
		if !unicode.IsSpace(r) {
			break
		}
	}

	if r == '"' || r == '\'' {
		q := r
		esc := false
		for width, i := 0, start+1; i < len(data); i += width {
			r, width = utf8.DecodeRune(data[i:])
			if r == '\\' {
				esc = !esc
			} else if !esc && r == q {
				return i + width, data[start:i], nil
			} else {
				esc = false
			}
		}
	} else {
		for width, i := 0, start; i < len(data); i += width {
			r, width = utf8.DecodeRune(data[i:])
			if unicode.IsSpace(r) {
				return i + width, data[start:i], nil
			}
		}
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}
