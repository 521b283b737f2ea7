package textio_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/umark/internal/textio"
)

func TestPrefixWriter(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter("> ", &out)
	fmt.Fprint(pw, "a\nb")
	assert.Equal(t, "> a\n", out.String(), "partial lines stay buffered")
	fmt.Fprint(pw, "c\n")

	pop := pw.Push("1: ")
	fmt.Fprint(pw, "d\ne\n")
	pop()
	fmt.Fprint(pw, "f")
	require.NoError(t, pw.Close())
	assert.Equal(t, "> a\n> bc\n> 1: d\n> 1: e\n> f", out.String())
}

func TestWriteLines(t *testing.T) {
	var out bytes.Buffer
	i := 0
	err := WriteLines(&out, func(w io.Writer) bool {
		i++
		fmt.Fprintf(w, "%v. line\n", i)
		return i < 3
	})
	require.NoError(t, err)
	assert.Equal(t, "1. line\n2. line\n3. line\n", out.String())
}

type failWriter struct{ n int }

var errFull = errors.New("full")

func (fw *failWriter) Write(p []byte) (int, error) {
	if fw.n == 0 {
		return 0, errFull
	}
	fw.n--
	return len(p), nil
}

func TestWriteLines_error(t *testing.T) {
	calls := 0
	err := WriteLines(&failWriter{n: 1}, func(w io.Writer) bool {
		calls++
		fmt.Fprintln(w, "line")
		return true
	})
	assert.True(t, errors.Is(err, errFull))
	assert.Equal(t, 2, calls)
}

func TestErrWriter(t *testing.T) {
	ew := &ErrWriter{Writer: &failWriter{}}
	_, err := ew.Write([]byte("a"))
	assert.Equal(t, errFull, err)
	n, err := ew.Write([]byte("b"))
	assert.Equal(t, 0, n)
	assert.Equal(t, errFull, ew.Err)
}

func TestArgs(t *testing.T) {
	for _, tc := range []struct {
		line string
		args []string
	}{
		{"", nil},
		{":mode tokens", []string{":mode", "tokens"}},
		{"  a   b  ", []string{"a", "b"}},
		{`open "some file" 'x y'`, []string{"open", "some file", "x y"}},
		{`say "a \"q\""`, []string{"say", `a "q"`}},
	} {
		t.Run(fmt.Sprintf("%q", tc.line), func(t *testing.T) {
			args := SplitArgs(tc.line)
			assert.Equal(t, tc.args, args)
			if len(args) > 0 {
				assert.Equal(t, args, SplitArgs(QuotedArgs(args)))
			}
		})
	}
	assert.Equal(t, `a "b c"`, QuotedArgs([]string{"a", "b c"}))
}

func ExamplePrefixWriter() {
	out := &ErrWriter{Writer: os.Stdout}
	WriteLines(out, func() func(w io.Writer) bool {
		n := 0
		return func(w io.Writer) bool {
			n++
			width, _ := fmt.Fprintf(w, "%v. ", n)
			item := NewPrefixWriter(strings.Repeat(" ", width), w)
			item.Skip = true
			defer item.Close()
			fmt.Fprintf(item, "first\nsecond\n")
			return n < 2
		}
	}())
	// Output:
	// 1. first
	//    second
	// 2. first
	//    second
}
