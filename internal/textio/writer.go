// Package textio provides writer plumbing for line oriented dumps: sticky
// write errors, line prefixing and buffered line flushing.
package textio

import (
	"bytes"
	"io"
)

// WriteBuffer combines a byte buffer with a destination writer and flush
// policy. Example use:
//
// 	var buf WriteBuffer
// 	buf.To = os.Stdout
// 	for _, item := range items {
// 		fmt.Fprintln(&buf, item)
// 		if err := buf.MaybeFlush(); err != nil {
// 			return err
// 		}
// 	}
// 	return buf.Flush()
type WriteBuffer struct {
	FlushPolicy
	To io.Writer
	bytes.Buffer
}

// FlushPolicy determines how many buffered bytes a WriteBuffer should write
// out during its main write phase.
type FlushPolicy interface {
	ShouldFlush(b []byte) int
}

// FlushPolicyFunc adapts a function into a FlushPolicy.
type FlushPolicyFunc func(b []byte) int

// ShouldFlush calls the receiver function.
func (f FlushPolicyFunc) ShouldFlush(b []byte) int { return f(b) }

// Flush writes all buffered bytes, regardless of the FlushPolicy.
func (buf *WriteBuffer) Flush() error {
	_, err := buf.WriteTo(buf.To)
	return err
}

// MaybeFlush writes out as many bytes as the FlushPolicy asks for, by default
// FlushLineChunks.
func (buf *WriteBuffer) MaybeFlush() error {
	if buf.FlushPolicy == nil {
		buf.FlushPolicy = FlushPolicyFunc(FlushLineChunks)
	}
	b := buf.Bytes()
	if n := buf.ShouldFlush(b); n > 0 {
		m, err := buf.To.Write(b[:n])
		buf.Next(m)
		return err
	}
	return nil
}

// FlushLineChunks flushes everything through the last newline.
func FlushLineChunks(b []byte) int {
	if i := bytes.LastIndexByte(b, '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// ErrWriter wraps a writer, retaining its first error; once set, no further
// writes are attempted.
type ErrWriter struct {
	io.Writer
	Err error
}

// Write passes through to Writer while Err is nil.
func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = ew.Writer.Write(p)
	}
	return n, ew.Err
}

// PrefixWriter prepends Prefix to every line written through it. Prefix may
// be changed between writes; it applies from the next line start.
// Close flushes any partial final line.
type PrefixWriter struct {
	Prefix string

	// Skip omits the prefix on the next line start, e.g. when the caller
	// already wrote a list marker of the same width.
	Skip bool

	buf WriteBuffer
	mid bool
}

// NewPrefixWriter returns a PrefixWriter writing into w.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	pw := &PrefixWriter{Prefix: prefix}
	pw.buf.To = w
	return pw
}

// Push appends to the prefix, returning a function that restores it.
func (pw *PrefixWriter) Push(prefix string) (pop func()) {
	prior := pw.Prefix
	pw.Prefix += prefix
	return func() { pw.Prefix = prior }
}

// Close flushes any buffered partial line.
func (pw *PrefixWriter) Close() error { return pw.buf.Flush() }

// Flush flushes any buffered partial line.
func (pw *PrefixWriter) Flush() error { return pw.buf.Flush() }

func (pw *PrefixWriter) Write(b []byte) (n int, err error) {
	for len(b) > 0 {
		if !pw.mid {
			if pw.Skip {
				pw.Skip = false
			} else {
				pw.buf.WriteString(pw.Prefix)
			}
		}
		line := b
		b = nil
		if i := bytes.IndexByte(line, '\n'); i >= 0 {
			line, b = line[:i+1], line[i+1:]
		}
		m, _ := pw.buf.Write(line)
		n += m
		pw.mid = line[len(line)-1] != '\n'
	}
	return n, pw.buf.MaybeFlush()
}

// WriteLines calls next with a buffered writer until it returns false,
// flushing complete lines after every call. Iteration stops early on the
// first write error, which is returned.
func WriteLines(to io.Writer, next func(w io.Writer) bool) error {
	ew, _ := to.(*ErrWriter)
	if ew == nil {
		ew = &ErrWriter{Writer: to}
	}
	var buf WriteBuffer
	buf.To = ew
	for ew.Err == nil && next(&buf) {
		buf.MaybeFlush()
	}
	buf.Flush()
	return ew.Err
}
