package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/umark/internal/config"
	"github.com/jcorbin/umark/internal/textio"
)

func run(t *testing.T, stdin string, args ...string) string {
	cfg := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(cfg, []byte("unit: grapheme\n"), 0o644))

	var out bytes.Buffer
	cmd := rootCmd(strings.NewReader(stdin), &out)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestTokens(t *testing.T) {
	assert.Equal(t, strings.Join([]string{
		`1. Star(2) "**" 1:1-1:3`,
		`2. Plain "a" 1:3-1:4`,
		`3. Star(2) "**" 1:4-1:6`,
		`4. Eoi "" 1:6-1:6`,
		``,
	}, "\n"), run(t, "**a**", "tokens"))
}

func TestTokens_unit(t *testing.T) {
	out := run(t, "\u00e9", "tokens", "--unit", "utf8")
	assert.True(t, strings.HasPrefix(out, "1. Plain \"\u00e9\" 1:1-1:3"), "got %q", out)
	out = run(t, "\u00e9", "tokens")
	assert.True(t, strings.HasPrefix(out, "1. Plain \"\u00e9\" 1:1-1:2"), "got %q", out)
}

func TestTokens_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.um")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))
	assert.True(t, strings.HasPrefix(run(t, "", "tokens", path), `1. Plain "a"`))
}

func TestSymbols(t *testing.T) {
	out := run(t, "a*", "symbols")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], `1. `))
	assert.Contains(t, lines[1], `"*" 1:2-1:3`)
}

func TestInline(t *testing.T) {
	assert.Equal(t, strings.Join([]string{
		`1. Italic 1:1-1:4`,
		`     Plain "a" 1:2-1:3`,
		`2. Plain "b" 3:1-3:2`,
		``,
	}, "\n"), run(t, "*a*\n\nb", "inline"))
}

func TestInline_verbose(t *testing.T) {
	out := run(t, "**a***b*", "inline", "-v")
	assert.Contains(t, out, "> log: ")
	assert.Contains(t, out, "split ")
	assert.Contains(t, out, `1. Bold 1:1-1:6`)
}

func TestBlocks(t *testing.T) {
	assert.Equal(t, strings.Join([]string{
		`1. Heading1 1:1-1:4 "a"`,
		`     Plain "a" 1:3-1:4`,
		`2. Paragraph 3:1-3:2 "b"`,
		`     Plain "b" 3:1-3:2`,
		``,
	}, "\n"), run(t, "# a\n\nb", "blocks"))
}

func TestHTML(t *testing.T) {
	out := run(t, "# a\n\n*b*", "html")
	assert.Contains(t, out, "<h1>a</h1>")
	assert.Contains(t, out, "<p><em>b</em></p>")

	assert.Equal(t, "<em>b</em>", run(t, "*b*", "html", "--fragment"))
}

func TestHTML_output(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	assert.Equal(t, "", run(t, "**b**", "html", "--fragment", "-o", path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<strong>b</strong>", string(data))
}

func TestTokens_tooManyArgs(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd(strings.NewReader(""), &out)
	cmd.SetArgs([]string{"tokens", "a", "b"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 1 arg")
}

func TestConfigErrors(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(cfg, []byte("unit: bytes\n"), 0o644))
	var out bytes.Buffer
	cmd := rootCmd(strings.NewReader(""), &out)
	cmd.SetArgs([]string{"--config", cfg, "tokens"})
	err := cmd.Execute()
	assert.True(t, errors.Is(err, config.ErrInvalidUnit), "got %v", err)
}

func TestSession(t *testing.T) {
	var out bytes.Buffer
	a := &app{cfg: config.Default(), out: &textio.ErrWriter{Writer: &out}}
	a.cfg.HTML.Fragment = true
	s := session{app: a, mode: "inline"}

	eval := func(line string) string {
		out.Reset()
		quit, err := s.eval(a.out, line)
		require.NoError(t, err)
		assert.False(t, quit)
		return out.String()
	}

	assert.Equal(t, "1. Bold 1:1-1:6\n     Plain \"a\" 1:3-1:4\n", eval("**a**"))
	assert.Equal(t, "mode inline\n", eval(":mode"))
	assert.Equal(t, "", eval(":mode html"))
	assert.Equal(t, "<strong>a</strong>\n", eval("**a**"))
	assert.Contains(t, eval(":mode nope"), `unknown mode "nope"`)
	assert.Contains(t, eval(`:frob "a b"`), `unknown command :frob "a b"`)
	assert.Equal(t, "html", s.mode)

	quit, err := s.eval(a.out, ":quit")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestHistoryPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	a := &app{cfg: config.Config{History: "~/.umark_history"}}
	path, err := a.historyPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".umark_history"), path)

	a.cfg.History = "/tmp/h"
	path, err = a.historyPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/h", path)
}

func TestLoadHistory(t *testing.T) {
	ln := liner.NewLiner()
	defer ln.Close()

	dir := t.TempDir()
	assert.NoError(t, loadHistory(ln, filepath.Join(dir, "missing")))

	good := filepath.Join(dir, "good")
	require.NoError(t, os.WriteFile(good, []byte(":mode tokens\n**a**\n"), 0o644))
	assert.NoError(t, loadHistory(ln, good))

	bad := filepath.Join(dir, "bad")
	require.NoError(t, os.WriteFile(bad, []byte("\xff\xfe\n"), 0o644))
	err := loadHistory(ln, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}
