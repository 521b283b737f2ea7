package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jcorbin/umark/inline"
	"github.com/jcorbin/umark/internal/textio"
	"github.com/jcorbin/umark/render"
)

const prompt = "umark> "

type replMode func(a *app, w io.Writer, input string) error

var replModes = map[string]replMode{
	"symbols": func(a *app, w io.Writer, input string) error { return a.dumper().symbols(w, input) },
	"tokens":  func(a *app, w io.Writer, input string) error { return a.dumper().tokens(w, input) },
	"inline":  func(a *app, w io.Writer, input string) error { return a.dumper().inlines(w, input) },
	"html": func(a *app, w io.Writer, input string) error {
		opts := render.Options{Fragment: a.cfg.HTML.Fragment}
		if err := render.HTML(w, inline.Parse(input, a.inlineContext()), opts); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	},
}

func modeNames() string {
	names := make([]string, 0, len(replModes))
	for name := range replModes {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

// session evaluates lines entered at the prompt.
type session struct {
	app  *app
	mode string
}

// eval dumps line in the current mode, or runs a ":" command.
func (s *session) eval(w io.Writer, line string) (quit bool, err error) {
	if !strings.HasPrefix(strings.TrimSpace(line), ":") {
		return false, replModes[s.mode](s.app, w, line)
	}
	args := textio.SplitArgs(line)
	switch args[0] {
	case ":quit", ":q":
		return true, nil
	case ":mode":
		switch len(args) {
		case 1:
			_, err = fmt.Fprintf(w, "mode %v\n", s.mode)
		case 2:
			if _, ok := replModes[args[1]]; !ok {
				_, err = fmt.Fprintf(w, "unknown mode %q; modes are %v\n", args[1], modeNames())
			} else {
				s.mode = args[1]
			}
		default:
			_, err = fmt.Fprintf(w, "usage: :mode %v\n", modeNames())
		}
	default:
		_, err = fmt.Fprintf(w, "unknown command %v; try :mode %v or :quit\n", textio.QuotedArgs(args), modeNames())
	}
	return false, err
}

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "parse and dump lines entered at a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			hist, err := a.historyPath()
			if err != nil {
				return err
			}
			if hist != "" {
				if err := loadHistory(ln, hist); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "umark: history not loaded: %v\n", err)
				}
				defer func() {
					if err := writeFileAtomic(hist, func(w io.Writer) error {
						_, err := ln.WriteHistory(w)
						return err
					}); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "umark: history not saved: %v\n", err)
					}
				}()
			}

			s := session{app: a, mode: "inline"}
			for {
				line, err := ln.Prompt(prompt)
				if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
					return nil
				} else if err != nil {
					return err
				}
				if strings.TrimSpace(line) == "" {
					continue
				}
				ln.AppendHistory(line)
				quit, err := s.eval(a.out, line)
				if err != nil {
					return err
				}
				if quit {
					return nil
				}
			}
		},
	}
}

// loadHistory reads the history file at path into h; a missing file is no
// error.
func loadHistory(h interface {
	ReadHistory(r io.Reader) (int, error)
}, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	defer f.Close()
	if _, err := h.ReadHistory(f); err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}
	return nil
}

// historyPath returns the configured history file, with a leading "~/"
// expanded to the home directory.
func (a *app) historyPath() (string, error) {
	path := a.cfg.History
	if rest := strings.TrimPrefix(path, "~/"); rest != path {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("history path %q: %w", path, err)
		}
		path = filepath.Join(home, rest)
	}
	return path, nil
}
