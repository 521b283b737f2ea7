// Command umark dumps the scanning stages of umark markup, renders it as
// HTML, and provides an interactive prompt for trying it out.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcorbin/umark/inline"
	"github.com/jcorbin/umark/internal/config"
	"github.com/jcorbin/umark/internal/textio"
	"github.com/jcorbin/umark/symbol"
)

func main() {
	if err := rootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "umark: %v\n", err)
		os.Exit(1)
	}
}

// app holds the state shared by all sub commands.
type app struct {
	configPath string
	unitName   string
	color      bool
	verbose    bool

	cfg    config.Config
	unit   symbol.Unit
	out    *textio.ErrWriter
	logOut *textio.PrefixWriter
}

func rootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "umark",
		Short:         "umark markup scanning, inline parsing and rendering tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file; by default "+config.FileName+" is searched from the working directory up")
	flags.StringVar(&a.unitName, "unit", "", "column unit of dumped positions: utf8, utf16 or grapheme")
	flags.BoolVar(&a.color, "color", false, "style kind labels")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log inline delimiter resolution")

	root.AddCommand(
		a.dumpCmd("symbols", "dump scanned symbols", dumper.symbols),
		a.dumpCmd("tokens", "dump built tokens", dumper.tokens),
		a.dumpCmd("inline", "dump the inline tree of each paragraph", dumper.inlines),
		a.dumpCmd("blocks", "dump headings and paragraphs", dumper.blocks),
		a.htmlCmd(),
		a.replCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) (err error) {
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.FindAndLoad()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("unit") {
		a.cfg.Unit = a.unitName
	}
	if flags.Changed("color") {
		a.cfg.Color = a.color
	}
	if a.unit, err = a.cfg.ColumnUnit(); err != nil {
		return err
	}

	a.out = &textio.ErrWriter{Writer: cmd.OutOrStdout()}
	a.logOut = textio.NewPrefixWriter("> log: ", a.out)
	log.SetOutput(a.logOut)
	log.SetFlags(0)
	return nil
}

func (a *app) teardown() error {
	if a.logOut != nil {
		a.logOut.Close()
	}
	if a.out != nil {
		return a.out.Err
	}
	return nil
}

// inlineContext returns the configured inline parser flags, tracing into the
// log when verbose.
func (a *app) inlineContext() inline.Context {
	ctx := a.cfg.InlineContext()
	if a.verbose {
		ctx.Logf = log.Printf
	}
	return ctx
}

func (a *app) dumper() dumper {
	return dumper{
		unit:   a.unit,
		styles: newStyles(a.cfg.Color),
		ctx:    a.inlineContext(),
		logOut: a.logOut,
	}
}

func (a *app) dumpCmd(use, short string, dump func(dumper, io.Writer, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [FILE]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if err := dump(a.dumper(), a.out, input); err != nil {
				return fmt.Errorf("%v: write error: %w", use, err)
			}
			return nil
		},
	}
}

// readInput reads the named file, or standard input when there is none or
// it is "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case len(args) == 1 && args[0] != "-":
		data, err = os.ReadFile(args[0])
	default:
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	return string(data), err
}
