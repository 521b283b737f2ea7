package main

import (
	"io"

	"github.com/google/renameio"
	"github.com/spf13/cobra"

	"github.com/jcorbin/umark/block"
	"github.com/jcorbin/umark/inline"
	"github.com/jcorbin/umark/render"
)

func (a *app) htmlCmd() *cobra.Command {
	var (
		output   string
		fragment bool
	)
	cmd := &cobra.Command{
		Use:   "html [FILE]",
		Short: "render headings and paragraphs as HTML",
		Long: `Renders headings and paragraphs as HTML.
With --fragment, the input is rendered as a single inline fragment.
With -o, the output file is replaced atomically.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("fragment") {
				a.cfg.HTML.Fragment = fragment
			}
			if output == "" {
				return a.renderHTML(a.out, input)
			}
			return writeFileAtomic(output, func(w io.Writer) error {
				return a.renderHTML(w, input)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file rather than standard output")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "render inline content without paragraph wrapping")
	return cmd
}

func (a *app) renderHTML(w io.Writer, input string) error {
	ctx := a.inlineContext()
	if a.cfg.HTML.Fragment {
		return render.HTML(w, inline.Parse(input, ctx), render.Options{Fragment: true})
	}
	return render.Blocks(w, block.Parse(input, ctx))
}

// writeFileAtomic writes into a temporary file, which replaces path only
// once write returns without error.
func writeFileAtomic(path string, write func(w io.Writer) error) error {
	f, err := renameio.TempFile("", path)
	if err != nil {
		return err
	}
	defer f.Cleanup()
	if err := f.Chmod(0o644); err != nil {
		return err
	}
	if err := write(f); err != nil {
		return err
	}
	return f.CloseAtomicallyReplace()
}
