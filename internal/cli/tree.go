package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ghostify/pkg/doc"
	"github.com/matzehuels/ghostify/pkg/errors"
	"github.com/matzehuels/ghostify/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	output   string // output file path (stdout if empty)
	format   string // "dot" or "svg"
	detailed bool   // include geometry and text metadata in labels
}

// treeCommand creates the tree command for rendering a document's node
// tree. Ghost rectangles are drawn dashed so a ghosted document can be
// compared against its original at a glance.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{format: formatDOT}

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Render a document tree as DOT or SVG",
		Long: `Render the node tree of a document as a Graphviz diagram.

Examples:
  ghostify tree design.json
  ghostify tree ghosted.json --format svg -o tree.svg
  ghostify tree design.json --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatDOT && opts.format != formatSVG {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", opts.format)
			}
			return c.runTree(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include geometry and text metadata in labels")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, input string, opts *treeOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	data, err := readInput(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	d, err := doc.Unmarshal(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s", input)
	}
	logger.Infof("Loaded document: %d nodes", d.Root.Count())

	dot := render.ToDOT(d, render.Options{Detailed: opts.detailed})

	var out []byte
	switch opts.format {
	case formatSVG:
		logger.Info("Rendering SVG")
		if out, err = render.RenderSVG(ctx, dot); err != nil {
			return err
		}
	default:
		out = []byte(dot)
	}

	w, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err := w.Write(out); err != nil {
		return err
	}
	if opts.output != "" {
		logger.Infof("Generated %s", opts.output)
	}
	prog.done(fmt.Sprintf("Rendered %d nodes as %s", d.Root.Count(), opts.format))
	return nil
}
