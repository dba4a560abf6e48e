package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ghostify/pkg/doc"
	"github.com/matzehuels/ghostify/pkg/errors"
	"github.com/matzehuels/ghostify/pkg/ghost"
	"github.com/matzehuels/ghostify/pkg/pipeline"
)

// applyOpts holds the command-line flags for the apply command.
// These options control selection, engine constants, and caching.
type applyOpts struct {
	output       string  // output file path (stdout if empty)
	selection    string  // comma-separated root node IDs
	interactive  bool    // pick root frames interactively
	cornerRadius float64 // ghost corner radius
	baseOpacity  float64 // opacity before scaling
	minOpacity   float64 // opacity floor
	maxOpacity   float64 // opacity ceiling
	noCache      bool    // bypass the transform cache
}

// applyCommand creates the apply command for ghosting a document.
//
// Default settings mirror the engine defaults: corner radius 4,
// base opacity 0.2, clamped to [0.1, 0.4]. An empty selection processes
// every top-level frame of the document.
func (c *CLI) applyCommand() *cobra.Command {
	cfg := ghost.DefaultConfig()
	opts := applyOpts{
		cornerRadius: cfg.CornerRadius,
		baseOpacity:  cfg.BaseOpacity,
		minOpacity:   cfg.MinOpacity,
		maxOpacity:   cfg.MaxOpacity,
	}

	cmd := &cobra.Command{
		Use:   "apply [file]",
		Short: "Ghost a document file",
		Long: `Ghost a document: detach component instances into plain frames and
replace text layers with ghost rectangles.

Reads the document JSON from [file], or from stdin when [file] is "-".

Examples:
  ghostify apply design.json -o ghosted.json
  ghostify apply design.json --select 1:2,1:7
  ghostify apply design.json --interactive
  cat design.json | ghostify apply - > ghosted.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runApply(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.selection, "select", "s", "", "comma-separated root node IDs (all top-level frames if empty)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick root frames interactively")
	cmd.Flags().Float64Var(&opts.cornerRadius, "corner-radius", opts.cornerRadius, "ghost corner radius")
	cmd.Flags().Float64Var(&opts.baseOpacity, "base-opacity", opts.baseOpacity, "ghost base opacity before scaling")
	cmd.Flags().Float64Var(&opts.minOpacity, "min-opacity", opts.minOpacity, "ghost opacity floor")
	cmd.Flags().Float64Var(&opts.maxOpacity, "max-opacity", opts.maxOpacity, "ghost opacity ceiling")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the transform cache")

	return cmd
}

// runApply loads the document, resolves the selection, runs the pipeline,
// and writes the transformed document to the requested output.
func (c *CLI) runApply(ctx context.Context, input string, opts *applyOpts) error {
	prog := newProgress(loggerFromContext(ctx))

	data, err := readInput(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	selection, err := resolveApplySelection(ctx, data, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}

	pipeOpts := pipeline.Options{
		Selection: selection,
		Config: ghost.Config{
			CornerRadius: opts.cornerRadius,
			BaseOpacity:  opts.baseOpacity,
			MinOpacity:   opts.minOpacity,
			MaxOpacity:   opts.maxOpacity,
		},
	}

	spinner := newSpinnerWithContext(ctx, "Ghosting document...")
	spinner.Start()

	result, err := runner.Execute(ctx, data, pipeOpts)
	if err != nil {
		spinner.StopWithError("Ghosting failed")
		return err
	}
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}
	spinner.StopWithSuccess("Ghosted %d text layers, detached %d instances",
		result.Stats.Ghosted, result.Stats.Detached)
	prog.done(fmt.Sprintf("Processed %d nodes", result.Stats.Visited))

	printRunStats(result)

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(result.Output); err != nil {
		return err
	}
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}

// resolveApplySelection turns the --select / --interactive flags into a
// list of root node IDs. Both flags empty means every top-level frame.
func resolveApplySelection(ctx context.Context, data []byte, opts *applyOpts) ([]string, error) {
	if opts.interactive {
		return pickFramesInteractively(ctx, data)
	}
	if opts.selection == "" {
		return nil, nil
	}
	return errors.ValidateSelection(opts.selection)
}

// pickFramesInteractively decodes the document and opens the frame picker.
func pickFramesInteractively(ctx context.Context, data []byte) ([]string, error) {
	d, err := doc.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}

	frames := d.TopLevel()
	if len(frames) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSelection, "document has no top-level frames")
	}

	model := NewFrameListModel(frames)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, fmt.Errorf("frame picker: %w", err)
	}

	picked := final.(FrameListModel).SelectedIDs()
	if len(picked) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSelection, "no frames selected")
	}
	return picked, nil
}

