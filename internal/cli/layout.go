package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/pipeline"
	"github.com/matzehuels/sankey/pkg/render/sankey/sink"
)

// layoutCommand creates the layout command for computing frame geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  optionFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute the frame geometry of a snapshot as JSON",
		Long: `Compute the frame geometry of a snapshot as JSON.

The output lists every bar, segment rectangle and ribbon path with the
canvas metrics they were placed with. Use "-o -" to write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, flags.noCache, c.options(cmd, &flags))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.frame.json)")
	flags.registerInput(cmd)
	flags.registerLayout(cmd)

	return cmd
}

// runLayout loads the snapshot, computes the frame and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	snap, cacheHit, err := runner.LoadWithCacheInfo(ctx, input, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	f, err := runner.ComputeFrame(ctx, snap, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	data, err := sink.RenderJSON(f, sink.WithJSONStyle(opts.Style), sink.WithJSONLocale(opts.Locale))
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".frame.json"
	}
	if err := writeFile(outputPath, data); err != nil {
		return err
	}
	if outputPath == "-" {
		return nil
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(snap.Rows), len(f.Ribbons), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+input)
	return nil
}
