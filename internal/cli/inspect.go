package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/pipeline"
	"github.com/matzehuels/sankey/pkg/render/sankey/aggregate"
	"github.com/matzehuels/sankey/pkg/render/sankey/ordering"
)

// inspectCommand creates the inspect command that prints level totals.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the category totals of every level",
		Long: `Print the category totals of every level.

The totals are the segment sizes of the diagram. Inspect fails like render
does when a row is negative or the levels do not add up to the same total.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), args[0], flags.noCache, c.options(cmd, &flags))
		},
	}

	flags.registerInput(cmd)
	cmd.Flags().StringVar(&flags.locale, "locale", pipeline.DefaultLocale, "collation locale for category order")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, w io.Writer, input string, noCache bool, opts pipeline.Options) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	snap, cacheHit, err := runner.LoadWithCacheInfo(ctx, input, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	totals, err := aggregate.Aggregate(snap.Hierarchy, snap.Rows)
	if err != nil {
		printError("%s", err)
		return err
	}

	measure := snap.MeasureName
	if measure == "" {
		measure = "value"
	}
	printKeyValue("Measure", measure)
	printKeyValue("Rows", strconv.Itoa(len(snap.Rows)))
	printKeyValue("Levels", strconv.Itoa(totals.Depth()))
	printKeyValue("Total", dataview.FormatValue(totals.Sum(0)))
	printStats(len(snap.Rows), 0, cacheHit)
	printNewline()

	fmt.Fprintln(w, totalsTable(snap.Levels(), totals, ordering.NewCollated(opts.Locale)))
	return nil
}

// totalsTable renders one row per (level, category), categories in
// collation order within each level.
func totalsTable(levels []dataview.Level, totals *aggregate.Totals, coll *ordering.Collated) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	var rows [][]string
	for i := 0; i < totals.Depth(); i++ {
		name := fmt.Sprintf("level %d", i)
		if i < len(levels) {
			name = levels[i].Label()
		}
		entries := totals.Level(i)
		slices.SortStableFunc(entries, func(a, b aggregate.Entry) int {
			return coll.Compare(a.Label, b.Label)
		})
		sum := totals.Sum(i)
		for j, e := range entries {
			level := ""
			if j == 0 {
				level = name
			}
			share := 0.0
			if sum > 0 {
				share = e.Total / sum * 100
			}
			rows = append(rows, []string{level, e.Label, dataview.FormatValue(e.Total), fmt.Sprintf("%.1f%%", share)})
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Level", "Category", "Total", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col >= 2 {
				return cell.Foreground(colorCyan).Align(lipgloss.Right)
			}
			return cell
		})
}
