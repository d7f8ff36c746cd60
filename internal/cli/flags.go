package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/pipeline"
)

// optionFlags holds the flags shared by render, layout and inspect.
// Flags override the config file only when set on the command line.
type optionFlags struct {
	noCache bool
	refresh bool

	// CSV column mapping
	measure    string
	dimensions []string
	keys       map[string]string
	color      string
	formatted  string

	// Layout
	width    float64
	height   float64
	barWidth float64
	gapRatio float64
	locale   string
	labels   bool

	// Render
	formats     string
	style       string
	tooltips    bool
	interactive bool
	scale       float64
}

// registerInput adds the cache and CSV column flags.
func (f *optionFlags) registerInput(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-import the input even if cached")
	cmd.Flags().StringVar(&f.measure, "measure", "", "CSV measure column")
	cmd.Flags().StringSliceVar(&f.dimensions, "dimensions", nil, "CSV category columns, one bar each (comma-separated)")
	cmd.Flags().StringToStringVar(&f.keys, "keys", nil, "CSV key column per dimension (dimension=column)")
	cmd.Flags().StringVar(&f.color, "color", "", "CSV color column")
	cmd.Flags().StringVar(&f.formatted, "formatted", "", "CSV formatted measure column")
}

// registerLayout adds the canvas and ordering flags.
func (f *optionFlags) registerLayout(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "canvas width (default: snapshot width or 800)")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "canvas height (default: snapshot height or 600)")
	cmd.Flags().Float64Var(&f.barWidth, "bar-width", pipeline.DefaultBarWidth, "bar width")
	cmd.Flags().Float64Var(&f.gapRatio, "gap-ratio", pipeline.DefaultGapRatio, "segment gap as a fraction of the height")
	cmd.Flags().StringVar(&f.locale, "locale", pipeline.DefaultLocale, "collation locale for segment order")
	cmd.Flags().BoolVar(&f.labels, "labels", false, "draw segment labels")
}

// registerRender adds the output flags.
func (f *optionFlags) registerRender(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&f.style, "style", pipeline.DefaultStyle, "visual style: simple, outline")
	cmd.Flags().BoolVar(&f.tooltips, "tooltips", false, "embed hover tooltips in the SVG")
	cmd.Flags().BoolVar(&f.interactive, "interactive", false, "embed row highlighting in the SVG")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
}

// options merges the changed flags over the config file options.
func (c *CLI) options(cmd *cobra.Command, f *optionFlags) pipeline.Options {
	opts := c.baseOptions()
	set := cmd.Flags().Changed

	opts.Refresh = f.refresh
	if set("measure") {
		opts.Columns.Measure = f.measure
	}
	if set("dimensions") {
		opts.Columns.Dimensions = f.dimensions
	}
	if set("keys") {
		opts.Columns.Keys = f.keys
	}
	if set("color") {
		opts.Columns.Color = f.color
	}
	if set("formatted") {
		opts.Columns.Formatted = f.formatted
	}

	if set("width") {
		opts.Width = f.width
	}
	if set("height") {
		opts.Height = f.height
	}
	if set("bar-width") {
		opts.BarWidth = f.barWidth
	}
	if set("gap-ratio") {
		opts.GapRatio = f.gapRatio
	}
	if set("locale") {
		opts.Locale = f.locale
	}
	if set("labels") {
		opts.Labels = f.labels
	}

	if set("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if set("style") {
		opts.Style = f.style
	}
	if set("tooltips") {
		opts.Tooltips = f.tooltips
	}
	if set("interactive") {
		opts.Interactive = f.interactive
	}
	if set("scale") {
		opts.Scale = f.scale
	}
	return opts
}
