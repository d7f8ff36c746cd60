package styles

import "bytes"

// Style defines the visual appearance of a flow diagram.
// Implementations control how the background, segments, ribbons and labels
// are drawn.
type Style interface {
	// Name returns the identifier used in options and cache keys.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderBackground writes the full-canvas background rectangle.
	RenderBackground(buf *bytes.Buffer, w, h float64)
	// RenderSegment writes the SVG for a single bar segment.
	RenderSegment(buf *bytes.Buffer, s Segment)
	// RenderRibbon writes the SVG for a flow ribbon.
	RenderRibbon(buf *bytes.Buffer, r Ribbon)
	// RenderLabel writes a segment's label text.
	RenderLabel(buf *bytes.Buffer, l Label)
}

// Segment contains all data needed to render a single bar segment.
type Segment struct {
	Bar, Index int     // Tag: bar index, segment index within the bar
	X, Y, W, H float64 // Position and dimensions
	Title      string  // Hover text
}

// Ribbon contains all data needed to render a single flow ribbon.
type Ribbon struct {
	Row   int     // Row identity
	Value float64 // Row value, used for z-order
	D     string  // SVG path data
	Fill  string  // Row color
	Title string  // Hover text
}

// Label positions a segment label.
type Label struct {
	Text   string
	X, Y   float64
	Anchor string // "start" or "end"
	Shift  bool   // Drop the baseline by one line below Y
}
