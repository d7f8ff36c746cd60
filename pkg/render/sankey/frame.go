package sankey

import (
	"strings"

	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/render/sankey/aggregate"
	"github.com/matzehuels/sankey/pkg/render/sankey/flow"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
)

// SegmentShape is a positioned bar segment.
type SegmentShape struct {
	Tag    Tag
	Key    string
	Label  string
	Value  float64 // Aggregated total for (level, key)
	X, Y   float64
	W, H   float64
	Rows   []dataview.RowID
	Text   *LabelShape // nil unless labels are enabled
	Level  int
	Legend string // Level display name
}

// LabelShape is a positioned segment label.
type LabelShape struct {
	Text   string
	X, Y   float64
	Anchor string
	Shift  bool
}

// RibbonShape is a positioned flow ribbon.
type RibbonShape struct {
	Tag   Tag
	Color string
	Path  flow.Path
}

// Frame is the immutable result of one render.
type Frame struct {
	Width, Height float64
	MeasureName   string
	Levels        []dataview.Level
	Layout        layout.Layout
	Totals        *aggregate.Totals

	// Segments in draw order: bar by bar, sorted within each bar.
	Segments []SegmentShape
	// Ribbons in final z-order: descending value, ties in build order.
	Ribbons []RibbonShape

	built []RibbonShape
	rows  map[dataview.RowID]dataview.Row
}

// BuildOrder returns the ribbons in the order they were built: by row, then
// by level. Drawing in this order and then reordering to [Frame.Ribbons]
// reproduces the final z-order.
func (f *Frame) BuildOrder() []RibbonShape { return f.built }

// Row returns the row with the given identity.
func (f *Frame) Row(id dataview.RowID) (dataview.Row, bool) {
	r, ok := f.rows[id]
	return r, ok
}

// Segment returns the shape tagged with (bar, segment).
func (f *Frame) Segment(bar, segment int) (*SegmentShape, bool) {
	for i := range f.Segments {
		t := f.Segments[i].Tag
		if t.Bar == bar && t.Segment == segment {
			return &f.Segments[i], true
		}
	}
	return nil, false
}

// HitTest resolves a canvas point to the topmost element under it.
// Ribbons are tested topmost first, then segments; anything else is the
// background.
func (f *Frame) HitTest(pt flow.Point) Tag {
	for i := len(f.Ribbons) - 1; i >= 0; i-- {
		if f.Ribbons[i].Path.Contains(pt) {
			return f.Ribbons[i].Tag
		}
	}
	for _, s := range f.Segments {
		if pt.X >= s.X && pt.X <= s.X+s.W && pt.Y >= s.Y && pt.Y <= s.Y+s.H {
			return s.Tag
		}
	}
	return Background
}

// RowsFor returns the rows an element contributes to marking: every row of
// a segment, the single row of a ribbon, nothing for the background.
func (f *Frame) RowsFor(t Tag) []dataview.RowID {
	switch t.Kind {
	case KindSegment:
		if s, ok := f.Segment(t.Bar, t.Segment); ok {
			return append([]dataview.RowID(nil), s.Rows...)
		}
	case KindRibbon:
		if _, ok := f.rows[t.Row]; ok {
			return []dataview.RowID{t.Row}
		}
	}
	return nil
}

// Tooltip returns the hover text for an element, or "" for the background.
//
// Segment: "<measure>: <value>\n<level>: <label>".
// Ribbon: "<measure>: <formatted value>\n" then "<level>: <label>\n" per level.
func (f *Frame) Tooltip(t Tag) string {
	switch t.Kind {
	case KindSegment:
		s, ok := f.Segment(t.Bar, t.Segment)
		if !ok {
			return ""
		}
		return f.MeasureName + ": " + dataview.FormatValue(s.Value) + "\n" + s.Legend + ": " + s.Label
	case KindRibbon:
		r, ok := f.rows[t.Row]
		if !ok {
			return ""
		}
		var b strings.Builder
		b.WriteString(f.MeasureName + ": " + r.FormattedMeasure() + "\n")
		for i, c := range r.Categories() {
			if i >= len(f.Levels) {
				break
			}
			b.WriteString(f.Levels[i].Label() + ": " + c.Label + "\n")
		}
		return b.String()
	}
	return ""
}
