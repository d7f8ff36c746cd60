// Package flow builds the ribbons connecting adjacent bars of a flow
// diagram.
//
// Every row yields one ribbon per adjacent level pair. A ribbon is a closed
// outline made of two cubic Béziers joined by vertical edges: it leaves the
// right edge of the row's segment at level i from the row's slot and enters
// the left edge of its segment at level i+1. Its thickness is the row value
// times the layout scale at both ends.
package flow

import (
	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
)

// Ribbon is the flow of one row between two adjacent levels.
type Ribbon struct {
	RowID     dataview.RowID
	Value     float64
	Color     string
	FromLevel int
	Path      Path
}

// Anchor is one end of a ribbon: the top of the row's slot and the edge x.
type Anchor struct {
	X, Y float64
}

// RibbonPath returns the closed outline between from (right edge of the
// source segment) and to (left edge of the target segment) for a band of
// height h. Control points sit a quarter of gap inside each end.
func RibbonPath(from, to Anchor, h, gap float64) Path {
	d := gap / 4
	return Path{
		{Op: MoveTo, P: [3]Point{{from.X, from.Y}}},
		{Op: CurveTo, P: [3]Point{{from.X + d, from.Y}, {to.X - d, to.Y}, {to.X, to.Y}}},
		{Op: LineTo, P: [3]Point{{to.X, to.Y + h}}},
		{Op: CurveTo, P: [3]Point{{to.X - d, to.Y + h}, {from.X + d, from.Y + h}, {from.X, from.Y + h}}},
		{Op: ClosePath},
	}
}

// Build returns every ribbon of a placed layout, grouped by row in input
// order and by level within a row. Rows whose segments are missing from a
// bar are skipped for that level pair.
func Build(l layout.Layout, rows []dataview.Row) []Ribbon {
	var out []Ribbon
	for _, r := range rows {
		cats := r.Categories()
		n := min(len(cats), len(l.Bars))
		for i := 0; i+1 < n; i++ {
			rb, ok := ribbon(l, r, cats, i)
			if ok {
				out = append(out, rb)
			}
		}
	}
	return out
}

func ribbon(l layout.Layout, r dataview.Row, cats []dataview.CategoryValue, i int) (Ribbon, bool) {
	seg1, ok := l.Bars[i].Segment(cats[i].Key)
	if !ok {
		return Ribbon{}, false
	}
	seg2, ok := l.Bars[i+1].Segment(cats[i+1].Key)
	if !ok {
		return Ribbon{}, false
	}
	sr1, ok := seg1.Row(r.ID())
	if !ok {
		return Ribbon{}, false
	}
	sr2, ok := seg2.Row(r.ID())
	if !ok {
		return Ribbon{}, false
	}

	v := r.Measure()
	return Ribbon{
		RowID:     r.ID(),
		Value:     v,
		Color:     r.Color(),
		FromLevel: i,
		Path: RibbonPath(
			Anchor{X: seg1.X + l.BarWidth, Y: sr1.Y},
			Anchor{X: seg2.X, Y: sr2.Y},
			v*l.Scale, l.BarGap,
		),
	}, true
}
