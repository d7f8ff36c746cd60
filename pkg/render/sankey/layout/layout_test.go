package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sankey/pkg/dataview"
)

var regionType = []dataview.Level{{Name: "Region"}, {Name: "Type"}}

func rec(id int, v float64, keys ...string) dataview.Row {
	cats := make([]dataview.CategoryValue, len(keys))
	for i, k := range keys {
		cats[i] = dataview.Cat(k)
	}
	return dataview.NewRecord(dataview.RowID(id), v, cats...)
}

func TestBuildBars(t *testing.T) {
	rows := []dataview.Row{rec(0, 10, "A", "X"), rec(1, 20, "B", "Y")}
	bars := BuildBars(regionType, rows)

	require.Len(t, bars, 2)
	assert.Equal(t, "Region", bars[0].Name)
	assert.Equal(t, 30.0, bars[0].Total)
	assert.Equal(t, 30.0, bars[1].Total)

	a, ok := bars[0].Segment("A")
	require.True(t, ok)
	assert.Equal(t, 10.0, a.Value)
	require.Len(t, a.Rows, 1)
	assert.Equal(t, []string{"A", "X"}, a.Rows[0].Labels)
	assert.Equal(t, 0, a.Rows[0].Level)

	y, ok := bars[1].Segment("Y")
	require.True(t, ok)
	sr, ok := y.Row(1)
	require.True(t, ok)
	assert.Equal(t, 1, sr.Level)
}

func TestBuildBarsMergesSharedCategory(t *testing.T) {
	rows := []dataview.Row{rec(0, 3, "A", "X"), rec(1, 4, "A", "Y")}
	bars := BuildBars(regionType, rows)

	require.Len(t, bars[0].Segments, 1)
	seg := bars[0].Segments[0]
	assert.Equal(t, 7.0, seg.Value)
	assert.Len(t, seg.Rows, 2)
	assert.Equal(t, []dataview.RowID{0, 1}, seg.RowIDs())
	assert.Len(t, bars[1].Segments, 2)
}

func TestBuildBarsGroupsByKey(t *testing.T) {
	rows := []dataview.Row{
		dataview.NewRecord(0, 1, dataview.CategoryValue{Key: "k", Label: "First"}),
		dataview.NewRecord(1, 2, dataview.CategoryValue{Key: "k", Label: "Second"}),
		dataview.NewRecord(2, 3, dataview.CategoryValue{Key: "other", Label: "First"}),
	}
	bars := BuildBars([]dataview.Level{{Name: "L"}}, rows)

	require.Len(t, bars[0].Segments, 2)
	assert.Equal(t, "First", bars[0].Segments[0].Label)
	assert.Equal(t, 3.0, bars[0].Segments[0].Value)

	reversed := BuildBars([]dataview.Level{{Name: "L"}}, []dataview.Row{rows[1], rows[0], rows[2]})
	assert.Equal(t, "First", reversed[0].Segments[0].Label, "label does not depend on row order")
}

func TestPlaceCanvasMetrics(t *testing.T) {
	tests := []struct {
		name       string
		levels     int
		wantBarGap float64
	}{
		{"single bar", 1, 0},
		{"two bars", 2, 772},
		{"three bars", 3, 379},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels := make([]dataview.Level, tt.levels)
			keys := make([]string, tt.levels)
			for i := range levels {
				levels[i] = dataview.Level{Name: string(rune('a' + i))}
				keys[i] = "k"
			}
			bars := BuildBars(levels, []dataview.Row{rec(0, 5, keys...)})
			l := Place(bars, Canvas{Width: 800, Height: 600, BarWidth: 14})

			assert.Equal(t, tt.wantBarGap, l.BarGap)
			assert.InDelta(t, 60.0, l.SegmentGap, 1e-9)
			assert.InDelta(t, 540.0/5, l.Scale, 1e-9)
			for i, b := range bars {
				assert.Equal(t, l.BarGap*float64(i), b.Segments[0].X)
			}
		})
	}
}

// bottom is the lowest y reached by any segment of bar.
func bottom(l Layout, bar *Bar) float64 {
	var y float64
	for _, s := range bar.Segments {
		y = max(y, s.Y+s.Height(l.Scale))
	}
	return y
}

func TestPlaceGeometryConservation(t *testing.T) {
	rows := []dataview.Row{
		rec(0, 10, "A", "X"),
		rec(1, 20, "B", "Y"),
		rec(2, 5, "C", "X"),
		rec(3, 7, "A", "Z"),
	}
	bars := BuildBars(regionType, rows)
	l := Place(bars, Canvas{Width: 800, Height: 600, BarWidth: 14})

	for _, b := range bars {
		var sum float64
		for _, s := range b.Segments {
			sum += s.Height(l.Scale)
		}
		assert.InDelta(t, 600-l.SegmentGap, sum, 1e-9, "bar %s", b.Name)
		assert.InDelta(t, 600.0, bottom(l, b), 1e-9, "bar %s reaches the canvas bottom", b.Name)
	}
}

func TestPlaceRowSlots(t *testing.T) {
	rows := []dataview.Row{rec(0, 10, "A"), rec(1, 20, "A"), rec(2, 30, "B")}
	bars := BuildBars([]dataview.Level{{Name: "L"}}, rows)
	l := Place(bars, Canvas{Width: 100, Height: 600, BarWidth: 10})

	a, b := bars[0].Segments[0], bars[0].Segments[1]
	assert.Equal(t, 0.0, a.Y)
	assert.Equal(t, 0.0, a.Rows[0].Y)
	assert.InDelta(t, 10*l.Scale, a.Rows[1].Y, 1e-9)
	assert.InDelta(t, 30*l.Scale+l.SegmentGap, b.Y, 1e-9)
	assert.Equal(t, b.Y, b.Rows[0].Y)
}

func TestPlaceSingleSegmentHasNoGap(t *testing.T) {
	bars := BuildBars([]dataview.Level{{Name: "L"}}, []dataview.Row{rec(0, 1, "A")})
	l := Place(bars, Canvas{Width: 100, Height: 100, BarWidth: 10})
	assert.InDelta(t, 90.0, bottom(l, bars[0]), 1e-9)
}

func TestPlaceEmpty(t *testing.T) {
	bars := BuildBars(regionType, nil)
	l := Place(bars, Canvas{Width: 800, Height: 600, BarWidth: 14})

	assert.Equal(t, 0.0, l.Scale)
	for _, b := range bars {
		assert.Empty(t, b.Segments)
	}
}

func TestPlaceZeroTotal(t *testing.T) {
	bars := BuildBars(regionType, []dataview.Row{rec(0, 0, "A", "X")})
	l := Place(bars, Canvas{Width: 800, Height: 600, BarWidth: 14})
	assert.Equal(t, 0.0, l.Scale)
	assert.Equal(t, 0.0, bars[1].Segments[0].Y)
}
