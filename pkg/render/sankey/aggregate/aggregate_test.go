package aggregate

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/errors"
)

var regionType = []dataview.Level{{Name: "Region"}, {Name: "Type"}}

func rec(id int, v float64, keys ...string) dataview.Row {
	cats := make([]dataview.CategoryValue, len(keys))
	for i, k := range keys {
		cats[i] = dataview.Cat(k)
	}
	return dataview.NewRecord(dataview.RowID(id), v, cats...)
}

func TestAggregate(t *testing.T) {
	rows := []dataview.Row{rec(0, 10, "A", "X"), rec(1, 20, "B", "Y")}
	h := dataview.BuildHierarchy(regionType, rows)

	totals, err := Aggregate(h, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, totals.Depth())

	a, ok := totals.Lookup(0, "A")
	require.True(t, ok)
	assert.Equal(t, 10.0, a.Total)

	y, ok := totals.Lookup(1, "Y")
	require.True(t, ok)
	assert.Equal(t, 20.0, y.Total)

	assert.Equal(t, 30.0, totals.Sum(0))
	assert.Equal(t, 30.0, totals.Sum(1))

	_, ok = totals.Lookup(2, "A")
	assert.False(t, ok)
}

func TestAggregateSeedsHierarchyOnlyNodes(t *testing.T) {
	h := &dataview.Hierarchy{
		Levels: []dataview.Level{{Name: "L"}},
		Root: &dataview.Node{Level: -1, Children: []*dataview.Node{
			{Level: 0, Key: "k1", Label: "One"},
			{Level: 0, Key: "k2", Label: "Two"},
		}},
	}
	totals, err := Aggregate(h, []dataview.Row{rec(0, 4, "k2")})
	require.NoError(t, err)

	entries := totals.Level(0)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Key: "k1", Label: "One", Total: 0}, entries[0])
	assert.Equal(t, Entry{Key: "k2", Label: "Two", Total: 4}, entries[1])
}

func TestAggregateHierarchyLabelWins(t *testing.T) {
	h := &dataview.Hierarchy{
		Levels: []dataview.Level{{Name: "L"}},
		Root: &dataview.Node{Level: -1, Children: []*dataview.Node{
			{Level: 0, Key: "k", Label: "Kilo"},
		}},
	}
	row := dataview.NewRecord(0, 2, dataview.CategoryValue{Key: "k", Label: "Alpha"})

	totals, err := Aggregate(h, []dataview.Row{row})
	require.NoError(t, err)
	e, ok := totals.Lookup(0, "k")
	require.True(t, ok)
	assert.Equal(t, "Kilo", e.Label)
	assert.Equal(t, 2.0, e.Total)
}

func TestAggregateKeyMissingFromHierarchy(t *testing.T) {
	h := &dataview.Hierarchy{Levels: []dataview.Level{{Name: "L"}}, Root: &dataview.Node{Level: -1}}
	row := dataview.NewRecord(0, 2, dataview.CategoryValue{Key: "z", Label: "Zed"})

	totals, err := Aggregate(h, []dataview.Row{row})
	require.NoError(t, err)
	e, ok := totals.Lookup(0, "z")
	require.True(t, ok)
	assert.Equal(t, "Zed", e.Label)
}

func TestAggregateNegativeValue(t *testing.T) {
	rows := []dataview.Row{rec(0, 10, "A", "X"), rec(1, -1, "B", "Y")}
	_, err := Aggregate(dataview.BuildHierarchy(regionType, rows), rows)

	var neg *errors.NegativeValueError
	require.True(t, stderrors.As(err, &neg))
	assert.Equal(t, 1, neg.Row)
	assert.Equal(t, -1.0, neg.Value)
	assert.True(t, errors.IsFatal(err))
}

func TestAggregateConservation(t *testing.T) {
	// Row 1 has no value at level 1, so level 1 sums to 10 while level 0 sums to 30.
	rows := []dataview.Row{rec(0, 10, "A", "X"), rec(1, 20, "B")}
	_, err := Aggregate(dataview.BuildHierarchy(regionType, rows), rows)

	var cons *errors.ConservationError
	require.True(t, stderrors.As(err, &cons))
	assert.Equal(t, []float64{30, 10}, cons.Totals)
}

func TestAggregateEmpty(t *testing.T) {
	totals, err := Aggregate(dataview.BuildHierarchy(regionType, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, totals.Sum(0))
	assert.Empty(t, totals.Level(1))
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b float64
		want bool
	}{
		{30, 30, true},
		{0.1 + 0.2, 0.3, true},
		{1e12, 1e12 + 1e-4, true},
		{0, 1e-10, true},
		{30, 29.999, false},
		{0, 1e-6, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Equal(tt.a, tt.b), "Equal(%v, %v)", tt.a, tt.b)
	}
}
