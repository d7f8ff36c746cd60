package dataview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFormattedMeasure(t *testing.T) {
	tests := []struct {
		name string
		rec  *Record
		want string
	}{
		{"integer", NewRecord(0, 10), "10"},
		{"fraction", NewRecord(0, 2.5), "2.5"},
		{"host formatted", &Record{Value: 1234, Formatted: "1,234"}, "1,234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.FormattedMeasure())
		})
	}
}

func TestLabels(t *testing.T) {
	r := NewRecord(3, 1, CategoryValue{Key: "a", Label: "Alpha"}, Cat("X"))
	assert.Equal(t, []string{"Alpha", "X"}, Labels(r))
	assert.Equal(t, RowID(3), r.ID())
}

func TestBuildHierarchy(t *testing.T) {
	levels := []Level{{Name: "Region"}, {Name: "Type"}}
	rows := []Row{
		NewRecord(0, 10, Cat("A"), Cat("X")),
		NewRecord(1, 20, Cat("B"), Cat("Y")),
		NewRecord(2, 5, CategoryValue{Key: "A", Label: "later"}, Cat("Y")),
	}

	h := BuildHierarchy(levels, rows)
	require.NotNil(t, h.Root)
	assert.Equal(t, -1, h.Root.Level)
	assert.Equal(t, 2, h.Depth())

	require.Len(t, h.Root.Children, 2)
	a := h.Root.Children[0]
	assert.Equal(t, "A", a.Key)
	assert.Equal(t, "A", a.Label, "smallest label wins")
	require.Len(t, a.Children, 2)
	assert.Equal(t, 1, a.Children[0].Level)
	assert.Equal(t, "X", a.Children[0].Key)
	assert.Equal(t, "Y", a.Children[1].Key)

	var visited []string
	h.Walk(func(n *Node) { visited = append(visited, n.Key) })
	assert.Equal(t, []string{"A", "X", "Y", "B", "Y"}, visited)
}

func TestBuildHierarchyLabelIgnoresRowOrder(t *testing.T) {
	levels := []Level{{Name: "L"}}
	zeta := NewRecord(0, 1, CategoryValue{Key: "k", Label: "Zeta"})
	alpha := NewRecord(1, 1, CategoryValue{Key: "k", Label: "Alpha"})

	for _, rows := range [][]Row{{zeta, alpha}, {alpha, zeta}} {
		h := BuildHierarchy(levels, rows)
		require.Len(t, h.Root.Children, 1)
		assert.Equal(t, "Alpha", h.Root.Children[0].Label)
	}
}

func TestPreferLabel(t *testing.T) {
	tests := []struct {
		cur, next, want string
	}{
		{"", "b", "b"},
		{"b", "", "b"},
		{"b", "a", "a"},
		{"a", "b", "a"},
		{"a", "a", "a"},
	}
	for _, tt := range tests {
		if got := PreferLabel(tt.cur, tt.next); got != tt.want {
			t.Errorf("PreferLabel(%q, %q) = %q, want %q", tt.cur, tt.next, got, tt.want)
		}
		if got := PreferLabel(tt.next, tt.cur); got != tt.want {
			t.Errorf("PreferLabel(%q, %q) = %q, want %q", tt.next, tt.cur, got, tt.want)
		}
	}
}

func TestBuildHierarchyShortRows(t *testing.T) {
	h := BuildHierarchy([]Level{{Name: "L0"}}, []Row{NewRecord(0, 1, Cat("a"), Cat("extra"))})
	require.Len(t, h.Root.Children, 1)
	assert.Empty(t, h.Root.Children[0].Children)
}

func TestLevelLabel(t *testing.T) {
	assert.Equal(t, "Region", Level{Name: "Region"}.Label())
	assert.Equal(t, "Sales region", Level{Name: "Region", DisplayName: "Sales region"}.Label())
}
