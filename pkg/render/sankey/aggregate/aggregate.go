// Package aggregate computes per-level category totals for a flow diagram
// and enforces the conservation law: every level must account for the same
// total quantity.
//
// The totals are seeded from the categorical hierarchy, so categories that
// appear in the hierarchy but in no row still exist with a zero total, and
// a hierarchy label takes precedence over the labels rows carry.
package aggregate

import (
	"math"

	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/errors"
)

// Tolerance is the relative (and absolute floor) tolerance used when
// comparing level sums.
const Tolerance = 1e-9

// Entry is the accumulated total of one category at one level.
type Entry struct {
	Key   string
	Label string
	Total float64
}

// Totals maps level → key → accumulated total. Keys keep their discovery
// order: hierarchy order first, then keys first seen in rows.
type Totals struct {
	levels []map[string]*Entry
	order  [][]string
}

// Depth returns the number of levels.
func (t *Totals) Depth() int { return len(t.levels) }

// Lookup returns the entry for key at level.
func (t *Totals) Lookup(level int, key string) (Entry, bool) {
	if level < 0 || level >= len(t.levels) {
		return Entry{}, false
	}
	e, ok := t.levels[level][key]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Level returns the entries of one level in discovery order.
func (t *Totals) Level(level int) []Entry {
	if level < 0 || level >= len(t.levels) {
		return nil
	}
	out := make([]Entry, 0, len(t.order[level]))
	for _, k := range t.order[level] {
		out = append(out, *t.levels[level][k])
	}
	return out
}

// Sum returns the sum of all totals at level.
func (t *Totals) Sum(level int) float64 {
	var s float64
	for _, e := range t.Level(level) {
		s += e.Total
	}
	return s
}

// Aggregate accumulates row measures into per-level category totals.
//
// It fails with [errors.NegativeValueError] on the first negative measure
// and with [errors.ConservationError] when the level sums differ.
func Aggregate(h *dataview.Hierarchy, rows []dataview.Row) (*Totals, error) {
	for _, r := range rows {
		if v := r.Measure(); v < 0 || math.IsNaN(v) {
			return nil, &errors.NegativeValueError{Row: int(r.ID()), Value: v}
		}
	}

	depth := h.Depth()
	t := &Totals{
		levels: make([]map[string]*Entry, depth),
		order:  make([][]string, depth),
	}
	for i := range t.levels {
		t.levels[i] = make(map[string]*Entry)
	}

	pinned := make([]map[string]bool, depth)
	for i := range pinned {
		pinned[i] = make(map[string]bool)
	}
	h.Walk(func(n *dataview.Node) {
		if n.Level < 0 || n.Level >= depth {
			return
		}
		t.seed(n.Level, n.Key, n.Label)
		pinned[n.Level][n.Key] = true
	})

	for _, r := range rows {
		v := r.Measure()
		for i, c := range r.Categories() {
			if i >= depth {
				break
			}
			if pinned[i][c.Key] {
				t.levels[i][c.Key].Total += v
				continue
			}
			t.seed(i, c.Key, c.Label).Total += v
		}
	}

	if err := t.checkConservation(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Totals) seed(level int, key, label string) *Entry {
	if e, ok := t.levels[level][key]; ok {
		e.Label = dataview.PreferLabel(e.Label, label)
		return e
	}
	e := &Entry{Key: key, Label: label}
	t.levels[level][key] = e
	t.order[level] = append(t.order[level], key)
	return e
}

func (t *Totals) checkConservation() error {
	if len(t.levels) < 2 {
		return nil
	}
	sums := make([]float64, len(t.levels))
	for i := range t.levels {
		sums[i] = t.Sum(i)
	}
	for _, s := range sums[1:] {
		if !Equal(s, sums[0]) {
			return &errors.ConservationError{Totals: sums}
		}
	}
	return nil
}

// Equal reports whether a and b agree within [Tolerance].
func Equal(a, b float64) bool {
	return math.Abs(a-b) <= Tolerance*math.Max(math.Abs(a), math.Abs(b))+Tolerance
}
