package dataview

import (
	"strconv"
)

// RowID is the stable identity of a row within one snapshot (its index).
type RowID int

// CategoryValue is one categorical value of a row: the raw grouping key and
// the formatted label shown to the user.
type CategoryValue struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// PreferLabel picks the label kept for a key seen with labels cur and next:
// the non-empty one, else the smaller. The choice does not depend on the
// order in which the labels arrive.
func PreferLabel(cur, next string) string {
	if cur == "" || (next != "" && next < cur) {
		return next
	}
	return cur
}

// Cat returns a CategoryValue whose key and label are both s.
func Cat(s string) CategoryValue { return CategoryValue{Key: s, Label: s} }

// Row is a single data row as seen by the layout engine.
type Row interface {
	// ID returns the row identity.
	ID() RowID
	// Measure returns the continuous value. Negative values are rejected
	// by the aggregator.
	Measure() float64
	// FormattedMeasure returns the measure as the host would display it.
	FormattedMeasure() string
	// Categories returns one value per hierarchy level, in level order.
	Categories() []CategoryValue
	// Color returns the opaque fill assigned by the host.
	Color() string
}

// Record is the in-memory Row used by importers and tests.
type Record struct {
	Index     RowID           `json:"id"`
	Value     float64         `json:"value"`
	Formatted string          `json:"formatted,omitempty"`
	Path      []CategoryValue `json:"categories"`
	Fill      string          `json:"color,omitempty"`
}

// NewRecord builds a Record with the given identity, measure and categories.
func NewRecord(id RowID, value float64, cats ...CategoryValue) *Record {
	return &Record{Index: id, Value: value, Path: cats}
}

func (r *Record) ID() RowID                   { return r.Index }
func (r *Record) Measure() float64            { return r.Value }
func (r *Record) Categories() []CategoryValue { return r.Path }
func (r *Record) Color() string               { return r.Fill }

// FormattedMeasure returns the host formatting when present, otherwise the
// shortest decimal representation of the measure.
func (r *Record) FormattedMeasure() string {
	if r.Formatted != "" {
		return r.Formatted
	}
	return FormatValue(r.Value)
}

// WithColor sets the fill and returns the record for chaining.
func (r *Record) WithColor(c string) *Record {
	r.Fill = c
	return r
}

// FormatValue renders a measure without trailing zeros.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Labels returns the formatted label of every category of r.
func Labels(r Row) []string {
	cats := r.Categories()
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.Label
	}
	return out
}
