package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/errors"
)

type document struct {
	MeasureName string              `json:"measure_name"`
	Width       float64             `json:"width,omitempty"`
	Height      float64             `json:"height,omitempty"`
	Levels      []dataview.Level    `json:"levels"`
	Rows        []row               `json:"rows"`
	Hierarchy   *dataview.Hierarchy `json:"hierarchy,omitempty"`
	Errors      []string            `json:"errors,omitempty"`
}

type row struct {
	ID         *int       `json:"id,omitempty"`
	Value      float64    `json:"value"`
	Formatted  string     `json:"formatted,omitempty"`
	Categories []category `json:"categories"`
	Color      string     `json:"color,omitempty"`
}

// category accepts either a plain string or a {"key", "label"} object.
type category dataview.CategoryValue

func (c *category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = category(dataview.Cat(s))
		return nil
	}
	var v dataview.CategoryValue
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Label == "" {
		v.Label = v.Key
	}
	*c = category(v)
	return nil
}

// ReadJSON decodes a JSON snapshot from r.
//
// The input must be a JSON object with "levels" and "rows":
//
//	{
//	  "measure_name": "Sales",
//	  "levels": [{"name": "Region"}, {"name": "Type"}],
//	  "rows": [
//	    {"value": 10, "categories": ["A", "X"]},
//	    {"value": 20, "categories": [{"key": "b", "label": "B"}, "Y"]}
//	  ]
//	}
//
// Row ids default to the row index. The hierarchy is derived from the rows
// unless the document carries one. Width and height are left at zero when
// absent so callers can apply their own defaults.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - A level name is empty or contains control characters
//   - Two rows share an id
//   - A row has a different number of categories than there are levels
//   - A row color is not a plain CSS color
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*dataview.Snapshot, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode snapshot")
	}
	if len(doc.Levels) == 0 && doc.Hierarchy != nil {
		doc.Levels = doc.Hierarchy.Levels
	}
	for i, l := range doc.Levels {
		if err := errors.ValidateName(l.Name); err != nil {
			return nil, fmt.Errorf("level %d: %w", i, err)
		}
	}

	rows := make([]dataview.Row, 0, len(doc.Rows))
	seen := make(map[dataview.RowID]bool, len(doc.Rows))
	for i, in := range doc.Rows {
		id := dataview.RowID(i)
		if in.ID != nil {
			id = dataview.RowID(*in.ID)
		}
		if seen[id] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "row %d: duplicate id %d", i, id)
		}
		seen[id] = true

		if len(in.Categories) != len(doc.Levels) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"row %d: has %d categories, want %d", i, len(in.Categories), len(doc.Levels))
		}
		if err := errors.ValidateColor(in.Color); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		cats := make([]dataview.CategoryValue, len(in.Categories))
		for j, c := range in.Categories {
			cats[j] = dataview.CategoryValue(c)
		}
		rec := dataview.NewRecord(id, in.Value, cats...).WithColor(in.Color)
		rec.Formatted = in.Formatted
		rows = append(rows, rec)
	}

	snap := &dataview.Snapshot{
		Rows:        rows,
		Hierarchy:   doc.Hierarchy,
		Errors:      doc.Errors,
		Width:       doc.Width,
		Height:      doc.Height,
		MeasureName: doc.MeasureName,
	}
	if snap.Hierarchy != nil && len(snap.Hierarchy.Levels) == 0 {
		snap.Hierarchy.Levels = doc.Levels
	}
	snap.EnsureHierarchy(doc.Levels)
	return snap, nil
}

// ImportJSON reads a JSON snapshot file at path.
// It returns the same validation errors as [ReadJSON], wrapped with the path.
func ImportJSON(path string) (*dataview.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
