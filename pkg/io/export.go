package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/errors"
)

type exportRow struct {
	ID         int                      `json:"id"`
	Value      float64                  `json:"value"`
	Formatted  string                   `json:"formatted,omitempty"`
	Categories []dataview.CategoryValue `json:"categories"`
	Color      string                   `json:"color,omitempty"`
}

type exportDocument struct {
	MeasureName string              `json:"measure_name"`
	Width       float64             `json:"width,omitempty"`
	Height      float64             `json:"height,omitempty"`
	Levels      []dataview.Level    `json:"levels"`
	Rows        []exportRow         `json:"rows"`
	Hierarchy   *dataview.Hierarchy `json:"hierarchy,omitempty"`
	Errors      []string            `json:"errors,omitempty"`
}

// WriteJSON encodes a snapshot as JSON and writes it to w.
// Categories are always written in {"key", "label"} form and the hierarchy is
// included so the output re-imports with [ReadJSON] unchanged.
func WriteJSON(s *dataview.Snapshot, w io.Writer) error {
	if s.Rows == nil {
		return &errors.ExpiredSnapshotError{Reason: "rows unavailable"}
	}
	out := exportDocument{
		MeasureName: s.MeasureName,
		Width:       s.Width,
		Height:      s.Height,
		Levels:      s.Levels(),
		Rows:        make([]exportRow, len(s.Rows)),
		Hierarchy:   s.Hierarchy,
		Errors:      s.Errors,
	}
	if out.Levels == nil {
		out.Levels = []dataview.Level{}
	}
	for i, r := range s.Rows {
		out.Rows[i] = exportRow{
			ID:         int(r.ID()),
			Value:      r.Measure(),
			Formatted:  r.FormattedMeasure(),
			Categories: r.Categories(),
			Color:      r.Color(),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a snapshot to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(s *dataview.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(s, f)
}
