package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/errors"
)

// Columns maps CSV header names to snapshot fields.
type Columns struct {
	Measure    string            `toml:"measure"`    // Numeric value column (required)
	Dimensions []string          `toml:"dimensions"` // One column per level, in level order (required)
	Keys       map[string]string `toml:"keys"`       // Optional dimension -> raw key column
	Color      string            `toml:"color"`      // Optional color column
	Formatted  string            `toml:"formatted"`  // Optional preformatted measure column
}

// Validate checks that the mapping names a measure and at least one dimension.
func (c Columns) Validate() error {
	if c.Measure == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "csv columns: measure column is required")
	}
	if len(c.Dimensions) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "csv columns: at least one dimension is required")
	}
	for _, d := range c.Dimensions {
		if err := errors.ValidateName(d); err != nil {
			return fmt.Errorf("csv columns: dimension: %w", err)
		}
	}
	return nil
}

// ReadCSV decodes a CSV table with a header row into a snapshot.
//
// Every record becomes one row whose id is its position among the data
// records. The measure is parsed as a float; an empty measure cell is an
// error. Level names are the dimension column names.
func ReadCSV(r io.Reader, cols Columns) (*dataview.Snapshot, error) {
	if err := cols.Validate(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv header")
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	col := func(name string) (int, error) {
		i, ok := index[name]
		if !ok {
			return 0, errors.New(errors.ErrCodeInvalidInput, "unknown column: %s", name)
		}
		return i, nil
	}

	measure, err := col(cols.Measure)
	if err != nil {
		return nil, err
	}
	dims := make([]int, len(cols.Dimensions))
	keys := make([]int, len(cols.Dimensions))
	levels := make([]dataview.Level, len(cols.Dimensions))
	for i, d := range cols.Dimensions {
		if dims[i], err = col(d); err != nil {
			return nil, err
		}
		keys[i] = dims[i]
		if k, ok := cols.Keys[d]; ok {
			if keys[i], err = col(k); err != nil {
				return nil, err
			}
		}
		levels[i] = dataview.Level{Name: d}
	}
	color, formatted := -1, -1
	if cols.Color != "" {
		if color, err = col(cols.Color); err != nil {
			return nil, err
		}
	}
	if cols.Formatted != "" {
		if formatted, err = col(cols.Formatted); err != nil {
			return nil, err
		}
	}

	rows := []dataview.Row{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv")
		}

		cell := strings.TrimSpace(rec[measure])
		if cell == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: empty %s", line, cols.Measure)
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d: %s", line, cols.Measure)
		}

		cats := make([]dataview.CategoryValue, len(dims))
		for i := range dims {
			cats[i] = dataview.CategoryValue{Key: rec[keys[i]], Label: rec[dims[i]]}
		}
		row := dataview.NewRecord(dataview.RowID(len(rows)), v, cats...)
		if color >= 0 {
			if err := errors.ValidateColor(rec[color]); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			row.Fill = rec[color]
		}
		if formatted >= 0 {
			row.Formatted = rec[formatted]
		}
		rows = append(rows, row)
	}

	return &dataview.Snapshot{
		Rows:        rows,
		Hierarchy:   dataview.BuildHierarchy(levels, rows),
		MeasureName: cols.Measure,
	}, nil
}

// ImportCSV reads a CSV file at path using the column mapping.
func ImportCSV(path string, cols Columns) (*dataview.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f, cols)
}

// Import dispatches on the file extension: ".csv" uses [ImportCSV], anything
// else is read as a JSON snapshot.
func Import(path string, cols Columns) (*dataview.Snapshot, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ImportCSV(path, cols)
	}
	return ImportJSON(path)
}

