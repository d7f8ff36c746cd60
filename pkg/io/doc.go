// Package io provides JSON and CSV import and JSON export for data snapshots.
//
// # Overview
//
// A snapshot is the unit the layout engine consumes: a measure name, ordered
// levels, the rows with their categories and an optional hierarchy. This
// package reads snapshots from files so the CLI and the HTTP host can feed
// the engine without a live host application.
//
// # JSON Format
//
//	{
//	  "measure_name": "Sales",
//	  "width": 800,
//	  "height": 600,
//	  "levels": [{"name": "Region", "display_name": "Sales region"}, {"name": "Type"}],
//	  "rows": [
//	    {"id": 0, "value": 10, "categories": ["A", "X"], "color": "#1f77b4"},
//	    {"id": 1, "value": 20, "formatted": "20.0", "categories": [{"key": "b", "label": "B"}, "Y"]}
//	  ],
//	  "errors": []
//	}
//
// Categories are either a plain string (key and label alike) or an object
// with a raw key and a display label. "hierarchy" is optional and derived
// from the rows when absent. "errors" carries data view errors reported by
// a host; a snapshot with errors renders the error overlay instead of a
// diagram.
//
// # CSV Format
//
// [ReadCSV] takes a header row and a [Columns] mapping naming the measure
// column and one column per level:
//
//	Region,Type,Sales
//	A,X,10
//	B,Y,20
//
//	snap, err := io.ImportCSV("sales.csv", io.Columns{
//	    Measure:    "Sales",
//	    Dimensions: []string{"Region", "Type"},
//	})
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the JSON format above, including the
// hierarchy, so an exported snapshot re-imports unchanged. For the computed
// geometry, use the JSON sink in [render/sankey/sink].
//
// [render/sankey/sink]: github.com/matzehuels/sankey/pkg/render/sankey/sink
package io
