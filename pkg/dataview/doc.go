// Package dataview defines the host-owned input of a flow diagram: rows
// carrying one continuous measure and an ordered sequence of categorical
// values, the categorical hierarchy those values were drawn from, and the
// snapshot that bundles them with canvas size and axis metadata.
//
// Rows are immutable and referenced, never copied, by the layout engine.
// Everything downstream identifies a row by its [RowID].
//
// # Building Snapshots
//
// Hosts that already know their hierarchy set [Snapshot.Hierarchy] directly.
// Hosts that only have rows (CSV files, JSON without a tree) derive one:
//
//	rows := []dataview.Row{
//	    dataview.NewRecord(0, 10, dataview.Cat("A"), dataview.Cat("X")),
//	    dataview.NewRecord(1, 20, dataview.Cat("B"), dataview.Cat("Y")),
//	}
//	h := dataview.BuildHierarchy([]dataview.Level{{Name: "Region"}, {Name: "Type"}}, rows)
package dataview
