// Package sankey provides the multi-level flow diagram engine.
//
// # Overview
//
// A flow diagram shows how one quantity is split across the categories of
// several ordered dimensions. Each dimension becomes a vertical bar whose
// segments are its categories; every row of data becomes a ribbon between
// adjacent bars, connecting the row's category on one level to its category
// on the next.
//
// [Render] turns a [dataview.Snapshot] into an immutable [Frame] in five
// stages:
//
//  1. Aggregate ([aggregate]): per-level category totals; enforce conservation.
//  2. Bars ([layout]): group rows into segments by category key.
//  3. Ordering ([ordering]): sort segments by label, slots by neighbour label.
//  4. Placement ([layout]): bar gap, segment gap, value → height scale.
//  5. Flows ([flow]): one cubic ribbon per row and adjacent level pair.
//
// The context is checked between stages; cancellation abandons the render
// with an [errors.ExpiredSnapshotError] and no partial frame.
//
// # Frames
//
// Every drawable in a Frame carries an immutable [Tag]. Hosts resolve
// pointer events by hit testing ([Frame.HitTest]) and then ask the frame
// for the tooltip ([Frame.Tooltip]) or the rows to mark ([Frame.RowsFor]).
//
//	frame, err := sankey.Render(ctx, snap, sankey.WithLabels())
//	if err != nil {
//	    return err
//	}
//	tag := frame.HitTest(flow.Point{X: 120, Y: 40})
//	fmt.Println(frame.Tooltip(tag))
//
// # Subpackages
//
//   - [aggregate]: level totals and the conservation check.
//   - [layout]: bars, segments, slots and their coordinates.
//   - [ordering]: collation-based segment and slot ordering.
//   - [flow]: ribbon geometry, path data and point containment.
//   - [styles]: visual themes.
//   - [sink]: SVG, JSON, PNG and PDF output.
//
// [aggregate]: github.com/matzehuels/sankey/pkg/render/sankey/aggregate
// [layout]: github.com/matzehuels/sankey/pkg/render/sankey/layout
// [ordering]: github.com/matzehuels/sankey/pkg/render/sankey/ordering
// [flow]: github.com/matzehuels/sankey/pkg/render/sankey/flow
// [styles]: github.com/matzehuels/sankey/pkg/render/sankey/styles
// [sink]: github.com/matzehuels/sankey/pkg/render/sankey/sink
package sankey
