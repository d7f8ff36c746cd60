// Package layout builds the bars of a flow diagram and assigns them pixel
// coordinates.
//
// # Bars and Segments
//
// Every hierarchy level becomes one [Bar]. Rows are grouped into a bar's
// [Segment]s by the category KEY at that level; the first label seen for a
// key becomes the segment label. Each segment keeps one [SegmentRow] per
// contributing row so flows can be anchored at the row's vertical slot.
//
// # Coordinates
//
// [Place] lays bars out left to right at a fixed bar width, separated by
// an equal gap, and stacks segments top to bottom using a single linear
// value → height scale shared by every bar:
//
//	barGap     = (width - barWidth*bars) / (bars-1)   // 0 for one bar
//	segmentGap = height * GapRatio
//	scale      = (height - segmentGap) / bars[0].Total
//
// The segment gap is split evenly between the segments of a bar, so every
// bar with more than one segment spans exactly the canvas height.
//
// Segment order is not decided here; callers sort bars (see the ordering
// package) between [BuildBars] and [Place].
package layout
