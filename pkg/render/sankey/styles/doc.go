// Package styles defines the visual themes of the SVG sink.
//
// A [Style] receives fully positioned primitives ([Segment], [Ribbon],
// [Label]) and writes SVG elements for them. Styles never compute geometry.
//
//   - [Simple]: grey bars, row-colored semi-opaque ribbons (default)
//   - [Outline]: hollow bars and outlined ribbons
package styles
