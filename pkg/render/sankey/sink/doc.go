// Package sink provides output format renderers for flow diagram frames.
//
// # Overview
//
// A "sink" transforms a computed [sankey.Frame] into a final output format:
//
//   - SVG: Scalable vector graphics, optionally interactive
//   - JSON: Frame geometry export for external tools
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] writes a background rect, one rect per segment (tagged with
// data-bar and data-segment), one path per ribbon in z-order (tagged with
// data-row and data-value) and, when the frame carries them, segment labels.
//
//	svg := sink.RenderSVG(frame,
//	    sink.WithStyle(styles.Outline{}),
//	    sink.WithTooltips(),
//	    sink.WithInteraction(),
//	)
//
// # JSON Output
//
// [RenderJSON] exports canvas metrics, bars, segments and ribbons with their
// SVG path data, suitable for drawing the frame with another toolkit.
package sink
