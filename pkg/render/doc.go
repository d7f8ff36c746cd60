// Package render provides format conversion shared by the diagram sinks.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(frame)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// The flow diagram engine itself lives in the [sankey] subpackage.
//
// [sankey]: github.com/matzehuels/sankey/pkg/render/sankey
package render
