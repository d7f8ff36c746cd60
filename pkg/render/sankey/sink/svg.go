package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/sankey/pkg/render/sankey"
	"github.com/matzehuels/sankey/pkg/render/sankey/styles"
)

const ribbonInteractionCSS = `
    .ribbon { transition: fill-opacity 0.2s ease; }
    .ribbon.highlight { fill-opacity: 1; }
    .segment { cursor: pointer; }
    .ribbon { cursor: pointer; }`

const ribbonInteractionJS = `
    function highlight(row) {
      document.querySelectorAll('.ribbon').forEach(p => p.classList.toggle('highlight', p.dataset.row === row));
    }
    function clearHighlight() {
      document.querySelectorAll('.ribbon').forEach(p => p.classList.remove('highlight'));
    }
    document.querySelectorAll('.ribbon').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.row));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	interactive bool
	tooltips    bool
}

// WithStyle sets the visual style (default [styles.Simple]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithInteraction embeds CSS and script that highlight every ribbon of the
// hovered row.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithTooltips adds a <title> with the frame tooltip to every element.
func WithTooltips() SVGOption { return func(r *svgRenderer) { r.tooltips = true } }

// RenderSVG writes the frame as a standalone SVG document. Elements appear
// in the frame's draw order: background, segments, ribbons in z-order,
// labels.
func RenderSVG(f *sankey.Frame, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.Width, f.Height, f.Width, f.Height)

	r.style.RenderDefs(&buf)
	r.style.RenderBackground(&buf, f.Width, f.Height)

	buf.WriteString(`  <g id="bars">` + "\n")
	for _, s := range f.Segments {
		r.style.RenderSegment(&buf, styles.Segment{
			Bar: s.Tag.Bar, Index: s.Tag.Segment,
			X: s.X, Y: s.Y, W: s.W, H: s.H,
			Title: r.title(f, s.Tag),
		})
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g id="rows">` + "\n")
	for _, rb := range f.Ribbons {
		r.style.RenderRibbon(&buf, styles.Ribbon{
			Row:   int(rb.Tag.Row),
			Value: rb.Tag.Value,
			D:     rb.Path.String(),
			Fill:  rb.Color,
			Title: r.title(f, rb.Tag),
		})
	}
	buf.WriteString("  </g>\n")

	if hasLabels(f) {
		buf.WriteString(`  <g id="labels">` + "\n")
		for _, s := range f.Segments {
			if s.Text == nil {
				continue
			}
			r.style.RenderLabel(&buf, styles.Label{
				Text: s.Text.Text, X: s.Text.X, Y: s.Text.Y,
				Anchor: s.Text.Anchor, Shift: s.Text.Shift,
			})
		}
		buf.WriteString("  </g>\n")
	}

	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", ribbonInteractionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", ribbonInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) title(f *sankey.Frame, t sankey.Tag) string {
	if !r.tooltips {
		return ""
	}
	return f.Tooltip(t)
}

func hasLabels(f *sankey.Frame) bool {
	for _, s := range f.Segments {
		if s.Text != nil {
			return true
		}
	}
	return false
}
