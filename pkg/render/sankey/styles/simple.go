package styles

import (
	"bytes"
	"fmt"
)

// Simple colors
const (
	SegmentFill    = "grey"
	BackgroundFill = "white"
	LabelColor     = "#333"
	RibbonOpacity  = 0.75
	DefaultRibbon  = "#1f77b4"
)

// Simple is the flat default style: grey bars and semi-opaque ribbons in
// the row color.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(*bytes.Buffer) {}

func (Simple) RenderBackground(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `  <rect class="background" x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
		num(w), num(h), BackgroundFill)
}

func (Simple) RenderSegment(buf *bytes.Buffer, s Segment) {
	fmt.Fprintf(buf, `    <rect class="segment" id="segment-%d-%d" data-bar="%d" data-segment="%d" x="%s" y="%s" width="%s" height="%s" style="fill: %s;">`,
		s.Bar, s.Index, s.Bar, s.Index, num(s.X), num(s.Y), num(s.W), num(s.H), SegmentFill)
	writeTitle(buf, s.Title)
	buf.WriteString("</rect>\n")
}

func (Simple) RenderRibbon(buf *bytes.Buffer, r Ribbon) {
	fmt.Fprintf(buf, `    <path class="ribbon" data-row="%d" data-value="%s" d="%s" style="fill:%s;" fill-opacity="%.2f">`,
		r.Row, num(r.Value), r.D, fillOr(r.Fill), RibbonOpacity)
	writeTitle(buf, r.Title)
	buf.WriteString("</path>\n")
}

func (Simple) RenderLabel(buf *bytes.Buffer, l Label) {
	renderLabel(buf, l, LabelColor)
}

// Outline draws hollow bars and outlined ribbons, for print.
type Outline struct{}

func (Outline) Name() string { return "outline" }

func (Outline) RenderDefs(*bytes.Buffer) {}

func (Outline) RenderBackground(buf *bytes.Buffer, w, h float64) {
	Simple{}.RenderBackground(buf, w, h)
}

func (Outline) RenderSegment(buf *bytes.Buffer, s Segment) {
	fmt.Fprintf(buf, `    <rect class="segment" id="segment-%d-%d" data-bar="%d" data-segment="%d" x="%s" y="%s" width="%s" height="%s" fill="white" stroke="black" stroke-width="1">`,
		s.Bar, s.Index, s.Bar, s.Index, num(s.X), num(s.Y), num(s.W), num(s.H))
	writeTitle(buf, s.Title)
	buf.WriteString("</rect>\n")
}

func (Outline) RenderRibbon(buf *bytes.Buffer, r Ribbon) {
	fill := fillOr(r.Fill)
	fmt.Fprintf(buf, `    <path class="ribbon" data-row="%d" data-value="%s" d="%s" fill="%s" fill-opacity="0.2" stroke="%s" stroke-width="1">`,
		r.Row, num(r.Value), r.D, fill, fill)
	writeTitle(buf, r.Title)
	buf.WriteString("</path>\n")
}

func (Outline) RenderLabel(buf *bytes.Buffer, l Label) {
	renderLabel(buf, l, "black")
}

// ByName returns the style registered under name.
func ByName(name string) (Style, bool) {
	switch name {
	case "", "simple":
		return Simple{}, true
	case "outline":
		return Outline{}, true
	}
	return nil, false
}

// Names lists the registered style names.
func Names() []string { return []string{"simple", "outline"} }

func renderLabel(buf *bytes.Buffer, l Label, color string) {
	shift := ""
	if l.Shift {
		shift = ` baseline-shift="-1em"`
	}
	fmt.Fprintf(buf, `    <text class="segment-label" x="%s" y="%s" text-anchor="%s"%s fill="%s" font-family="sans-serif" font-size="11">%s</text>`+"\n",
		num(l.X), num(l.Y), l.Anchor, shift, color, EscapeXML(l.Text))
}

func writeTitle(buf *bytes.Buffer, title string) {
	if title != "" {
		fmt.Fprintf(buf, "<title>%s</title>", EscapeXML(title))
	}
}

func fillOr(c string) string {
	if c == "" {
		return DefaultRibbon
	}
	return EscapeXML(c)
}
