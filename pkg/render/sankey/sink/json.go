package sink

import (
	"encoding/json"

	"github.com/matzehuels/sankey/pkg/render/sankey"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style  string
	locale string
}

// WithJSONStyle records the style name in the JSON output.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONLocale records the collation locale in the JSON output.
func WithJSONLocale(l string) JSONOption { return func(r *jsonRenderer) { r.locale = l } }

// FrameJSON is the exported form of a frame.
type FrameJSON struct {
	Width       float64       `json:"width"`
	Height      float64       `json:"height"`
	BarWidth    float64       `json:"bar_width"`
	BarGap      float64       `json:"bar_gap"`
	SegmentGap  float64       `json:"segment_gap"`
	Scale       float64       `json:"scale"`
	MeasureName string        `json:"measure_name,omitempty"`
	Style       string        `json:"style,omitempty"`
	Locale      string        `json:"locale,omitempty"`
	Bars        []BarJSON     `json:"bars"`
	Segments    []SegmentJSON `json:"segments"`
	Ribbons     []RibbonJSON  `json:"ribbons"`
}

// BarJSON describes one level.
type BarJSON struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// SegmentJSON describes one positioned segment.
type SegmentJSON struct {
	Bar     int     `json:"bar"`
	Segment int     `json:"segment"`
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Rows    []int   `json:"rows"`
}

// RibbonJSON describes one ribbon, in z-order.
type RibbonJSON struct {
	Row       int     `json:"row"`
	FromLevel int     `json:"from_level"`
	Value     float64 `json:"value"`
	Color     string  `json:"color,omitempty"`
	D         string  `json:"d"`
}

// RenderJSON exports the frame geometry as a pretty-printed JSON document.
// It does not modify the frame and is safe to call concurrently.
func RenderJSON(f *sankey.Frame, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	return json.MarshalIndent(ExportFrame(f, r.style, r.locale), "", "  ")
}

// ExportFrame converts f to its JSON form.
func ExportFrame(f *sankey.Frame, style, locale string) FrameJSON {
	out := FrameJSON{
		Width:       f.Width,
		Height:      f.Height,
		BarWidth:    f.Layout.BarWidth,
		BarGap:      f.Layout.BarGap,
		SegmentGap:  f.Layout.SegmentGap,
		Scale:       f.Layout.Scale,
		MeasureName: f.MeasureName,
		Style:       style,
		Locale:      locale,
		Bars:        make([]BarJSON, 0, len(f.Layout.Bars)),
		Segments:    make([]SegmentJSON, 0, len(f.Segments)),
		Ribbons:     make([]RibbonJSON, 0, len(f.Ribbons)),
	}
	for _, b := range f.Layout.Bars {
		out.Bars = append(out.Bars, BarJSON{Name: b.Name, Total: b.Total})
	}
	for _, s := range f.Segments {
		rows := make([]int, len(s.Rows))
		for i, id := range s.Rows {
			rows[i] = int(id)
		}
		out.Segments = append(out.Segments, SegmentJSON{
			Bar: s.Tag.Bar, Segment: s.Tag.Segment,
			Key: s.Key, Label: s.Label, Value: s.Value,
			X: s.X, Y: s.Y, Width: s.W, Height: s.H,
			Rows: rows,
		})
	}
	for _, rb := range f.Ribbons {
		out.Ribbons = append(out.Ribbons, RibbonJSON{
			Row:       int(rb.Tag.Row),
			FromLevel: rb.Tag.Level,
			Value:     rb.Tag.Value,
			Color:     rb.Color,
			D:         rb.Path.String(),
		})
	}
	return out
}
