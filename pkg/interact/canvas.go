package interact

import (
	"github.com/matzehuels/sankey/pkg/render/sankey"
)

// Canvas is the drawing surface. Each element carries the tag used to
// resolve pointer events back to the frame.
type Canvas interface {
	// Reset removes every element and resizes the surface.
	Reset(width, height float64)
	Rect(x, y, w, h float64, fill string, tag sankey.Tag)
	Path(d, fill string, tag sankey.Tag)
	Text(x, y float64, anchor string, shift bool, text string)
	// Reorder moves the ribbon paths into the given order, last on top.
	Reorder(order []sankey.Tag)
}

// Element is one drawn item of a Scene.
type Element struct {
	Kind   string     `json:"kind"` // "rect", "path" or "text"
	X      float64    `json:"x,omitempty"`
	Y      float64    `json:"y,omitempty"`
	W      float64    `json:"w,omitempty"`
	H      float64    `json:"h,omitempty"`
	D      string     `json:"d,omitempty"`
	Fill   string     `json:"fill,omitempty"`
	Text   string     `json:"text,omitempty"`
	Anchor string     `json:"anchor,omitempty"`
	Shift  bool       `json:"shift,omitempty"`
	Tag    sankey.Tag `json:"tag"`
}

// Scene is an in-memory Canvas: a flat list of rects, a list of paths in
// z-order and a list of labels.
type Scene struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Rects  []Element `json:"rects"`
	Paths  []Element `json:"paths"`
	Texts  []Element `json:"texts"`
	Ops    int       `json:"ops"` // Draw commands issued since the last Reset
}

var _ Canvas = (*Scene)(nil)

func (s *Scene) Reset(width, height float64) {
	*s = Scene{Width: width, Height: height}
}

func (s *Scene) Rect(x, y, w, h float64, fill string, tag sankey.Tag) {
	s.Ops++
	s.Rects = append(s.Rects, Element{Kind: "rect", X: x, Y: y, W: w, H: h, Fill: fill, Tag: tag})
}

func (s *Scene) Path(d, fill string, tag sankey.Tag) {
	s.Ops++
	s.Paths = append(s.Paths, Element{Kind: "path", D: d, Fill: fill, Tag: tag})
}

func (s *Scene) Text(x, y float64, anchor string, shift bool, text string) {
	s.Ops++
	s.Texts = append(s.Texts, Element{Kind: "text", X: x, Y: y, Anchor: anchor, Shift: shift, Text: text})
}

// Reorder stably moves paths into the order of their tags. Paths whose tag
// is not listed keep their relative order at the bottom.
func (s *Scene) Reorder(order []sankey.Tag) {
	s.Ops++
	pos := make(map[sankey.Tag]int, len(order))
	for i, t := range order {
		if _, seen := pos[t]; !seen {
			pos[t] = i
		}
	}
	var rest, ranked []Element
	slots := make([][]Element, len(order))
	for _, p := range s.Paths {
		i, ok := pos[p.Tag]
		if !ok {
			rest = append(rest, p)
			continue
		}
		slots[i] = append(slots[i], p)
	}
	for _, sl := range slots {
		ranked = append(ranked, sl...)
	}
	s.Paths = append(rest, ranked...)
}
