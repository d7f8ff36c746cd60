package flow

import (
	"math"
	"strconv"
	"strings"
)

// Point is a position in canvas coordinates (y grows downwards).
type Point struct{ X, Y float64 }

// Op is a path element kind, named after its SVG command letter.
type Op byte

const (
	MoveTo    Op = 'M'
	LineTo    Op = 'L'
	CurveTo   Op = 'C'
	ClosePath Op = 'Z'
)

// El is one path element. CurveTo uses all three points (two control
// points, then the end point); MoveTo and LineTo use P[0] only.
type El struct {
	Op Op
	P  [3]Point
}

// Path is a sequence of elements describing closed outlines.
type Path []El

// String renders the path as SVG path data with space separated tokens,
// e.g. "M 0 0 C 1 0, 2 1, 3 1 L 3 2 Z".
func (p Path) String() string {
	var b strings.Builder
	for i, el := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(el.Op))
		switch el.Op {
		case MoveTo, LineTo:
			writePoint(&b, el.P[0])
		case CurveTo:
			writePoint(&b, el.P[0])
			b.WriteByte(',')
			writePoint(&b, el.P[1])
			b.WriteByte(',')
			writePoint(&b, el.P[2])
		}
	}
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteByte(' ')
	b.WriteString(formatCoord(p.X))
	b.WriteByte(' ')
	b.WriteString(formatCoord(p.Y))
}

func formatCoord(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // normalise -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// cubic evaluates a cubic Bézier at t.
func cubic(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// DefaultFlattenSteps is the number of line segments per cubic used by
// Flatten when steps <= 0.
const DefaultFlattenSteps = 16

// Flatten approximates the path by polygons, one per subpath.
func (p Path) Flatten(steps int) [][]Point {
	if steps <= 0 {
		steps = DefaultFlattenSteps
	}
	var (
		polys [][]Point
		cur   []Point
		pos   Point
	)
	flush := func() {
		if len(cur) > 2 {
			polys = append(polys, cur)
		}
		cur = nil
	}
	for _, el := range p {
		switch el.Op {
		case MoveTo:
			flush()
			pos = el.P[0]
			cur = []Point{pos}
		case LineTo:
			pos = el.P[0]
			cur = append(cur, pos)
		case CurveTo:
			for i := 1; i <= steps; i++ {
				cur = append(cur, cubic(pos, el.P[0], el.P[1], el.P[2], float64(i)/float64(steps)))
			}
			pos = el.P[2]
		case ClosePath:
			flush()
		}
	}
	flush()
	return polys
}

// Contains reports whether pt lies inside the path under the non-zero
// winding rule. Points exactly on an edge may resolve either way.
func (p Path) Contains(pt Point) bool {
	if len(p) == 0 {
		return false
	}
	lo, hi := p.Bounds()
	if pt.X < lo.X || pt.X > hi.X || pt.Y < lo.Y || pt.Y > hi.Y {
		return false
	}
	for _, poly := range p.Flatten(0) {
		if winding(poly, pt) != 0 {
			return true
		}
	}
	return false
}

// Bounds returns the axis-aligned bounding box of all element points. Curves
// stay inside the hull of their control points, so the box encloses the path.
func (p Path) Bounds() (minPt, maxPt Point) {
	first := true
	add := func(q Point) {
		if first {
			minPt, maxPt, first = q, q, false
			return
		}
		minPt = Point{math.Min(minPt.X, q.X), math.Min(minPt.Y, q.Y)}
		maxPt = Point{math.Max(maxPt.X, q.X), math.Max(maxPt.Y, q.Y)}
	}
	for _, el := range p {
		switch el.Op {
		case MoveTo, LineTo:
			add(el.P[0])
		case CurveTo:
			add(el.P[0])
			add(el.P[1])
			add(el.P[2])
		}
	}
	return minPt, maxPt
}

func winding(poly []Point, pt Point) int {
	w := 0
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		if a.Y <= pt.Y {
			if b.Y > pt.Y && cross(a, b, pt) > 0 {
				w++
			}
		} else if b.Y <= pt.Y && cross(a, b, pt) < 0 {
			w--
		}
	}
	return w
}

func cross(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}
