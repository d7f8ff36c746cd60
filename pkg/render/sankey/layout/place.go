package layout

// DefaultGapRatio is the fraction of the canvas height reserved for the
// gaps between segments of one bar.
const DefaultGapRatio = 0.1

// Canvas holds the drawing area and bar geometry.
type Canvas struct {
	Width, Height float64
	BarWidth      float64
	GapRatio      float64 // 0 selects DefaultGapRatio
}

// Layout is a fully placed diagram.
type Layout struct {
	Width, Height float64
	BarWidth      float64
	BarGap        float64 // Horizontal gap between adjacent bars
	SegmentGap    float64 // Vertical space split between a bar's segments
	Scale         float64 // Pixels per unit of measure
	Bars          []*Bar
}

// Place computes bar positions and vertical stacking in place and returns
// the resulting layout. Bars without segments are left untouched.
func Place(bars []*Bar, c Canvas) Layout {
	ratio := c.GapRatio
	if ratio == 0 {
		ratio = DefaultGapRatio
	}

	l := Layout{
		Width:      c.Width,
		Height:     c.Height,
		BarWidth:   c.BarWidth,
		SegmentGap: c.Height * ratio,
		Bars:       bars,
	}
	if n := len(bars); n > 1 {
		l.BarGap = (c.Width - c.BarWidth*float64(n)) / float64(n-1)
	}
	if len(bars) > 0 && bars[0].Total > 0 {
		l.Scale = (c.Height - l.SegmentGap) / bars[0].Total
	}

	for i, bar := range bars {
		n := len(bar.Segments)
		if n == 0 {
			continue
		}
		var gap float64
		if n > 1 {
			gap = l.SegmentGap / float64(n-1)
		}

		cursor := 0.0
		for _, seg := range bar.Segments {
			seg.X = l.BarGap * float64(i)
			seg.Y = cursor
			for _, sr := range seg.Rows {
				sr.Y = cursor
				cursor += sr.Value * l.Scale
			}
			cursor += gap
		}
	}
	return l
}
