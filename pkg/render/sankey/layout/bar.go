package layout

import (
	"github.com/matzehuels/sankey/pkg/dataview"
)

// SegmentRow is one row's slot within a segment.
type SegmentRow struct {
	RowID  dataview.RowID
	Value  float64
	Labels []string // The row's label at every level
	Level  int      // Level of the owning bar
	Y      float64  // Top of the row's slot, set by Place
}

// Height returns the slot height under scale.
func (r *SegmentRow) Height(scale float64) float64 { return r.Value * scale }

// Segment is a category at one level, merging every row sharing its key.
type Segment struct {
	Key   string
	Label string
	Value float64
	Rows  []*SegmentRow
	X, Y  float64 // Top-left corner, set by Place

	byRow map[dataview.RowID]*SegmentRow
}

// Row returns the slot of the given row.
func (s *Segment) Row(id dataview.RowID) (*SegmentRow, bool) {
	r, ok := s.byRow[id]
	return r, ok
}

// RowIDs returns the ids of every contributing row in slot order.
func (s *Segment) RowIDs() []dataview.RowID {
	ids := make([]dataview.RowID, len(s.Rows))
	for i, r := range s.Rows {
		ids[i] = r.RowID
	}
	return ids
}

// Height returns the segment height under scale.
func (s *Segment) Height(scale float64) float64 { return s.Value * scale }

// Bar is the column of segments for one level.
type Bar struct {
	Name     string
	Level    int
	Total    float64
	Segments []*Segment

	byKey map[string]*Segment
}

// Segment returns the segment grouping key.
func (b *Bar) Segment(key string) (*Segment, bool) {
	s, ok := b.byKey[key]
	return s, ok
}

// BuildBars groups rows into one bar per level. Segments and slots are in
// discovery order; a key seen with several labels keeps the one chosen by
// [dataview.PreferLabel].
func BuildBars(levels []dataview.Level, rows []dataview.Row) []*Bar {
	bars := make([]*Bar, len(levels))
	for i, lv := range levels {
		bars[i] = &Bar{Name: lv.Name, Level: i, byKey: make(map[string]*Segment)}
	}

	for _, r := range rows {
		cats := r.Categories()
		labels := dataview.Labels(r)
		v := r.Measure()
		for i, c := range cats {
			if i >= len(bars) {
				break
			}
			bars[i].add(c, &SegmentRow{RowID: r.ID(), Value: v, Labels: labels, Level: i})
		}
	}
	return bars
}

func (b *Bar) add(c dataview.CategoryValue, sr *SegmentRow) {
	seg, ok := b.byKey[c.Key]
	if !ok {
		seg = &Segment{Key: c.Key, Label: c.Label, byRow: make(map[dataview.RowID]*SegmentRow)}
		b.byKey[c.Key] = seg
		b.Segments = append(b.Segments, seg)
	} else {
		seg.Label = dataview.PreferLabel(seg.Label, c.Label)
	}
	if _, dup := seg.byRow[sr.RowID]; dup {
		return
	}
	seg.byRow[sr.RowID] = sr
	seg.Rows = append(seg.Rows, sr)
	seg.Value += sr.Value
	b.Total += sr.Value
}
