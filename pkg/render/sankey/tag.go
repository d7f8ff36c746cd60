package sankey

import (
	"fmt"

	"github.com/matzehuels/sankey/pkg/dataview"
)

// Kind identifies what a Tag refers to.
type Kind int

const (
	KindBackground Kind = iota
	KindSegment
	KindRibbon
)

func (k Kind) String() string {
	switch k {
	case KindSegment:
		return "segment"
	case KindRibbon:
		return "ribbon"
	default:
		return "background"
	}
}

// Tag identifies a drawable element. Segment tags carry the bar and segment
// index; ribbon tags carry the row identity and value.
type Tag struct {
	Kind    Kind           `json:"kind"`
	Bar     int            `json:"bar,omitempty"`
	Segment int            `json:"segment,omitempty"`
	Row     dataview.RowID `json:"row,omitempty"`
	Value   float64        `json:"value,omitempty"`
	Level   int            `json:"level,omitempty"` // Source level of a ribbon
}

// Background is the tag of the canvas itself.
var Background = Tag{Kind: KindBackground}

// SegmentTag tags segment j of bar i.
func SegmentTag(bar, segment int) Tag {
	return Tag{Kind: KindSegment, Bar: bar, Segment: segment}
}

// RibbonTag tags the ribbon of row id leaving level.
func RibbonTag(id dataview.RowID, value float64, level int) Tag {
	return Tag{Kind: KindRibbon, Row: id, Value: value, Level: level}
}

func (t Tag) String() string {
	switch t.Kind {
	case KindSegment:
		return fmt.Sprintf("segment(%d,%d)", t.Bar, t.Segment)
	case KindRibbon:
		return fmt.Sprintf("ribbon(row=%d,level=%d)", t.Row, t.Level)
	default:
		return "background"
	}
}
