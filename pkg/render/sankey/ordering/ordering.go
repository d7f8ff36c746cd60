// Package ordering decides the visual order of segments within a bar and of
// row slots within a segment.
//
// Segments are sorted by label using locale-aware collation. Slots are
// sorted by the row's label at a neighbouring level so ribbons leaving a
// segment fan out in the order of the segments they reach: the previous
// level for every bar but the first, the next level for the first. All
// sorts are stable, so ties keep discovery order.
package ordering

import (
	"slices"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
)

// DefaultLocale is the collation locale used when none is configured.
const DefaultLocale = "en"

// Sorter orders bars in place.
type Sorter interface {
	Sort(bars []*layout.Bar)
}

// Collated sorts labels with a collator for a fixed locale.
//
// A collate.Collator is not safe for concurrent use, so Collated guards it
// with a mutex; one Collated may be shared by concurrent renders.
type Collated struct {
	mu  sync.Mutex
	col *collate.Collator
	tag language.Tag
}

// NewCollated returns a sorter for the given BCP 47 locale. Unknown or
// malformed locales fall back to [DefaultLocale].
func NewCollated(locale string) *Collated {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.English
	}
	return &Collated{col: collate.New(tag), tag: tag}
}

// Locale returns the resolved collation locale.
func (c *Collated) Locale() string { return c.tag.String() }

// Compare compares two labels under the collation.
func (c *Collated) Compare(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.col.CompareString(a, b)
}

// Sort orders every bar's segments by label and every segment's slots by
// the neighbouring level's label.
func (c *Collated) Sort(bars []*layout.Bar) {
	last := len(bars) - 1
	for _, bar := range bars {
		slices.SortStableFunc(bar.Segments, func(a, b *layout.Segment) int {
			return c.Compare(a.Label, b.Label)
		})
		for _, seg := range bar.Segments {
			slices.SortStableFunc(seg.Rows, func(a, b *layout.SegmentRow) int {
				return c.compareSlots(a, b, last)
			})
		}
	}
}

func (c *Collated) compareSlots(a, b *layout.SegmentRow, last int) int {
	k := a.Level
	switch {
	case k > 0:
		return c.Compare(labelAt(a, k-1), labelAt(b, k-1))
	case k < last:
		return c.Compare(labelAt(a, k+1), labelAt(b, k+1))
	default:
		return 0
	}
}

func labelAt(r *layout.SegmentRow, i int) string {
	if i < 0 || i >= len(r.Labels) {
		return ""
	}
	return r.Labels[i]
}
