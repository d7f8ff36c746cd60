package sankey

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/render/sankey/aggregate"
	"github.com/matzehuels/sankey/pkg/render/sankey/flow"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
	"github.com/matzehuels/sankey/pkg/render/sankey/ordering"
)

const (
	// DefaultBarWidth is the fixed width of every bar in pixels.
	DefaultBarWidth = 14.0

	// LabelGap is the horizontal distance between a bar and its labels.
	LabelGap = 3.0
)

// Option configures a render.
type Option func(*config)

type config struct {
	barWidth float64
	gapRatio float64
	sorter   ordering.Sorter
	labels   bool
	logger   *log.Logger
}

// WithBarWidth overrides [DefaultBarWidth].
func WithBarWidth(w float64) Option { return func(c *config) { c.barWidth = w } }

// WithGapRatio sets the share of the height used for segment gaps.
func WithGapRatio(r float64) Option { return func(c *config) { c.gapRatio = r } }

// WithSorter replaces the default English collation sorter.
func WithSorter(s ordering.Sorter) Option { return func(c *config) { c.sorter = s } }

// WithLocale sorts labels with the collation of the given locale.
func WithLocale(locale string) Option {
	return func(c *config) { c.sorter = ordering.NewCollated(locale) }
}

// WithLabels positions a text label beside every segment.
func WithLabels() Option { return func(c *config) { c.labels = true } }

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }

var defaultSorter = ordering.NewCollated(ordering.DefaultLocale)

func newConfig(opts []Option) config {
	c := config{barWidth: DefaultBarWidth, gapRatio: layout.DefaultGapRatio}
	for _, opt := range opts {
		opt(&c)
	}
	if c.sorter == nil {
		c.sorter = defaultSorter
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return c
}

// Render lays out snap and returns a new frame. It never mutates snap.
//
// Errors, all detected before a frame exists:
//   - [errors.DataViewError] when the host reported errors
//   - [errors.ExpiredSnapshotError] when snap has no rows or ctx is done
//   - an INVALID_INPUT [errors.Error] when two rows share an id
//   - [errors.NegativeValueError], [errors.ConservationError] on invalid data
//   - an INVALID_CANVAS [errors.Error] for unusable sizes
func Render(ctx context.Context, snap *dataview.Snapshot, opts ...Option) (*Frame, error) {
	c := newConfig(opts)
	start := time.Now()

	if snap == nil {
		return nil, &errors.ExpiredSnapshotError{Reason: "rows unavailable"}
	}
	if len(snap.Errors) > 0 {
		return nil, &errors.DataViewError{Messages: slices.Clone(snap.Errors)}
	}
	if snap.Rows == nil {
		return nil, &errors.ExpiredSnapshotError{Reason: "rows unavailable"}
	}
	if err := checkRowIDs(snap.Rows); err != nil {
		return nil, err
	}
	if err := checkContext(ctx, "aggregate"); err != nil {
		return nil, err
	}

	h := snap.Hierarchy
	if h == nil || h.Root == nil {
		h = dataview.BuildHierarchy(snap.Levels(), snap.Rows)
	}
	levels := h.Levels
	if err := errors.ValidateCanvas(snap.Width, snap.Height, c.barWidth, len(levels)); err != nil {
		return nil, err
	}

	totals, err := aggregate.Aggregate(h, snap.Rows)
	if err != nil {
		return nil, err
	}
	if err := checkContext(ctx, "layout"); err != nil {
		return nil, err
	}

	bars := layout.BuildBars(levels, snap.Rows)
	useTotalLabels(bars, totals)
	c.sorter.Sort(bars)
	l := layout.Place(bars, layout.Canvas{
		Width:    snap.Width,
		Height:   snap.Height,
		BarWidth: c.barWidth,
		GapRatio: c.gapRatio,
	})
	if err := checkContext(ctx, "flows"); err != nil {
		return nil, err
	}

	f := &Frame{
		Width:       snap.Width,
		Height:      snap.Height,
		MeasureName: snap.MeasureName,
		Levels:      levels,
		Layout:      l,
		Totals:      totals,
		rows:        make(map[dataview.RowID]dataview.Row, len(snap.Rows)),
	}
	for _, r := range snap.Rows {
		f.rows[r.ID()] = r
	}
	f.Segments = buildSegments(l, totals, levels, c.labels)
	f.built, f.Ribbons = buildRibbons(flow.Build(l, snap.Rows))

	c.logger.Debug("rendered frame",
		"rows", len(snap.Rows),
		"bars", len(bars),
		"segments", len(f.Segments),
		"ribbons", len(f.Ribbons),
		"duration", time.Since(start))
	return f, nil
}

func checkRowIDs(rows []dataview.Row) error {
	seen := make(map[dataview.RowID]struct{}, len(rows))
	for _, r := range rows {
		if _, dup := seen[r.ID()]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate row id %d", r.ID())
		}
		seen[r.ID()] = struct{}{}
	}
	return nil
}

// useTotalLabels labels every segment with its aggregated entry, so a
// supplied hierarchy decides the label of a key.
func useTotalLabels(bars []*layout.Bar, totals *aggregate.Totals) {
	for i, bar := range bars {
		for _, seg := range bar.Segments {
			if e, ok := totals.Lookup(i, seg.Key); ok && e.Label != "" {
				seg.Label = e.Label
			}
		}
	}
}

func checkContext(ctx context.Context, stage string) error {
	if err := ctx.Err(); err != nil {
		return &errors.ExpiredSnapshotError{Reason: "cancelled before " + stage, Cause: err}
	}
	return nil
}

func buildSegments(l layout.Layout, totals *aggregate.Totals, levels []dataview.Level, labels bool) []SegmentShape {
	var out []SegmentShape
	last := len(l.Bars) - 1
	for i, bar := range l.Bars {
		for j, seg := range bar.Segments {
			value := seg.Value
			if e, ok := totals.Lookup(i, seg.Key); ok {
				value = e.Total
			}
			s := SegmentShape{
				Tag:    SegmentTag(i, j),
				Key:    seg.Key,
				Label:  seg.Label,
				Value:  value,
				X:      seg.X,
				Y:      seg.Y,
				W:      l.BarWidth,
				H:      value * l.Scale,
				Rows:   seg.RowIDs(),
				Level:  i,
				Legend: levels[i].Label(),
			}
			if labels {
				s.Text = placeLabel(l, seg, i == last && last > 0)
			}
			out = append(out, s)
		}
	}
	return out
}

// placeLabel puts the label right of the bar, or left of it for the last
// bar. Labels of segments above the bottom gap band hang below the segment
// top; the others sit on the canvas bottom.
func placeLabel(l layout.Layout, seg *layout.Segment, lastBar bool) *LabelShape {
	lb := &LabelShape{Text: seg.Label, X: seg.X + l.BarWidth + LabelGap, Anchor: "start"}
	if lastBar {
		lb.X = seg.X - LabelGap
		lb.Anchor = "end"
	}
	if seg.Y < l.Height-l.SegmentGap {
		lb.Y = seg.Y
		lb.Shift = true
	} else {
		lb.Y = l.Height
	}
	return lb
}

// hostColor returns c when it is a valid color, else "" so the style
// default applies.
func hostColor(c string) string {
	if errors.ValidateColor(c) != nil {
		return ""
	}
	return c
}

// buildRibbons orders ribbons so that large flows are drawn first and small
// ones stay on top.
func buildRibbons(ribbons []flow.Ribbon) (built, sorted []RibbonShape) {
	built = make([]RibbonShape, len(ribbons))
	for i, r := range ribbons {
		built[i] = RibbonShape{
			Tag:   RibbonTag(r.RowID, r.Value, r.FromLevel),
			Color: hostColor(r.Color),
			Path:  r.Path,
		}
	}
	sorted = slices.Clone(built)
	slices.SortStableFunc(sorted, func(a, b RibbonShape) int {
		switch {
		case a.Tag.Value > b.Tag.Value:
			return -1
		case a.Tag.Value < b.Tag.Value:
			return 1
		}
		return 0
	})
	return built, sorted
}
