package interact

import (
	"context"
	stderrors "errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/observability"
	"github.com/matzehuels/sankey/pkg/render/sankey"
	"github.com/matzehuels/sankey/pkg/render/sankey/flow"
	"github.com/matzehuels/sankey/pkg/render/sankey/styles"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithRenderOptions passes options to every render.
func WithRenderOptions(opts ...sankey.Option) Option {
	return func(c *Controller) { c.renderOpts = append(c.renderOpts, opts...) }
}

// Controller mediates between one host and one canvas. It keeps exactly
// one committed frame; a new frame replaces it only after a successful
// render and draw.
type Controller struct {
	mu         sync.Mutex
	host       Host
	canvas     Canvas
	frame      *sankey.Frame
	renderOpts []sankey.Option
	logger     *log.Logger
	commits    int
}

// NewController creates a controller drawing on canvas for host.
func NewController(host Host, canvas Canvas, opts ...Option) *Controller {
	c := &Controller{host: host, canvas: canvas}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return c
}

// Update renders snap and, on success, redraws the canvas, commits the new
// frame and signals render completion.
//
// Host data errors show the error overlay and return a DataViewError.
// Fatal data errors (negative values, conservation) show their message in
// the same overlay. Expired snapshots are dropped silently: the error is returned for the
// caller's information but nothing is shown. In every failure case the
// canvas and the committed frame are left untouched.
func (c *Controller) Update(ctx context.Context, snap *dataview.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	err := c.update(ctx, snap)
	observability.Interaction().OnFrameCommitted(ctx, time.Since(start), err)
	return err
}

func (c *Controller) update(ctx context.Context, snap *dataview.Snapshot) error {
	if snap != nil && len(snap.Errors) > 0 {
		c.host.ShowErrors(snap.Errors)
		return &errors.DataViewError{Messages: snap.Errors}
	}
	c.host.HideErrors()

	frame, err := sankey.Render(ctx, snap, c.renderOpts...)
	if err != nil {
		var expired *errors.ExpiredSnapshotError
		switch {
		case stderrors.As(err, &expired):
			c.logger.Debug("snapshot expired", "reason", expired.Reason)
		case errors.IsFatal(err):
			c.logger.Warn("invalid data", "error", err)
			c.host.ShowErrors([]string{errors.UserMessage(err)})
		default:
			c.logger.Warn("render failed", "error", err)
		}
		return err
	}

	Draw(c.canvas, frame)
	c.frame = frame
	c.commits++
	c.host.SignalRenderComplete()

	c.logger.Debug("committed frame",
		"segments", len(frame.Segments),
		"ribbons", len(frame.Ribbons))
	return nil
}

// Draw issues the draw commands for frame: background, segments, ribbons in
// build order, the z-order reorder, then labels.
func Draw(cv Canvas, f *sankey.Frame) {
	cv.Reset(f.Width, f.Height)
	cv.Rect(0, 0, f.Width, f.Height, styles.BackgroundFill, sankey.Background)
	for _, s := range f.Segments {
		cv.Rect(s.X, s.Y, s.W, s.H, styles.SegmentFill, s.Tag)
	}
	for _, r := range f.BuildOrder() {
		cv.Path(r.Path.String(), r.Color, r.Tag)
	}
	order := make([]sankey.Tag, len(f.Ribbons))
	for i, r := range f.Ribbons {
		order[i] = r.Tag
	}
	cv.Reorder(order)
	for _, s := range f.Segments {
		if s.Text != nil {
			cv.Text(s.Text.X, s.Text.Y, s.Text.Anchor, s.Text.Shift, s.Text.Text)
		}
	}
}

// Frame returns the committed frame, or nil before the first success.
func (c *Controller) Frame() *sankey.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// Commits returns how many frames have been committed.
func (c *Controller) Commits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commits
}

// Resolve hit tests pt against the committed frame.
func (c *Controller) Resolve(pt flow.Point) sankey.Tag {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil {
		return sankey.Background
	}
	return c.frame.HitTest(pt)
}

// Hover shows the tooltip of the element tagged t. Hovering the background
// hides the tooltip.
func (c *Controller) Hover(ctx context.Context, t sankey.Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil {
		return
	}
	text := c.frame.Tooltip(t)
	if text == "" {
		c.host.HideTooltip()
		return
	}
	c.host.ShowTooltip(text)
	observability.Interaction().OnTooltip(ctx, t.Kind.String())
}

// Leave hides the tooltip.
func (c *Controller) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.host.HideTooltip()
}

// Click marks the rows of the element tagged t. A click on the background
// clears the marking instead.
func (c *Controller) Click(ctx context.Context, t sankey.Tag, shift bool) {
	if t.Kind == sankey.KindBackground {
		c.BackgroundClick(ctx)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil {
		return
	}
	rows := c.frame.RowsFor(t)
	if len(rows) == 0 {
		return
	}
	mode := ModeFor(shift)
	c.host.Mark(rows, mode)
	observability.Interaction().OnMark(ctx, string(mode), len(rows))
}

// BackgroundClick clears the host marking.
func (c *Controller) BackgroundClick(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.host.ClearMarking()
	observability.Interaction().OnClearMarking(ctx)
}

// HoverAt resolves pt and hovers the element under it.
func (c *Controller) HoverAt(ctx context.Context, pt flow.Point) sankey.Tag {
	t := c.Resolve(pt)
	c.Hover(ctx, t)
	return t
}

// ClickAt resolves pt and clicks the element under it.
func (c *Controller) ClickAt(ctx context.Context, pt flow.Point, shift bool) sankey.Tag {
	t := c.Resolve(pt)
	c.Click(ctx, t, shift)
	return t
}
