package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/observability"
	"github.com/matzehuels/sankey/pkg/render/sankey"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeFrame lays out snap with the layout options in opts.
//
// Unset canvas options fall back to the snapshot size, then to the defaults.
// The snapshot is not modified: the canvas size is applied to a shallow copy. Layout errors are the typed render errors of
// [sankey.Render]; pipeline hooks observe every call.
func ComputeFrame(ctx context.Context, snap *dataview.Snapshot, opts Options) (*sankey.Frame, error) {
	opts.ApplySnapshot(snap.Width, snap.Height)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(snap.Rows))
	start := time.Now()

	work := *snap
	work.Width = opts.Width
	work.Height = opts.Height

	f, err := sankey.Render(ctx, &work, opts.RenderOptions()...)
	ribbons := 0
	if f != nil {
		ribbons = len(f.Ribbons)
	}
	hooks.OnLayoutComplete(ctx, ribbons, time.Since(start), err)
	return f, err
}
