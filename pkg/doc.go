// Package pkg provides the core libraries for sankey flow diagrams.
//
// # Overview
//
// A sankey diagram shows how one quantity splits across several categorical
// dimensions. Every dimension becomes a vertical bar, every category a
// segment of that bar, and every data row a ribbon connecting its segments
// in adjacent bars. The pkg directory is organized into four main areas:
//
//  1. [dataview] - The data model: rows, levels, hierarchy and snapshots
//  2. [render/sankey] - The layout engine and its output sinks
//  3. [interact] - The controller driving a host (tooltips, marking, errors)
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	JSON snapshot / CSV table
//	         ↓
//	    [io] package (import + validation)
//	         ↓
//	    [render/sankey] package (aggregate → bars → sort → place → ribbons)
//	         ↓
//	    [render/sankey/sink] package (SVG, PNG, PDF, JSON)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/sankey/pkg/io"
//	    "github.com/matzehuels/sankey/pkg/render/sankey"
//	    "github.com/matzehuels/sankey/pkg/render/sankey/sink"
//	)
//
//	// 1. Load a snapshot
//	snap, _ := io.ImportJSON("sales.json")
//
//	// 2. Compute the frame
//	frame, _ := sankey.Render(context.Background(), snap, sankey.WithLabels())
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(frame, sink.WithTooltips())
//
// # Main Packages
//
// [dataview] - Rows, levels and the categorical hierarchy. A [dataview.Snapshot]
// is the immutable input of one render.
//
// [render/sankey] - The engine. Subpackages each own one stage:
//
//   - [render/sankey/aggregate]: Per-level totals and the conservation check
//   - [render/sankey/layout]: Bars, segments and their placement on the canvas
//   - [render/sankey/ordering]: Locale-aware segment ordering
//   - [render/sankey/flow]: Ribbon geometry and hit testing
//   - [render/sankey/styles]: Visual styles (simple, outline)
//   - [render/sankey/sink]: Output formats (SVG, PDF, PNG, JSON)
//
// [interact] - The controller that turns host events into render, tooltip and
// marking requests.
//
// [host/httphost] - An HTTP host serving sessions of the controller.
//
// ## Infrastructure
//
// [pipeline] - The load → layout → render pipeline used by the CLI and the
// HTTP host. Ensures consistent behavior across all entry points.
//
// [cache] - Cache backends for imported snapshots and rendered artifacts:
// file (CLI), Redis (shared) and null.
//
// [config] - The sankey.toml config file.
//
// [observability] - Hooks for metrics and tracing, with a Prometheus
// implementation in [observability/metrics].
//
// [errors] - Structured error codes shared by every package.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/render/sankey/...      # The engine only
//
// [dataview]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/dataview
// [dataview.Snapshot]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/dataview#Snapshot
// [io]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/io
// [render/sankey]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/render/sankey
// [render/sankey/aggregate]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/render/sankey/aggregate
// [render/sankey/layout]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/render/sankey/layout
// [render/sankey/ordering]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/render/sankey/ordering
// [render/sankey/flow]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/render/sankey/flow
// [render/sankey/styles]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/render/sankey/styles
// [render/sankey/sink]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/render/sankey/sink
// [interact]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/interact
// [host/httphost]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/host/httphost
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/observability
// [observability/metrics]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/observability/metrics
// [errors]: https://pkg.go.dev/github.com/matzehuels/sankey/pkg/errors
package pkg
