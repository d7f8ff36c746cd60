// Package pipeline provides the load → layout → render pipeline for sankey.
//
// This package implements the complete pipeline that is used by the CLI and
// the HTTP host. By centralizing this logic, both entry points share the same
// defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Import a snapshot from a CSV or JSON file
//  2. Layout: Aggregate, sort and position bars and ribbons into a frame
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	snap, err := runner.Load(ctx, "sales.csv", pipeline.Options{Columns: cols})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, snap, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	frame, err := runner.ComputeFrame(ctx, snap, opts)
//	artifacts, err := pipeline.Render(ctx, frame, opts)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/errors"
	sankeyio "github.com/matzehuels/sankey/pkg/io"
	"github.com/matzehuels/sankey/pkg/render/sankey"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
	"github.com/matzehuels/sankey/pkg/render/sankey/ordering"
	"github.com/matzehuels/sankey/pkg/render/sankey/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and HTTP host
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultBarWidth is the default bar width in pixels.
	DefaultBarWidth = sankey.DefaultBarWidth

	// DefaultGapRatio is the default share of the height used for segment gaps.
	DefaultGapRatio = layout.DefaultGapRatio

	// DefaultLocale is the default label collation locale.
	DefaultLocale = ordering.DefaultLocale

	// DefaultStyle is the default visual style.
	DefaultStyle = "simple"

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for HTTP requests.
type Options struct {
	// Load options
	Columns sankeyio.Columns `json:"columns,omitempty"`
	Refresh bool             `json:"refresh,omitempty"`

	// Layout options
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	BarWidth float64 `json:"bar_width,omitempty"`
	GapRatio float64 `json:"gap_ratio,omitempty"`
	Locale   string  `json:"locale,omitempty"`
	Labels   bool    `json:"labels,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	Tooltips    bool     `json:"tooltips,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Scale       float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger     `json:"-"`
	Sorter ordering.Sorter `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Frame is the computed frame. It is nil when every artifact came from
	// the cache and no layout was needed.
	Frame *sankey.Frame

	// SnapshotHash is the content hash of the input snapshot.
	SnapshotHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RowCount     int
	LevelCount   int
	SegmentCount int
	RibbonCount  int
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the snapshot came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if _, ok := styles.ByName(style); !ok || style == "" {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: %s)",
			style, strings.Join(styles.Names(), ", "))
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every field for the full
// pipeline. This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ApplySnapshot takes the canvas size from snap where the options leave it
// unset. Explicit options win over the snapshot, the snapshot over defaults.
func (o *Options) ApplySnapshot(width, height float64) {
	if o.Width == 0 && width > 0 {
		o.Width = width
	}
	if o.Height == 0 && height > 0 {
		o.Height = height
	}
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.BarWidth == 0 {
		o.BarWidth = DefaultBarWidth
	}
	if o.GapRatio == 0 {
		o.GapRatio = DefaultGapRatio
	}
	if o.Locale == "" {
		o.Locale = DefaultLocale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.GapRatio < 0 || o.GapRatio >= 1 {
		return errors.New(errors.ErrCodeInvalidCanvas, "gap ratio must be in [0, 1), got %g", o.GapRatio)
	}
	return errors.ValidateCanvas(o.Width, o.Height, o.BarWidth, 0)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return ValidateStyle(o.Style)
}

// RenderOptions returns the layout options for [sankey.Render].
func (o *Options) RenderOptions() []sankey.Option {
	opts := []sankey.Option{
		sankey.WithBarWidth(o.BarWidth),
		sankey.WithGapRatio(o.GapRatio),
	}
	if o.Sorter != nil {
		opts = append(opts, sankey.WithSorter(o.Sorter))
	} else if o.Locale != "" {
		opts = append(opts, sankey.WithLocale(o.Locale))
	}
	if o.Labels {
		opts = append(opts, sankey.WithLabels())
	}
	if o.Logger != nil {
		opts = append(opts, sankey.WithLogger(o.Logger))
	}
	return opts
}

// SnapshotKeyOpts returns cache key options for snapshot import.
func (o *Options) SnapshotKeyOpts(format string) cache.SnapshotKeyOpts {
	return cache.SnapshotKeyOpts{
		Format:     format,
		Measure:    o.Columns.Measure,
		Dimensions: o.Columns.Dimensions,
		Keys:       o.Columns.Keys,
		Color:      o.Columns.Color,
		Formatted:  o.Columns.Formatted,
	}
}

// FrameKeyOpts returns cache key options for frame computation.
func (o *Options) FrameKeyOpts() cache.FrameKeyOpts {
	locale := o.Locale
	if o.Sorter != nil {
		locale = fmt.Sprintf("%T", o.Sorter)
		if c, ok := o.Sorter.(*ordering.Collated); ok {
			locale = c.Locale()
		}
	}
	return cache.FrameKeyOpts{
		Width:    o.Width,
		Height:   o.Height,
		BarWidth: o.BarWidth,
		GapRatio: o.GapRatio,
		Locale:   locale,
		Labels:   o.Labels,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:      format,
		Style:       o.Style,
		Tooltips:    o.Tooltips,
		Interactive: o.Interactive,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
