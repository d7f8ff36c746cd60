package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/charmbracelet/log"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/errors"
	sankeyio "github.com/matzehuels/sankey/pkg/io"
)

func testSnapshot() *dataview.Snapshot {
	levels := []dataview.Level{{Name: "Region"}, {Name: "Type"}}
	rows := []dataview.Row{
		dataview.NewRecord(0, 10, dataview.Cat("A"), dataview.Cat("X")),
		dataview.NewRecord(1, 20, dataview.Cat("B"), dataview.Cat("Y")),
	}
	return &dataview.Snapshot{
		Rows:        rows,
		Hierarchy:   dataview.BuildHierarchy(levels, rows),
		MeasureName: "Sales",
	}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func fileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(c, nil, quietLogger())
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), testSnapshot(), Options{Formats: []string{FormatSVG, FormatJSON}})
	require.NoError(t, err)

	require.NotNil(t, res.Frame)
	assert.Equal(t, DefaultWidth, res.Frame.Width)
	assert.Equal(t, 2, res.Stats.RowCount)
	assert.Equal(t, 2, res.Stats.LevelCount)
	assert.Equal(t, 4, res.Stats.SegmentCount)
	assert.Equal(t, 2, res.Stats.RibbonCount)
	assert.Len(t, res.SnapshotHash, 64)

	assert.True(t, strings.HasPrefix(string(res.Artifacts[FormatSVG]), "<svg"))
	assert.Contains(t, string(res.Artifacts[FormatJSON]), `"ribbons"`)
	assert.False(t, res.CacheInfo.RenderHit)
}

func TestExecuteCacheHit(t *testing.T) {
	ctx := context.Background()
	r := fileRunner(t)
	opts := Options{Formats: []string{FormatSVG}}

	first, err := r.Execute(ctx, testSnapshot(), opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.RenderHit)

	second, err := r.Execute(ctx, testSnapshot(), opts)
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.RenderHit)
	assert.Nil(t, second.Frame)
	assert.Equal(t, first.Artifacts[FormatSVG], second.Artifacts[FormatSVG])

	// Different layout options miss.
	third, err := r.Execute(ctx, testSnapshot(), Options{Formats: []string{FormatSVG}, Width: 400})
	require.NoError(t, err)
	assert.False(t, third.CacheInfo.RenderHit)

	// Refresh bypasses the cache.
	fourth, err := r.Execute(ctx, testSnapshot(), Options{Formats: []string{FormatSVG}, Refresh: true})
	require.NoError(t, err)
	assert.False(t, fourth.CacheInfo.RenderHit)
}

func TestExecuteCacheHitRedis(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	c := cache.NewRedisCacheFromClient(backend.NewClient(&backend.Options{Addr: mr.Addr()}))
	r := NewRunner(c, cache.NewScopedKeyer(nil, "test:"), quietLogger())
	defer r.Close()

	opts := Options{Formats: []string{FormatJSON}}
	_, err = r.Execute(ctx, testSnapshot(), opts)
	require.NoError(t, err)

	second, err := r.Execute(ctx, testSnapshot(), opts)
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.RenderHit)
	assert.NotEmpty(t, mr.Keys())
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	neg := testSnapshot()
	neg.Rows[1] = dataview.NewRecord(1, -5, dataview.Cat("B"), dataview.Cat("Y"))
	_, err := r.Execute(ctx, neg, Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeNegativeValue))

	_, err = r.Execute(ctx, testSnapshot(), Options{Formats: []string{"gif"}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))

	_, err = r.Execute(ctx, testSnapshot(), Options{Style: "fancy"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidStyle))

	_, err = r.Execute(ctx, &dataview.Snapshot{}, Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeExpiredSnapshot))
}

func TestExecuteSnapshotSize(t *testing.T) {
	snap := testSnapshot()
	snap.Width, snap.Height = 300, 200

	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), snap, Options{})
	require.NoError(t, err)
	assert.Equal(t, 300.0, res.Frame.Width)
	assert.Equal(t, 200.0, res.Frame.Height)
	assert.Equal(t, 0.0, testSnapshot().Width, "input snapshot untouched")
}

func TestRenderWithCacheInfo(t *testing.T) {
	ctx := context.Background()
	r := fileRunner(t)
	snap := testSnapshot()

	f, err := r.ComputeFrame(ctx, snap, Options{})
	require.NoError(t, err)
	hash, err := SnapshotHash(snap)
	require.NoError(t, err)

	_, hit, err := r.RenderWithCacheInfo(ctx, f, hash, Options{})
	require.NoError(t, err)
	assert.False(t, hit)

	artifacts, hit, err := r.RenderWithCacheInfo(ctx, f, hash, Options{})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Contains(t, string(artifacts[FormatSVG]), "<svg")
}

func TestLoadWithCacheInfo(t *testing.T) {
	ctx := context.Background()
	r := fileRunner(t)

	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("Region,Type,Sales\nA,X,10\nB,Y,20\n"), 0o644))
	opts := Options{Columns: sankeyio.Columns{Measure: "Sales", Dimensions: []string{"Region", "Type"}}}

	snap, hit, err := r.LoadWithCacheInfo(ctx, path, opts)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Len(t, snap.Rows, 2)

	again, hit, err := r.LoadWithCacheInfo(ctx, path, opts)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, snap.Rows[1].Categories(), again.Rows[1].Categories())

	// A different mapping is a different entry.
	_, hit, err = r.LoadWithCacheInfo(ctx, path, Options{Columns: sankeyio.Columns{Measure: "Sales", Dimensions: []string{"Type"}}})
	require.NoError(t, err)
	assert.False(t, hit)

	_, err = r.Load(ctx, filepath.Join(t.TempDir(), "missing.csv"), opts)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}
