package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/errors"
	sankeyio "github.com/matzehuels/sankey/pkg/io"
)

// SnapshotHash returns the content hash of a snapshot's JSON encoding.
func SnapshotHash(snap *dataview.Snapshot) (string, error) {
	var buf bytes.Buffer
	if err := sankeyio.WriteJSON(snap, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// LoadWithCacheInfo imports a snapshot file with caching and returns cache
// hit info. The cache key covers the file content and the column mapping,
// so an edited file is re-imported.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, path string, opts Options) (*dataview.Snapshot, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, false, err
	}

	format := FormatJSON
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		format = "csv"
	}
	cacheKey := r.Keyer.SnapshotKey(cache.Hash(raw), opts.SnapshotKeyOpts(format))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit := r.get(ctx, cacheKey, "snapshot"); hit {
			snap, err := sankeyio.ReadJSON(bytes.NewReader(data))
			if err == nil {
				return snap, true, nil // Cache hit
			}
		}
	}

	var snap *dataview.Snapshot
	if format == "csv" {
		snap, err = sankeyio.ReadCSV(bytes.NewReader(raw), opts.Columns)
	} else {
		snap, err = sankeyio.ReadJSON(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := sankeyio.WriteJSON(snap, &buf); err == nil {
		r.set(ctx, cacheKey, "snapshot", buf.Bytes(), cache.TTLSnapshot)
	}
	return snap, false, nil // Cache miss
}
