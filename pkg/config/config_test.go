package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/errors"
)

const sample = `
[canvas]
width = 1024
height = 768
bar_width = 20

[render]
locale = "de"
style = "outline"
labels = true
formats = ["svg", "json"]

[columns]
measure = "Sales"
dimensions = ["Region", "Type"]
color = "Color"

[columns.keys]
Region = "RegionCode"

[serve]
addr = ":9090"
shutdown_timeout = "3s"
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 1024.0, c.Canvas.Width)
	assert.Equal(t, "de", c.Render.Locale)
	assert.Equal(t, []string{"Region", "Type"}, c.Columns.Dimensions)
	assert.Equal(t, "RegionCode", c.Columns.Keys["Region"])
	assert.Equal(t, ":9090", c.ServeAddr())

	d, err := c.ShutdownTimeout()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, d)

	opts := c.Options()
	assert.Equal(t, 1024.0, opts.Width)
	assert.Equal(t, 20.0, opts.BarWidth)
	assert.Equal(t, 0.0, opts.GapRatio, "unset fields stay zero")
	assert.Equal(t, "outline", opts.Style)
	assert.True(t, opts.Labels)
	assert.Equal(t, "Sales", opts.Columns.Measure)
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultServeAddr, c.ServeAddr())

	d, err := c.ShutdownTimeout()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, d)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", "[canvas"},
		{"unknown backend", "[cache]\nbackend = \"memcached\""},
		{"redis without addr", "[cache]\nbackend = \"redis\""},
		{"bad style", "[render]\nstyle = \"neon\""},
		{"bad format", "[render]\nformats = [\"gif\"]"},
		{"negative width", "[canvas]\nwidth = -5"},
		{"bad timeout", "[serve]\nshutdown_timeout = \"soon\""},
		{"columns without measure", "[columns]\ndimensions = [\"a\"]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			code := errors.GetCode(err)
			assert.Equal(t, errors.ErrCodeInvalidConfig, code, "error: %v", err)
		})
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()

	c, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, Config{}, *c)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(sample), 0o644))
	c, err = Find(dir)
	require.NoError(t, err)
	assert.Equal(t, "de", c.Render.Locale)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestEncodeRoundTrip(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf))

	again, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	c := &Config{Cache: Cache{Backend: BackendNone}}
	cc, _, err := c.OpenCache(ctx, t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &cache.NullCache{}, cc)

	dir := t.TempDir()
	c = &Config{Cache: Cache{Prefix: "p:"}}
	cc, keyer, err := c.OpenCache(ctx, dir)
	require.NoError(t, err)
	require.IsType(t, &cache.FileCache{}, cc)
	assert.Equal(t, dir, cc.(*cache.FileCache).Dir())
	assert.IsType(t, &cache.ScopedKeyer{}, keyer)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	c = &Config{Cache: Cache{Backend: BackendRedis, RedisAddr: mr.Addr()}}
	cc, _, err = c.OpenCache(ctx, "")
	require.NoError(t, err)
	assert.IsType(t, &cache.RedisCache{}, cc)
	require.NoError(t, cc.Close())
}
