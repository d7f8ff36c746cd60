package httphost

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/interact"
	"github.com/matzehuels/sankey/pkg/observability"
	"github.com/matzehuels/sankey/pkg/observability/metrics"
	"github.com/matzehuels/sankey/pkg/pipeline"
	"github.com/matzehuels/sankey/pkg/render/sankey"
)

const twoLevels = `{
  "measure_name": "Sales",
  "levels": [{"name": "Region"}, {"name": "Type"}],
  "rows": [
    {"value": 10, "categories": ["A", "X"], "color": "#1f77b4"},
    {"value": 20, "categories": ["B", "X"], "color": "#ff7f0e"}
  ]
}`

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := pipeline.NewRunner(c, nil, logger)

	base := []Option{WithLogger(logger), WithRunner(runner)}
	s, err := New(append(base, opts...)...)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func kinds(reqs []interact.Request) []interact.RequestKind {
	out := make([]interact.RequestKind, len(reqs))
	for i, r := range reqs {
		out[i] = r.Kind
	}
	return out
}

func createSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := post(t, ts.URL+"/snapshot", twoLevels)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode[UpdateResponse](t, resp)
	require.NotEmpty(t, body.SessionID)
	return body.SessionID
}

func TestCreateSession(t *testing.T) {
	s, ts := newTestServer(t)

	resp := post(t, ts.URL+"/snapshot", twoLevels)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode[UpdateResponse](t, resp)
	assert.NotEmpty(t, body.SessionID)
	assert.NotEmpty(t, body.RenderID)
	assert.Empty(t, body.Error)
	assert.Equal(t, []interact.RequestKind{interact.RequestHideErrors, interact.RequestRenderComplete}, kinds(body.Requests))
	assert.Equal(t, 1, s.Sessions().Len())
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)
	resp := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[map[string]string](t, resp)["status"])
}

func TestArtifactsAreCached(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts)

	first := get(t, ts.URL+"/sessions/"+id+"/frame.svg")
	require.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, "image/svg+xml", first.Header.Get("Content-Type"))
	assert.Equal(t, "MISS", first.Header.Get("X-Cache"))
	assert.NotEmpty(t, first.Header.Get("X-Render-ID"))
	svg, err := io.ReadAll(first.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(svg, []byte("<svg")))

	second := get(t, ts.URL+"/sessions/"+id+"/frame.svg")
	require.Equal(t, http.StatusOK, second.StatusCode)
	assert.Equal(t, "HIT", second.Header.Get("X-Cache"))
	again, err := io.ReadAll(second.Body)
	require.NoError(t, err)
	assert.Equal(t, svg, again)

	js := get(t, ts.URL+"/sessions/"+id+"/frame.json")
	require.Equal(t, http.StatusOK, js.StatusCode)
	assert.Equal(t, "MISS", js.Header.Get("X-Cache"))
	frame := decode[map[string]any](t, js)
	assert.Equal(t, "Sales", frame["measure_name"])
	assert.Len(t, frame["ribbons"], 2)
}

func TestHoverAtSegment(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts)

	// Bar 0 spans x 0..14; its first segment starts at the top.
	resp := post(t, ts.URL+"/sessions/"+id+"/events/hover", `{"x": 7, "y": 5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[EventResponse](t, resp)
	assert.Equal(t, sankey.SegmentTag(0, 0), body.Target)
	require.Len(t, body.Requests, 1)
	assert.Equal(t, interact.RequestShowTooltip, body.Requests[0].Kind)
	assert.Contains(t, body.Requests[0].Text, "A")
	assert.Contains(t, body.Requests[0].Text, "Sales")
}

func TestHoverBackgroundHidesTooltip(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts)

	resp := post(t, ts.URL+"/sessions/"+id+"/events/hover", `{"tag": {"kind": 0}}`)
	body := decode[EventResponse](t, resp)
	assert.Equal(t, sankey.Background, body.Target)
	assert.Equal(t, []interact.RequestKind{interact.RequestHideTooltip}, kinds(body.Requests))

	resp = post(t, ts.URL+"/sessions/"+id+"/events/leave", "")
	body = decode[EventResponse](t, resp)
	assert.Equal(t, []interact.RequestKind{interact.RequestHideTooltip}, kinds(body.Requests))
}

func TestClickMarksAndBackgroundClears(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts)

	// The only segment of the second bar carries every row.
	resp := post(t, ts.URL+"/sessions/"+id+"/events/click", `{"tag": {"kind": 1, "bar": 1, "segment": 0}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[EventResponse](t, resp)
	require.Len(t, body.Requests, 1)
	assert.Equal(t, interact.RequestMark, body.Requests[0].Kind)
	assert.Equal(t, interact.Replace, body.Requests[0].Mode)
	assert.ElementsMatch(t, []dataview.RowID{0, 1}, body.Requests[0].Rows)

	marking := decode[MarkingResponse](t, get(t, ts.URL+"/sessions/"+id+"/marking"))
	assert.Equal(t, []dataview.RowID{0, 1}, marking.Rows)

	resp = post(t, ts.URL+"/sessions/"+id+"/events/background", "")
	body = decode[EventResponse](t, resp)
	assert.Equal(t, []interact.RequestKind{interact.RequestClearMarking}, kinds(body.Requests))

	marking = decode[MarkingResponse](t, get(t, ts.URL+"/sessions/"+id+"/marking"))
	assert.Empty(t, marking.Rows)
}

func TestShiftClickAddsToMarking(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts)

	post(t, ts.URL+"/sessions/"+id+"/events/click", `{"tag": {"kind": 2, "row": 0, "value": 10}}`)
	resp := post(t, ts.URL+"/sessions/"+id+"/events/click", `{"tag": {"kind": 2, "row": 1, "value": 20}, "shift": true}`)
	body := decode[EventResponse](t, resp)
	require.Len(t, body.Requests, 1)
	assert.Equal(t, interact.Add, body.Requests[0].Mode)

	marking := decode[MarkingResponse](t, get(t, ts.URL+"/sessions/"+id+"/marking"))
	assert.Equal(t, []dataview.RowID{0, 1}, marking.Rows)
}

func TestSceneRecordsDrawCommands(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts)

	resp := get(t, ts.URL+"/sessions/"+id+"/scene")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	scene := decode[interact.Scene](t, resp)
	assert.Equal(t, 800.0, scene.Width)
	assert.Equal(t, 600.0, scene.Height)
	assert.Len(t, scene.Rects, 4) // background, A, B, X
	assert.Len(t, scene.Paths, 2)
}

func TestDataViewErrorsShowOverlay(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts)

	doc := `{"levels": [{"name": "L"}], "rows": [], "errors": ["column missing"]}`
	resp := post(t, ts.URL+"/sessions/"+id+"/snapshot", doc)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[UpdateResponse](t, resp)
	assert.Equal(t, errors.ErrCodeDataView, body.Code)
	assert.Empty(t, body.RenderID)
	require.Len(t, body.Requests, 1)
	assert.Equal(t, interact.RequestShowErrors, body.Requests[0].Kind)
	assert.Equal(t, []string{"column missing"}, body.Requests[0].Errors)

	// The previous frame stays committed.
	svg := get(t, ts.URL+"/sessions/"+id+"/frame.svg")
	assert.Equal(t, http.StatusOK, svg.StatusCode)
}

func TestNegativeValueRejected(t *testing.T) {
	_, ts := newTestServer(t)

	doc := `{"levels": [{"name": "L"}], "rows": [{"value": -1, "categories": ["a"]}]}`
	resp := post(t, ts.URL+"/snapshot", doc)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode[UpdateResponse](t, resp)
	assert.Equal(t, errors.ErrCodeNegativeValue, body.Code)
	assert.Equal(t, []interact.RequestKind{interact.RequestHideErrors, interact.RequestShowErrors}, kinds(body.Requests))
}

func TestMalformedSnapshot(t *testing.T) {
	_, ts := newTestServer(t)
	resp := post(t, ts.URL+"/snapshot", `{`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFrameBeforeCommit(t *testing.T) {
	_, ts := newTestServer(t)

	doc := `{"levels": [{"name": "L"}], "rows": [{"value": -1, "categories": ["a"]}]}`
	id := decode[UpdateResponse](t, post(t, ts.URL+"/snapshot", doc)).SessionID
	require.NotEmpty(t, id)

	resp := get(t, ts.URL+"/sessions/"+id+"/frame.svg")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnknownSession(t *testing.T) {
	_, ts := newTestServer(t)
	resp := get(t, ts.URL+"/sessions/nope/frame.svg")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeNotFound, decode[errorResponse](t, resp).Code)
}

func TestDeleteSession(t *testing.T) {
	s, ts := newTestServer(t)
	id := createSession(t, ts)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/sessions/"+id+"/", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, s.Sessions().Len())
}

func TestSessionExpiry(t *testing.T) {
	s, ts := newTestServer(t, WithSessionTTL(time.Minute))
	id := createSession(t, ts)

	now := time.Now()
	s.Sessions().now = func() time.Time { return now.Add(2 * time.Minute) }

	resp := get(t, ts.URL+"/sessions/"+id+"/marking")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 0, s.Sessions().Len())
}

func TestMetricsEndpoint(t *testing.T) {
	defer observability.Reset()

	reg := prometheus.NewRegistry()
	metrics.New(reg).Install()

	_, ts := newTestServer(t, WithGatherer(reg))
	createSession(t, ts)

	resp := get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	text, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(text), "sankey_http_requests_total")
	assert.Contains(t, string(text), "sankey_frame_updates_total")
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	_, err := New(WithOptions(pipeline.Options{Style: "nope"}))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidStyle, errors.GetCode(err))
}
