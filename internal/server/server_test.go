package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/practicematch/internal/engine"
	"github.com/crimson-sun/practicematch/internal/engine/catalog"
	"github.com/crimson-sun/practicematch/internal/engine/classifier"
	"github.com/crimson-sun/practicematch/internal/engine/tagger"
	"github.com/crimson-sun/practicematch/internal/imagery"
	"github.com/crimson-sun/practicematch/internal/logging"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cat := catalog.Default()
	eng := engine.New(cat, classifier.New(catalog.DefaultThreshold))
	s := New(eng, tagger.New(cat), ":0")
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return resp, m
}

func TestMatch(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		area    string
		matched bool
	}{
		{"labor and employment", `{"labels":["Labor and Employment"]}`, "labor-employment", true},
		{"labor beats employment law", `{"labels":["Labor","Employment Law"]}`, "labor-employment", true},
		{"construction", `{"labels":["Construction Law","Mechanic's Liens"]}`, "construction", true},
		{"no match", `{"labels":["Philately","Numismatics"]}`, "", false},
		{"empty labels", `{"labels":[]}`, "", false},
		{"missing labels", `{}`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, m := postJSON(t, ts.URL+"/api/match", tt.body)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			assert.Equal(t, tt.matched, m["matched"])
			if tt.matched {
				assert.Equal(t, tt.area, m["area"])
				assert.Equal(t, imagery.HeroImage(tt.area), m["hero_image"])
			} else {
				assert.NotContains(t, m, "area")
				assert.Equal(t, imagery.DefaultHero, m["hero_image"])
			}
			assert.NotContains(t, m, "ranking")
		})
	}
}

func TestMatchExplain(t *testing.T) {
	ts := newTestServer(t)

	_, m := postJSON(t, ts.URL+"/api/match?explain=1", `{"labels":["Labor","Employment Law","labor"]}`)
	assert.Equal(t, "labor-employment", m["area"])
	assert.Equal(t, float64(35), m["score"])
	assert.Equal(t, float64(catalog.DefaultThreshold), m["threshold"])
	assert.Equal(t, []any{"labor", "employment law"}, m["labels"])

	ranking, ok := m["ranking"].([]any)
	require.True(t, ok, "ranking should be a list")
	require.Len(t, ranking, catalog.Default().Len())
	second := ranking[1].(map[string]any)
	assert.Equal(t, "employment-law", second["area"])
}

func TestMatchBadRequest(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []string{``, `{"labels":`, `{"labels":"not a list"}`, `{} {}`} {
		resp, m := postJSON(t, ts.URL+"/api/match", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %q", body)
		assert.NotEmpty(t, m["error"], "body %q", body)
	}
}

func TestWrongMethod(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/match"},
		{http.MethodDelete, "/api/areas"},
		{http.MethodPost, "/api/areas/construction"},
		{http.MethodGet, "/api/posts/tags"},
		{http.MethodPost, "/healthz"},
	}
	for _, tt := range tests {
		req, err := http.NewRequest(tt.method, ts.URL+tt.path, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&m), "%s %s", tt.method, tt.path)
		resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, "%s %s", tt.method, tt.path)
		assert.Equal(t, "method not allowed", m["error"], "%s %s", tt.method, tt.path)
	}
}

func TestAreas(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/areas")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var areas []areaResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&areas))
	require.Len(t, areas, catalog.Default().Len())
	assert.Equal(t, "labor-employment", areas[0].ID)
	for _, a := range areas {
		assert.NotEmpty(t, a.Name, a.ID)
		assert.NotEqual(t, imagery.DefaultHero, a.HeroImage, a.ID)
	}
}

func TestArea(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/areas/construction")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var a areaResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&a))
	assert.Equal(t, "construction", a.ID)
	require.NotNil(t, a.Images)
	assert.Equal(t, "/images/practice-areas/construction.webp", a.Images.WebP)

	resp2, err := http.Get(ts.URL + "/api/areas/philately")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestPostTags(t *testing.T) {
	ts := newTestServer(t)

	body := `{"posts":[
		{"title":"Legal Update: New Construction Lien Rules","excerpt":"What contractors need to know."},
		{"title":"Firm Welcomes New Associate"}
	]}`
	resp, err := http.Post(ts.URL+"/api/posts/tags", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out tagsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Posts, 2)
	assert.Equal(t, "Legal Alert", out.Posts[0].Category)
	assert.Contains(t, out.Posts[0].Areas, "Construction")
	assert.Equal(t, "Firm News", out.Posts[1].Category)
	assert.Empty(t, out.Posts[1].Areas)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, "ok", m["status"])
	assert.Equal(t, float64(catalog.Default().Len()), m["areas"])
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	cat := catalog.Default()
	s := New(engine.New(cat, classifier.New(10)), tagger.New(cat), "127.0.0.1:0")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, true, slog.LevelDebug))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// requestStatuses returns the status of every "http request" log record.
func requestStatuses(t *testing.T, buf *bytes.Buffer) map[string]int {
	t.Helper()
	got := map[string]int{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		if rec["msg"] != "http request" {
			continue
		}
		got[rec["method"].(string)+" "+rec["path"].(string)] = int(rec["status"].(float64))
	}
	return got
}

func TestRequestLogging(t *testing.T) {
	buf := captureLogs(t)

	cat := catalog.Default()
	s := New(engine.New(cat, classifier.New(catalog.DefaultThreshold)), tagger.New(cat), ":0")
	s.router.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}).Methods(http.MethodGet)

	codes := map[string]int{}
	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/healthz", nil),
		httptest.NewRequest(http.MethodGet, "/nope", nil),
		httptest.NewRequest(http.MethodGet, "/api/match", nil),
		httptest.NewRequest(http.MethodGet, "/boom", nil),
	} {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		codes[req.Method+" "+req.URL.Path] = rec.Code
	}

	assert.Equal(t, map[string]int{
		"GET /healthz":   http.StatusOK,
		"GET /nope":      http.StatusNotFound,
		"GET /api/match": http.StatusMethodNotAllowed,
		"GET /boom":      http.StatusInternalServerError,
	}, codes)
	assert.Equal(t, codes, requestStatuses(t, buf))
}
