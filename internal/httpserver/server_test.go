package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/promptdeck/internal/catalog"
	"github.com/MrSnakeDoc/promptdeck/internal/config"
	"github.com/MrSnakeDoc/promptdeck/internal/domain"
	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/promptdeck/internal/index"
	"github.com/MrSnakeDoc/promptdeck/internal/logger"
	"github.com/MrSnakeDoc/promptdeck/internal/metrics"
	"github.com/MrSnakeDoc/promptdeck/internal/store/memory"
)

type listBody struct {
	View    string `json:"view"`
	Count   int    `json:"count"`
	Prompts []struct {
		ID         int    `json:"id"`
		Title      string `json:"title"`
		Bookmarked bool   `json:"bookmarked"`
	} `json:"prompts"`
}

func newTestDeps(t *testing.T, loaded bool) deps.Deps {
	t.Helper()

	idx := index.NewMemoryIndex()
	if loaded {
		c, err := catalog.New([]*domain.Prompt{
			{ID: 1, Title: "English translator", Prompt: "I want you to act as an English translator", Tags: []string{"language"}, Weight: 14572},
			{ID: 2, Title: "Writing assistant", Prompt: "As a writing improvement assistant", Tags: []string{"favorite", "write"}, Weight: 61198},
			{ID: 78, Title: "Socrat ①", Prompt: "Act as Socrates", Tags: []string{"philosophy"}, Weight: 300},
			{ID: 79, Title: "Socrat ②", Prompt: "Use the Socratic method", Tags: []string{"philosophy"}, Weight: 300},
		})
		require.NoError(t, err)
		idx.Update(c, "test")
	}

	log := logger.NewNop()
	m := metrics.New()
	return deps.Deps{
		Logger:          log,
		StartTime:       time.Now(),
		Version:         "test",
		StoreBackend:    config.StoreMemory,
		MemoryIndex:     idx,
		Service:         catalog.NewService(idx, memory.NewStore(), nil, log, m),
		Metrics:         m,
		ReloadTrigger:   make(chan struct{}, 1),
		RateLimitBurst:  100,
		RateLimitPerMin: 100,
	}
}

func newTestHandler(t *testing.T, d deps.Deps) http.Handler {
	t.Helper()
	return New(&config.Config{ListenPort: ":0"}, d.Logger, d).Handler()
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) listBody {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body listBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func ids(body listBody) []int {
	out := make([]int, 0, len(body.Prompts))
	for _, p := range body.Prompts {
		out = append(out, p.ID)
	}
	return out
}

func TestListPrompts(t *testing.T) {
	h := newTestHandler(t, newTestDeps(t, true))

	tests := []struct {
		name   string
		target string
		want   []int
	}{
		{"all in catalog order", "/api/prompts", []int{1, 2, 78, 79}},
		{"explicit all view", "/api/prompts?view=all", []int{1, 2, 78, 79}},
		{"search", "/api/prompts?q=ASSIST", []int{2}},
		{"tag filter", "/api/prompts?tag=favorite", []int{2}},
		{"two tags", "/api/prompts?tag=favorite&tag=language", []int{}},
		{"weight sort", "/api/prompts?sort=weight", []int{2, 1, 78, 79}},
		{"empty bookmarked view", "/api/prompts?view=bookmarked", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := decodeList(t, do(h, http.MethodGet, tt.target, ""))
			assert.Equal(t, tt.want, ids(body))
			assert.Equal(t, len(tt.want), body.Count)
		})
	}
}

func TestListPromptsBadRequests(t *testing.T) {
	h := newTestHandler(t, newTestDeps(t, true))

	for _, target := range []string{"/api/prompts?view=trending", "/api/prompts?sort=title"} {
		rec := do(h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestNotLoaded(t *testing.T) {
	h := newTestHandler(t, newTestDeps(t, false))

	assert.Equal(t, http.StatusServiceUnavailable, do(h, http.MethodGet, "/api/prompts", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(h, http.MethodGet, "/readyz", "").Code)

	rec := do(h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"memory"`, jsonField(t, rec, "store"))
	assert.JSONEq(t, `false`, jsonField(t, rec, "catalog_loaded"))
}

func jsonField(t *testing.T, rec *httptest.ResponseRecorder, key string) string {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return string(m[key])
}

func TestBookmarkFlow(t *testing.T) {
	h := newTestHandler(t, newTestDeps(t, true))

	assert.Equal(t, http.StatusNoContent, do(h, http.MethodPut, "/api/prompts/1/bookmark", "").Code)
	assert.Equal(t, http.StatusNoContent, do(h, http.MethodPut, "/api/prompts/1/bookmark", "").Code)

	body := decodeList(t, do(h, http.MethodGet, "/api/prompts?view=bookmarked", ""))
	assert.Equal(t, []int{1}, ids(body))
	assert.True(t, body.Prompts[0].Bookmarked)

	all := decodeList(t, do(h, http.MethodGet, "/api/prompts", ""))
	assert.True(t, all.Prompts[0].Bookmarked)
	assert.False(t, all.Prompts[1].Bookmarked)

	assert.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, "/api/prompts/1/bookmark", "").Code)
	assert.Empty(t, ids(decodeList(t, do(h, http.MethodGet, "/api/prompts?view=bookmarked", ""))))

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodPut, "/api/prompts/999/bookmark", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPut, "/api/prompts/abc/bookmark", "").Code)
}

func TestGetPrompt(t *testing.T) {
	h := newTestHandler(t, newTestDeps(t, true))

	rec := do(h, http.MethodGet, "/api/prompts/79", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 79, p.ID)
	assert.Equal(t, "Socrat ②", p.Title)

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/api/prompts/999", "").Code)
}

func TestCopyAndUse(t *testing.T) {
	h := newTestHandler(t, newTestDeps(t, true))

	for _, action := range []string{"copy", "use"} {
		rec := do(h, http.MethodPost, "/api/prompts/78/"+action, "")
		require.Equal(t, http.StatusOK, rec.Code, action)
		var body struct {
			ID   int    `json:"id"`
			Text string `json:"text"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 78, body.ID)
		assert.Equal(t, "Act as Socrates", body.Text)
	}

	rec := do(h, http.MethodPost, "/api/prompts/999/copy", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "prompt not found")
}

func TestCustomPrompts(t *testing.T) {
	h := newTestHandler(t, newTestDeps(t, true))

	rec := do(h, http.MethodPost, "/api/custom", `{"title":"Standup","prompt":"Draft my standup","tags":["Write"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID     int      `json:"id"`
		Custom bool     `json:"custom"`
		Tags   []string `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Custom)
	assert.Equal(t, []string{"write"}, created.Tags)

	assert.Equal(t, []int{created.ID}, ids(decodeList(t, do(h, http.MethodGet, "/api/prompts?view=custom", ""))))

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/api/custom", `{"title":"","prompt":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/api/custom", `{"title":"x","prompt":"y","color":"red"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/api/custom", `not json`).Code)

	target := "/api/custom/" + strconv.Itoa(created.ID)
	assert.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, target, "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodDelete, target, "").Code)
}

func TestTags(t *testing.T) {
	h := newTestHandler(t, newTestDeps(t, true))

	rec := do(h, http.MethodGet, "/api/tags", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Tags []domain.TagCount `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Tags)
	assert.Equal(t, domain.TagCount{Tag: "philosophy", Count: 2}, body.Tags[0])
}

func TestReload(t *testing.T) {
	d := newTestDeps(t, true)
	h := newTestHandler(t, d)

	assert.Equal(t, http.StatusAccepted, do(h, http.MethodPost, "/reload", "").Code)
	// trigger buffer is full until the reloader drains it
	assert.Equal(t, http.StatusTooManyRequests, do(h, http.MethodPost, "/reload", "").Code)
	<-d.ReloadTrigger
}

func TestInfraAndMetrics(t *testing.T) {
	h := newTestHandler(t, newTestDeps(t, true))

	_ = do(h, http.MethodGet, "/api/prompts", "")

	rec := do(h, http.MethodGet, "/infra", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var infra struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infra))
	assert.Equal(t, "operational", infra.Status)

	rec = do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `promptdeck_catalog_queries_total{view="all"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	d := newTestDeps(t, true)
	d.CORSOrigins = []string{"https://chat.example.com"}
	h := newTestHandler(t, d)

	req := httptest.NewRequest(http.MethodOptions, "/api/prompts/1/bookmark", nil)
	req.Header.Set("Origin", "https://chat.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://chat.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMutationsRateLimited(t *testing.T) {
	d := newTestDeps(t, true)
	d.RateLimitBurst = 2
	d.RateLimitPerMin = 1
	h := newTestHandler(t, d)

	assert.Equal(t, http.StatusNoContent, do(h, http.MethodPut, "/api/prompts/1/bookmark", "").Code)
	assert.Equal(t, http.StatusNoContent, do(h, http.MethodPut, "/api/prompts/2/bookmark", "").Code)
	rec := do(h, http.MethodPut, "/api/prompts/78/bookmark", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// reads are not limited
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/prompts", "").Code)
}

func TestAdminRoutesRestricted(t *testing.T) {
	d := newTestDeps(t, true)
	d.AllowedCIDRS = []string{"10.0.0.0/8"}
	h := newTestHandler(t, d)

	// httptest requests come from 192.0.2.1
	assert.Equal(t, http.StatusForbidden, do(h, http.MethodGet, "/infra", "").Code)
	assert.Equal(t, http.StatusForbidden, do(h, http.MethodPost, "/reload", "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/prompts", "").Code)
}
