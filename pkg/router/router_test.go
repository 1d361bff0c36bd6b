package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, r *Router, method, path string) (int, string) {
	t.Helper()
	srv := httptest.NewServer(r)
	defer srv.Close()

	req, err := http.NewRequest(method, srv.URL+path, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestExactRoute(t *testing.T) {
	r := New()
	r.GET("/api/v1/runs", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("list"))
	})

	code, body := doRequest(t, r, http.MethodGet, "/api/v1/runs")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "list", body)
}

func TestWildcardRoutePrecedence(t *testing.T) {
	r := New()
	r.GET("/api/v1/runs/*", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("run"))
	})
	r.GET("/api/v1/runs/*/results", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("results"))
	})

	code, body := doRequest(t, r, http.MethodGet, "/api/v1/runs/abc-123")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "run", body)

	code, body = doRequest(t, r, http.MethodGet, "/api/v1/runs/abc-123/results")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "results", body)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	r := New()
	r.GET("/api/v1/runs", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("list"))
	})

	code, _ := doRequest(t, r, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doRequest(t, r, http.MethodDelete, "/api/v1/runs")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}

func TestMatchWildcardRoute(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		pattern string
		want    bool
	}{
		{"single segment", "/runs/1", "/runs/*", true},
		{"middle wildcard", "/runs/1/results", "/runs/*/results", true},
		{"middle wildcard wrong tail", "/runs/1/report", "/runs/*/results", false},
		{"trailing matches rest", "/swagger/index.html", "/swagger/*", true},
		{"trailing matches deep", "/swagger/a/b/c", "/swagger/*", true},
		{"length mismatch", "/runs/1/x/y", "/runs/*/results", false},
		{"prefix mismatch", "/jobs/1", "/runs/*", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchWildcardRoute(tt.path, tt.pattern))
		})
	}
}
