package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-user-enrichment/internal/apiclient"
	"go-user-enrichment/internal/config"
	"go-user-enrichment/internal/model"
	"go-user-enrichment/internal/pipeline"
	"go-user-enrichment/internal/store"
)

// usersAPIServer fakes the external users REST API
func usersAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(model.User{ID: 1, Nome: "Ana"})
		case http.MethodPut:
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type staticGenerator struct{}

func (staticGenerator) GenerateNews(ctx context.Context, user *model.User) (string, error) {
	return "Invista sempre.", nil
}

func newTestHandler(t *testing.T) *RunHandler {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, store.InitDB(filepath.Join(dir, "etl.db")))

	srv := usersAPIServer(t)
	csvPath := filepath.Join(dir, "ids.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("user_id\n1\n"), 0644))

	return &RunHandler{
		Settings: config.Settings{
			CSVPath:   csvPath,
			OutputDir: filepath.Join(dir, "output"),
		},
		Deps: pipeline.Deps{
			API:       apiclient.New(srv.URL, 5*time.Second),
			Generator: staticGenerator{},
			IconURL:   "https://example.com/icon.svg",
			WrapWidth: 75,
		},
	}
}

func TestCreateRunTriggersPipeline(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	h.CreateRun(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	runID, _ := resp["runID"].(string)
	require.NotEmpty(t, runID)

	// The run executes asynchronously; wait for it to complete
	require.Eventually(t, func() bool {
		run, err := store.GetRun(runID)
		if err != nil {
			return false
		}
		return run["status"] == "completed"
	}, 5*time.Second, 50*time.Millisecond)

	outcomes, err := store.GetRowOutcomes(runID)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, model.StatusSuccess, outcomes[0].Status)
}

func TestCreateRunInvalidPayload(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.CreateRun(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRunNotFound(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/ghost", nil)
	rec := httptest.NewRecorder()
	h.GetRun(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRunResultsEmpty(t *testing.T) {
	h := newTestHandler(t)
	require.NoError(t, store.SaveRun("run-x", model.RunSpec{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/run-x/results", nil)
	rec := httptest.NewRecorder()
	h.GetRunResults(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestDownloadReportNotAvailable(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/ghost/report", nil)
	rec := httptest.NewRecorder()
	h.DownloadReport(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunIDFromPath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		suffix string
		want   string
	}{
		{"plain id", "/api/v1/runs/abc-123", "", "abc-123"},
		{"results suffix", "/api/v1/runs/abc-123/results", "/results", "abc-123"},
		{"report suffix", "/api/v1/runs/abc-123/report", "/report", "abc-123"},
		{"no prefix", "/other/abc", "", ""},
		{"empty id", "/api/v1/runs/", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runIDFromPath(tt.path, tt.suffix))
		})
	}
}
