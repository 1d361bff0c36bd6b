package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-user-enrichment/internal/config"
	"go-user-enrichment/internal/model"
	"go-user-enrichment/internal/pipeline"
	"go-user-enrichment/internal/store"
)

// runTimeout bounds a single triggered run
const runTimeout = 5 * time.Minute

// RunHandler serves the enrichment-run endpoints
type RunHandler struct {
	Settings config.Settings
	Deps     pipeline.Deps
}

// CreateRun triggers a new enrichment run
// @Summary Create a new run
// @Description Trigger an asynchronous enrichment run over the configured (or provided) input CSV
// @Tags runs
// @Accept json
// @Produce json
// @Param run body model.RunSpec false "Run overrides"
// @Success 200 {object} map[string]interface{} "Run created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [post]
func (h *RunHandler) CreateRun(w http.ResponseWriter, r *http.Request) {
	var spec model.RunSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil && err != io.EOF {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	runID := uuid.New().String()

	if spec.CSVPath == "" {
		spec.CSVPath = h.Settings.CSVPath
	}
	if spec.ReportPath == "" {
		// Per-run report directory keeps concurrent runs from clobbering each other
		spec.ReportPath = filepath.Join(h.Settings.OutputDir, runID, "report_etl.csv")
	}

	if err := store.SaveRun(runID, spec); err != nil {
		http.Error(w, "Failed to save run", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	go func() {
		defer cancel()
		if _, err := pipeline.Run(ctx, runID, spec, h.Deps); err != nil {
			store.SaveRunError(runID, err)
		}
	}()

	resp := map[string]interface{}{
		"message":   "Run created successfully!",
		"runID":     runID,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListRuns retrieves all runs
// @Summary List all runs
// @Description Get a list of all enrichment runs with their current status
// @Tags runs
// @Accept json
// @Produce json
// @Success 200 {array} map[string]interface{} "List of runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [get]
func (h *RunHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		http.Error(w, "Failed to fetch runs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// GetRun retrieves a specific run
// @Summary Get run
// @Description Retrieve status, spec and metrics of a specific run
// @Tags runs
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run details"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id} [get]
func (h *RunHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID := runIDFromPath(r.URL.Path, "")
	if runID == "" {
		http.Error(w, "Missing run ID", http.StatusBadRequest)
		return
	}

	run, err := store.GetRun(runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Run not found", http.StatusNotFound)
		} else {
			http.Error(w, "Failed to fetch run", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// GetRunResults retrieves the per-user outcomes of a run
// @Summary Get run results
// @Description Retrieve the per-user row outcomes of a run, in input order
// @Tags runs
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {array} model.RowOutcome "Row outcomes"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs/{id}/results [get]
func (h *RunHandler) GetRunResults(w http.ResponseWriter, r *http.Request) {
	runID := runIDFromPath(r.URL.Path, "/results")
	if runID == "" {
		http.Error(w, "Missing run ID", http.StatusBadRequest)
		return
	}

	outcomes, err := store.GetRowOutcomes(runID)
	if err != nil {
		http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
		return
	}
	if outcomes == nil {
		outcomes = []model.RowOutcome{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(outcomes)
}

// DownloadReport serves the report CSV written by a finished run
// @Summary Download run report
// @Description Download the report CSV produced by a finished run
// @Tags runs
// @Produce text/csv
// @Param id path string true "Run ID"
// @Success 200 {file} file "Report CSV"
// @Failure 404 {object} map[string]interface{} "Report not available"
// @Router /runs/{id}/report [get]
func (h *RunHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	runID := runIDFromPath(r.URL.Path, "/report")
	if runID == "" {
		http.Error(w, "Missing run ID", http.StatusBadRequest)
		return
	}

	reportPath, err := store.GetRunReportPath(runID)
	if err != nil {
		http.Error(w, "Report not available", http.StatusNotFound)
		return
	}
	if _, err := os.Stat(reportPath); err != nil {
		http.Error(w, "Report not available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(reportPath)+`"`)
	http.ServeFile(w, r, reportPath)
}

// runIDFromPath extracts the run ID from /api/v1/runs/{id}{suffix}
func runIDFromPath(path, suffix string) string {
	rest := strings.TrimPrefix(path, "/api/v1/runs/")
	if rest == path {
		return ""
	}
	if suffix != "" {
		rest = strings.TrimSuffix(rest, suffix)
	}
	return strings.Trim(rest, "/")
}
