package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-user-enrichment/internal/model"
)

var db *sql.DB

// Initialize DB connection
func InitDB(dbPath string) error {
	if db != nil {
		db.Close()
	}

	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	// Create tables if not exists
	tables := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			spec TEXT,
			status TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS run_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS row_outcomes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			user_id INTEGER,
			status TEXT,
			stage TEXT,
			message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS run_metrics (
			run_id TEXT PRIMARY KEY,
			total INTEGER,
			succeeded INTEGER,
			failed INTEGER,
			duration_ms INTEGER,
			report_path TEXT
		);`,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun stores a new pipeline run
func SaveRun(runID string, spec model.RunSpec) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO runs (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		runID, specJSON, "pending", now, now)
	return err
}

// UpdateRunStatus updates run status
func UpdateRunStatus(runID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// SaveRunError records an error for a run
func SaveRunError(runID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, err.Error(), now)
	return e
}

// SaveRowOutcome records one per-user outcome of a run
func SaveRowOutcome(runID string, row model.RowOutcome) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO row_outcomes (run_id, user_id, status, stage, message, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, row.UserID, row.Status, row.Stage, row.Message, now)
	return err
}

// SaveRunMetrics stores the final counters for a run
func SaveRunMetrics(summary model.RunSummary) error {
	_, err := db.Exec(`INSERT OR REPLACE INTO run_metrics (run_id, total, succeeded, failed, duration_ms, report_path) VALUES (?, ?, ?, ?, ?, ?)`,
		summary.RunID, summary.Total, summary.Succeeded, summary.Failed, summary.Duration.Milliseconds(), summary.ReportPath)
	return err
}

// ListRuns returns all runs with basic info
func ListRuns() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return runs, rows.Err()
}

// GetRun fetches full run spec, status and metrics when present
func GetRun(runID string) (map[string]interface{}, error) {
	var specJSON string
	var status string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, created_at, updated_at FROM runs WHERE id = ?`, runID).
		Scan(&specJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.RunSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	run := map[string]interface{}{
		"id":        runID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}

	var total, succeeded, failed, durationMs int64
	var reportPath string
	err = db.QueryRow(`SELECT total, succeeded, failed, duration_ms, report_path FROM run_metrics WHERE run_id = ?`, runID).
		Scan(&total, &succeeded, &failed, &durationMs, &reportPath)
	if err == nil {
		run["metrics"] = map[string]interface{}{
			"total":      total,
			"succeeded":  succeeded,
			"failed":     failed,
			"durationMs": durationMs,
			"reportPath": reportPath,
		}
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	return run, nil
}

// GetRowOutcomes returns the per-user outcomes of a run in insertion order
func GetRowOutcomes(runID string) ([]model.RowOutcome, error) {
	rows, err := db.Query(`SELECT user_id, status, stage, message FROM row_outcomes WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []model.RowOutcome
	for rows.Next() {
		var row model.RowOutcome
		if err := rows.Scan(&row.UserID, &row.Status, &row.Stage, &row.Message); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, row)
	}
	return outcomes, rows.Err()
}

// GetRunReportPath returns the report file written by a finished run
func GetRunReportPath(runID string) (string, error) {
	var reportPath string
	err := db.QueryRow(`SELECT report_path FROM run_metrics WHERE run_id = ?`, runID).Scan(&reportPath)
	return reportPath, err
}
