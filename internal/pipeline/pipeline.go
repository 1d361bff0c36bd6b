package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-user-enrichment/internal/apiclient"
	"go-user-enrichment/internal/enrich"
	"go-user-enrichment/internal/model"
	"go-user-enrichment/internal/store"
	"go-user-enrichment/pkg/utils"
)

// Deps carries the external collaborators of a run
type Deps struct {
	API       UserAPI
	Generator enrich.Generator
	IconURL   string
	WrapWidth int
}

// ------------------- Pipeline Runner -------------------

// Run executes one full extract-transform-load pass: each CSV ID is
// fetched, enriched with a generated news entry, written back via PUT,
// and recorded as a row outcome. A failing row never stops the run.
func Run(ctx context.Context, runID string, spec model.RunSpec, deps Deps) (summary model.RunSummary, err error) {
	start := time.Now()
	fmt.Printf("🚀 Starting enrichment run: %s\n", runID)

	summary = model.RunSummary{RunID: runID, ReportPath: spec.ReportPath}

	store.UpdateRunStatus(runID, "running")
	defer func() {
		if err != nil {
			store.UpdateRunStatus(runID, "failed")
			store.SaveRunError(runID, err)
		}
	}()

	// --- EXTRACT: CSV -> IDs ---
	ids, err := ReadUserIDs(spec.CSVPath)
	if err != nil {
		return summary, err
	}
	utils.Info(fmt.Sprintf("IDs do CSV: %v", ids))

	var fetched []*model.User

	for _, id := range ids {
		if ctx.Err() != nil {
			return summary, fmt.Errorf("run cancelled: %w", ctx.Err())
		}

		row := processUser(ctx, id, deps, &fetched)
		summary.Add(row)
		store.SaveRowOutcome(runID, row)
	}

	if len(fetched) > 0 {
		utils.Separator()
		PrintUsersTable(fetched, deps.WrapWidth)
		utils.Separator()
	}

	// --- REPORT ---
	if err = WriteReport(spec.ReportPath, summary.Rows); err != nil {
		return summary, err
	}
	utils.Info(fmt.Sprintf("Relatório gerado para Excel: %s", spec.ReportPath))

	summary.Duration = time.Since(start)
	store.SaveRunMetrics(summary)
	store.UpdateRunStatus(runID, "completed")

	fmt.Printf("🏁 Run %s completed in %v: %d ok, %d failed\n",
		runID, summary.Duration.Round(time.Millisecond), summary.Succeeded, summary.Failed)
	return summary, nil
}

// processUser runs the GET -> generate -> merge -> PUT chain for one ID
func processUser(ctx context.Context, id int, deps Deps, fetched *[]*model.User) model.RowOutcome {
	user, err := deps.API.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			utils.Warn(fmt.Sprintf("Usuário %d não encontrado na API (404).", id))
		} else {
			utils.Error(err.Error())
		}
		return model.RowOutcome{UserID: id, Status: model.StatusFailure, Stage: model.StageExtract, Message: err.Error()}
	}
	*fetched = append(*fetched, user)

	text, err := EnrichUser(ctx, deps.Generator, user, deps.IconURL)
	if err != nil {
		utils.Error(err.Error())
		return model.RowOutcome{UserID: id, Status: model.StatusFailure, Stage: model.StageTransform, Message: err.Error()}
	}
	utils.Ok(fmt.Sprintf("News (Gemini) gerada para %s -> %s (%d caracteres)", user.Nome, text, len([]rune(text))))

	if err := LoadUser(ctx, deps.API, user); err != nil {
		utils.Error(err.Error())
		return model.RowOutcome{UserID: id, Status: model.StatusFailure, Stage: model.StageLoad, Message: err.Error()}
	}

	return model.RowOutcome{UserID: id, Status: model.StatusSuccess, Message: text}
}
