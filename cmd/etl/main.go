package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"go-user-enrichment/internal/apiclient"
	"go-user-enrichment/internal/config"
	"go-user-enrichment/internal/enrich"
	"go-user-enrichment/internal/model"
	"go-user-enrichment/internal/pipeline"
	"go-user-enrichment/internal/store"
	"go-user-enrichment/pkg/utils"
)

func main() {
	settings := config.Load()
	ctx := context.Background()

	utils.Info(fmt.Sprintf("API_URL=%s", settings.APIURL))
	utils.Info(fmt.Sprintf("CSV_PATH=%s", settings.CSVPath))
	utils.Info(fmt.Sprintf("GEMINI_MODEL=%s", settings.GeminiModel))

	if err := store.InitDB(settings.DBPath); err != nil {
		utils.Error(fmt.Sprintf("failed to init run store: %v", err))
		os.Exit(1)
	}

	generator, err := enrich.NewGeminiGenerator(ctx, settings.GeminiAPIKey, settings.GeminiModel)
	if err != nil {
		utils.Error(err.Error())
		os.Exit(1)
	}
	defer generator.Close()

	spec := model.RunSpec{
		CSVPath:    settings.CSVPath,
		ReportPath: settings.ReportPath,
	}
	deps := pipeline.Deps{
		API:       apiclient.New(settings.APIURL, settings.RequestTimeout),
		Generator: generator,
		IconURL:   settings.IconURL,
		WrapWidth: settings.WrapWidth,
	}

	runID := uuid.New().String()
	if err := store.SaveRun(runID, spec); err != nil {
		utils.Error(fmt.Sprintf("failed to save run: %v", err))
		os.Exit(1)
	}

	utils.Separator()

	summary, err := pipeline.Run(ctx, runID, spec, deps)
	if err != nil {
		utils.Error(err.Error())
		os.Exit(1)
	}

	utils.Separator()
	pipeline.PrintSummary(summary)
}
