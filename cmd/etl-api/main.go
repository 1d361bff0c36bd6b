package main

import (
	"context"
	"fmt"
	"os"

	_ "go-user-enrichment/docs"
	"go-user-enrichment/internal/api"
	"go-user-enrichment/internal/api/handler"
	"go-user-enrichment/internal/apiclient"
	"go-user-enrichment/internal/config"
	"go-user-enrichment/internal/enrich"
	"go-user-enrichment/internal/pipeline"
	"go-user-enrichment/internal/store"
	"go-user-enrichment/pkg/router"
	"go-user-enrichment/pkg/utils"
)

// @title User Enrichment ETL API
// @version 1.0
// @description Triggers and inspects user-enrichment ETL runs
// @host localhost:8080
// @BasePath /api/v1
func main() {
	settings := config.Load()
	ctx := context.Background()

	// Init DB
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

	h := &handler.RunHandler{
		Settings: settings,
		Deps: pipeline.Deps{
			API:       apiclient.New(settings.APIURL, settings.RequestTimeout),
			Generator: generator,
			IconURL:   settings.IconURL,
			WrapWidth: settings.WrapWidth,
		},
	}

	// Create router and register API routes
	r := router.New()
	api.RegisterRoutes(r, h)

	// Start server
	r.Start(":8080")
}
