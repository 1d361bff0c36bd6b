package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	"go-user-enrichment/internal/api/handler"
	"go-user-enrichment/pkg/router"
)

func RegisterRoutes(r *router.Router, h *handler.RunHandler) {
	r.POST("/api/v1/runs", h.CreateRun)
	r.GET("/api/v1/runs", h.ListRuns)
	// More specific routes first
	r.GET("/api/v1/runs/*/results", h.GetRunResults)
	r.GET("/api/v1/runs/*/report", h.DownloadReport)
	// Generic run route last
	r.GET("/api/v1/runs/*", h.GetRun)

	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
