package api

import (
	"github.com/gofiber/fiber/v3"
)

func SetupRoutes(app *fiber.App, h *Handler) {
	api := app.Group("/api")

	// Repositories
	repos := api.Group("/repositories")
	repos.Get("/", h.ListRepositories)
	repos.Post("/", h.CreateRepository)
	repos.Get("/:id", h.GetRepository)
	repos.Delete("/:id", h.DeleteRepository)
	repos.Post("/:id/reindex", h.ReindexRepository)
	repos.Get("/:id/files", h.ListRepositoryFiles)
	repos.Post("/:id/files", h.CreateFile)
	repos.Post("/:id/dependencies", h.CreateDependencies)
	repos.Get("/:id/search", h.SearchCode)
	repos.Post("/:id/ask", h.AskQuestion)
	repos.Get("/:id/graph", h.GetDependencyGraph)

	// Files
	files := api.Group("/files")
	files.Post("/:id/analyze", h.AnalyzeFile)
	files.Get("/:id/functions", h.ListFileFunctions)
	files.Post("/:id/issues", h.CreateIssue)
}
