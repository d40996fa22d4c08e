package api

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/codescope/codescope/internal/analysis"
	"github.com/codescope/codescope/internal/config"
	"github.com/codescope/codescope/internal/db"
	"github.com/codescope/codescope/internal/git"
	"github.com/codescope/codescope/internal/graph"
	"github.com/codescope/codescope/internal/indexer"
	"github.com/codescope/codescope/internal/models"
	"github.com/codescope/codescope/internal/qa"
	"github.com/codescope/codescope/internal/search"
	"github.com/gofiber/fiber/v3"
)

type Handler struct {
	cfg          *config.Config
	dbClient     *db.Neo4jClient
	store        *db.Store
	writer       *db.Writer
	gitSvc       *git.GitService
	pipeline     *indexer.Pipeline
	analyzer     *analysis.Service
	searchEngine *search.Engine
	qaEngine     *qa.Engine
	graphBuilder *graph.Builder
}

func NewHandler(cfg *config.Config, dbClient *db.Neo4jClient) *Handler {
	store := db.NewStore(dbClient)
	return &Handler{
		cfg:          cfg,
		dbClient:     dbClient,
		store:        store,
		writer:       db.NewWriter(store),
		gitSvc:       git.NewGitService(cfg.ReposPath),
		pipeline:     indexer.NewPipeline(),
		analyzer:     analysis.NewService(store),
		searchEngine: search.NewEngine(store),
		qaEngine:     qa.NewEngine(store),
		graphBuilder: graph.NewBuilder(store),
	}
}

// respondError maps domain errors onto HTTP status codes.
func respondError(c fiber.Ctx, err error) error {
	var notFound *models.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(404).JSON(fiber.Map{"error": notFound.Error()})
	}
	var invalid *models.ValidationError
	if errors.As(err, &invalid) {
		return c.Status(400).JSON(fiber.Map{"error": invalid.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"error": err.Error()})
}

// ListRepositories returns all repositories
func (h *Handler) ListRepositories(c fiber.Ctx) error {
	repos, err := db.ListRepositories(c.Context(), h.dbClient)
	if err != nil {
		return respondError(c, err)
	}
	if repos == nil {
		repos = []*models.Repository{}
	}
	return c.JSON(repos)
}

// GetRepository returns a single repository
func (h *Handler) GetRepository(c fiber.Ctx) error {
	id := c.Params("id")
	repo, err := db.GetRepository(c.Context(), h.dbClient, id)
	if err != nil {
		return respondError(c, err)
	}
	if repo == nil {
		return c.Status(404).JSON(fiber.Map{"error": "repository not found"})
	}
	return c.JSON(repo)
}

// CreateRepository adds a new repository and starts indexing
func (h *Handler) CreateRepository(c fiber.Ctx) error {
	var input models.CreateRepositoryInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	if input.URL == "" {
		return c.Status(400).JSON(fiber.Map{"error": "url is required"})
	}

	repo := &models.Repository{
		URL:           input.URL,
		Name:          git.ExtractRepoName(input.URL),
		DefaultBranch: input.DefaultBranch,
		Status:        "pending",
	}
	if repo.DefaultBranch == "" {
		repo.DefaultBranch = "main"
	}

	created, err := db.CreateRepository(c.Context(), h.dbClient, repo)
	if err != nil {
		return respondError(c, err)
	}

	// Start indexing in background
	go h.indexRepository(created)

	return c.Status(201).JSON(created)
}

// DeleteRepository removes a repository
func (h *Handler) DeleteRepository(c fiber.Ctx) error {
	id := c.Params("id")

	if err := db.DeleteRepository(c.Context(), h.dbClient, id); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(204)
}

// ReindexRepository triggers re-indexing
func (h *Handler) ReindexRepository(c fiber.Ctx) error {
	id := c.Params("id")

	repo, err := db.GetRepository(c.Context(), h.dbClient, id)
	if err != nil {
		return respondError(c, err)
	}
	if repo == nil {
		return c.Status(404).JSON(fiber.Map{"error": "repository not found"})
	}

	db.UpdateRepositoryStatus(c.Context(), h.dbClient, id, "indexing")
	go h.indexRepository(repo)

	return c.JSON(fiber.Map{"status": "indexing started"})
}

func (h *Handler) indexRepository(repo *models.Repository) {
	ctx := context.Background()

	repoPath, err := h.gitSvc.Clone(ctx, repo.URL, repo.DefaultBranch)
	if err != nil {
		log.Printf("indexing %s: clone failed: %v", repo.ID, err)
		db.UpdateRepositoryStatus(ctx, h.dbClient, repo.ID, "error")
		return
	}

	// Re-indexing replaces everything previously ingested.
	h.writer.ClearRepository(ctx, repo.ID)

	db.UpdateRepositoryStatus(ctx, h.dbClient, repo.ID, "indexing")

	result, err := h.pipeline.IndexDirectory(ctx, repoPath, repo.ID)
	if err != nil {
		log.Printf("indexing %s: pipeline failed: %v", repo.ID, err)
		db.UpdateRepositoryStatus(ctx, h.dbClient, repo.ID, "error")
		return
	}

	if err := h.writer.WriteIndexResult(ctx, result); err != nil {
		log.Printf("indexing %s: write failed: %v", repo.ID, err)
		db.UpdateRepositoryStatus(ctx, h.dbClient, repo.ID, "error")
		return
	}

	// Status is set to 'ready' by WriteIndexResult.
}

// ListRepositoryFiles returns all file records of a repository
func (h *Handler) ListRepositoryFiles(c fiber.Ctx) error {
	id := c.Params("id")
	files, err := h.store.ListFilesByRepository(c.Context(), id, models.FileFilter{})
	if err != nil {
		return respondError(c, err)
	}
	if files == nil {
		files = []*models.File{}
	}
	return c.JSON(files)
}

type createFileInput struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

// CreateFile ingests a single file record
func (h *Handler) CreateFile(c fiber.Ctx) error {
	repoID := c.Params("id")

	var input createFileInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if input.Path == "" {
		return c.Status(400).JSON(fiber.Map{"error": "path is required"})
	}

	language := input.Language
	if language == "" {
		language = models.DetectLanguage(input.Path)
	}

	file, err := h.store.CreateFile(c.Context(), &models.File{
		RepoID:   repoID,
		Path:     input.Path,
		Content:  input.Content,
		Language: language,
		Size:     int64(len(input.Content)),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(file)
}

// AnalyzeFile runs summary, complexity and function extraction on a file
func (h *Handler) AnalyzeFile(c fiber.Ctx) error {
	id := c.Params("id")

	file, err := h.analyzer.AnalyzeFile(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(file)
}

// ListFileFunctions returns the functions extracted from a file
func (h *Handler) ListFileFunctions(c fiber.Ctx) error {
	id := c.Params("id")

	functions, err := h.store.ListFunctionsByFile(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if functions == nil {
		functions = []models.Function{}
	}
	return c.JSON(functions)
}

type createIssueInput struct {
	IssueType   string `json:"issueType"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	LineNumber  int    `json:"lineNumber"`
	Suggestion  string `json:"suggestion"`
}

var (
	validIssueTypes = map[string]bool{
		"bug": true, "performance": true, "security": true,
		"style": true, "maintainability": true,
	}
	validSeverities = map[string]bool{
		"low": true, "medium": true, "high": true, "critical": true,
	}
)

// CreateIssue records an issue against a file
func (h *Handler) CreateIssue(c fiber.Ctx) error {
	fileID := c.Params("id")

	var input createIssueInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if !validIssueTypes[input.IssueType] {
		return c.Status(400).JSON(fiber.Map{"error": "invalid issue type"})
	}
	if !validSeverities[input.Severity] {
		return c.Status(400).JSON(fiber.Map{"error": "invalid severity"})
	}
	if input.Description == "" {
		return c.Status(400).JSON(fiber.Map{"error": "description is required"})
	}

	issue, err := h.store.CreateIssue(c.Context(), &models.Issue{
		FileID:      fileID,
		IssueType:   models.IssueType(input.IssueType),
		Severity:    models.Severity(input.Severity),
		Description: input.Description,
		LineNumber:  input.LineNumber,
		Suggestion:  input.Suggestion,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(issue)
}

type createDependenciesInput struct {
	Dependencies []struct {
		FromFile       string `json:"fromFile"`
		ToFile         string `json:"toFile"`
		DependencyType string `json:"dependencyType"`
	} `json:"dependencies"`
}

var validDependencyTypes = map[string]bool{
	"import": true, "require": true, "include": true,
	"extend": true, "inherit": true,
}

// CreateDependencies records a batch of dependency edges
func (h *Handler) CreateDependencies(c fiber.Ctx) error {
	repoID := c.Params("id")

	var input createDependenciesInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(input.Dependencies) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "dependencies are required"})
	}

	deps := make([]models.Dependency, 0, len(input.Dependencies))
	for _, d := range input.Dependencies {
		if d.FromFile == "" || d.ToFile == "" {
			return c.Status(400).JSON(fiber.Map{"error": "fromFile and toFile are required"})
		}
		if !validDependencyTypes[d.DependencyType] {
			return c.Status(400).JSON(fiber.Map{"error": "invalid dependency type"})
		}
		deps = append(deps, models.Dependency{
			RepoID:         repoID,
			FromFile:       d.FromFile,
			ToFile:         d.ToFile,
			DependencyType: models.DependencyType(d.DependencyType),
		})
	}

	if err := h.store.InsertDependencies(c.Context(), repoID, deps); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(201)
}

// SearchCode performs line-level substring search within a repository
func (h *Handler) SearchCode(c fiber.Ctx) error {
	repoID := c.Params("id")

	query := c.Query("q")
	if query == "" {
		return c.Status(400).JSON(fiber.Map{"error": "query parameter 'q' is required"})
	}

	var fileTypes []string
	if types := c.Query("types"); types != "" {
		for _, t := range strings.Split(types, ",") {
			if t = strings.TrimSpace(t); t != "" {
				fileTypes = append(fileTypes, t)
			}
		}
	}
	includeAI := fiber.Query[bool](c, "ai", false)

	results, err := h.searchEngine.Search(c.Context(), repoID, query, fileTypes, includeAI)
	if err != nil {
		return respondError(c, err)
	}
	if results == nil {
		results = []search.Result{}
	}
	return c.JSON(results)
}

type askInput struct {
	Question     string   `json:"question"`
	ContextFiles []string `json:"contextFiles"`
}

// AskQuestion answers a free-text question about the repository
func (h *Handler) AskQuestion(c fiber.Ctx) error {
	repoID := c.Params("id")

	var input askInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if input.Question == "" {
		return c.Status(400).JSON(fiber.Map{"error": "question is required"})
	}

	answer, err := h.qaEngine.Ask(c.Context(), repoID, input.Question, input.ContextFiles)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(answer)
}

// GetDependencyGraph returns the dependency graph for visualization
func (h *Handler) GetDependencyGraph(c fiber.Ctx) error {
	repoID := c.Params("id")

	g, err := h.graphBuilder.Build(c.Context(), repoID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(g)
}
