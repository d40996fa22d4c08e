package db

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/codescope/codescope/internal/models"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFileQuery(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		query, params := buildFileQuery("r1", models.FileFilter{})
		assert.NotContains(t, query, "WHERE")
		assert.NotContains(t, query, "LIMIT")
		assert.Equal(t, map[string]any{"repoId": "r1"}, params)
	})

	t.Run("all filters lowercased", func(t *testing.T) {
		query, params := buildFileQuery("r1", models.FileFilter{
			Languages:       []string{"TypeScript"},
			ContainsQuery:   "Calculate",
			AnyKeyword:      []string{"Auth"},
			PathContainsAny: []string{"SRC/auth"},
			Limit:           10,
		})
		assert.Contains(t, query, "WHERE")
		assert.Contains(t, query, "LIMIT $limit")
		assert.Equal(t, []string{"typescript"}, params["languages"])
		assert.Equal(t, "calculate", params["query"])
		assert.Equal(t, []string{"auth"}, params["keywords"])
		assert.Equal(t, []string{"src/auth"}, params["paths"])
		assert.Equal(t, 10, params["limit"])
	})

	t.Run("conditions joined with AND", func(t *testing.T) {
		query, _ := buildFileQuery("r1", models.FileFilter{
			Languages:     []string{"go"},
			ContainsQuery: "x",
		})
		assert.Equal(t, 1, strings.Count(query, "WHERE"))
		assert.Contains(t, query, "AND")
	})
}

func TestStoreFileLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	client := setupTestNeo4j(t)
	defer client.Close()
	store := NewStore(client)

	repoID := setupTestRepository(t, ctx, client)
	defer cleanupTestRepository(t, ctx, client, repoID)

	created, err := store.CreateFile(ctx, &models.File{
		RepoID:      repoID,
		Path:        "src/auth.ts",
		Content:     "function login() {\n}",
		Language:    "typescript",
		Size:        20,
		LastUpdated: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := store.GetFile(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "src/auth.ts", fetched.Path)
	assert.Equal(t, "typescript", fetched.Language)

	// Re-creating the same path merges into the existing node.
	again, err := store.CreateFile(ctx, &models.File{
		RepoID:      repoID,
		Path:        "src/auth.ts",
		Content:     "function login() {\n  return true\n}",
		Language:    "typescript",
		Size:        34,
		LastUpdated: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	updated, err := store.UpdateFileAnalysis(ctx, created.ID, models.FileAnalysisPatch{
		AISummary:       "This typescript file contains 3 lines.",
		ComplexityScore: 1.3,
		LastUpdated:     time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1.3, updated.ComplexityScore)
	assert.NotEmpty(t, updated.AISummary)

	missing, err := store.GetFile(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = store.UpdateFileAnalysis(ctx, "no-such-id", models.FileAnalysisPatch{})
	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestStoreListFilesFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	client := setupTestNeo4j(t)
	defer client.Close()
	store := NewStore(client)

	repoID := setupTestRepository(t, ctx, client)
	defer cleanupTestRepository(t, ctx, client, repoID)

	files, err := store.ListFilesByRepository(ctx, repoID, models.FileFilter{})
	require.NoError(t, err)
	require.Len(t, files, 2)
	// Ordered by path.
	assert.Equal(t, "main.ts", files[0].Path)
	assert.Equal(t, "utils.ts", files[1].Path)

	byLanguage, err := store.ListFilesByRepository(ctx, repoID, models.FileFilter{
		Languages: []string{"TypeScript"},
	})
	require.NoError(t, err)
	assert.Len(t, byLanguage, 2)

	byContent, err := store.ListFilesByRepository(ctx, repoID, models.FileFilter{
		ContainsQuery: "ADD",
	})
	require.NoError(t, err)
	require.Len(t, byContent, 1)
	assert.Equal(t, "utils.ts", byContent[0].Path)

	byPath, err := store.ListFilesByRepository(ctx, repoID, models.FileFilter{
		PathContainsAny: []string{"main"},
	})
	require.NoError(t, err)
	require.Len(t, byPath, 1)
	assert.Equal(t, "main.ts", byPath[0].Path)

	limited, err := store.ListFilesByRepository(ctx, repoID, models.FileFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStoreFunctionsAndIssues(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	client := setupTestNeo4j(t)
	defer client.Close()
	store := NewStore(client)

	repoID := setupTestRepository(t, ctx, client)
	defer cleanupTestRepository(t, ctx, client, repoID)

	files, err := store.ListFilesByRepository(ctx, repoID, models.FileFilter{})
	require.NoError(t, err)
	require.Len(t, files, 2)
	fileID := files[0].ID

	err = store.InsertFunctions(ctx, fileID, []models.Function{
		{Name: "main", Signature: "main()", LineStart: 1, LineEnd: 5},
		{Name: "init", Signature: "init()", LineStart: 7, LineEnd: 9},
	})
	require.NoError(t, err)

	functions, err := store.ListFunctionsByFile(ctx, fileID)
	require.NoError(t, err)
	require.Len(t, functions, 2)
	assert.Equal(t, "main", functions[0].Name)
	assert.Equal(t, fileID, functions[0].FileID)

	across, err := store.ListFunctionsByFiles(ctx, []string{fileID}, 1)
	require.NoError(t, err)
	assert.Len(t, across, 1)

	issue, err := store.CreateIssue(ctx, &models.Issue{
		FileID:      fileID,
		IssueType:   "bug",
		Description: "loop never terminates",
		Severity:    "high",
		LineNumber:  3,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, issue.ID)

	issues, err := store.ListIssuesByFiles(ctx, []string{fileID}, 5)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "loop never terminates", issues[0].Description)

	_, err = store.CreateIssue(ctx, &models.Issue{FileID: "no-such-file", IssueType: "bug", Description: "x", Severity: "low"})
	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestStoreDependencies(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	client := setupTestNeo4j(t)
	defer client.Close()
	store := NewStore(client)

	repoID := setupTestRepository(t, ctx, client)
	defer cleanupTestRepository(t, ctx, client, repoID)

	deps := []models.Dependency{
		{RepoID: repoID, FromFile: "main.ts", ToFile: "utils.ts", DependencyType: models.DepImport},
		{RepoID: repoID, FromFile: "main.ts", ToFile: "config.ts", DependencyType: models.DepImport},
	}
	require.NoError(t, store.InsertDependencies(ctx, repoID, deps))
	// Same batch again is a no-op thanks to MERGE.
	require.NoError(t, store.InsertDependencies(ctx, repoID, deps))

	listed, err := store.ListDependencies(ctx, repoID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "utils.ts", listed[0].ToFile)
	assert.Equal(t, "config.ts", listed[1].ToFile)
}

func TestStoreSearchAnalytics(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	client := setupTestNeo4j(t)
	defer client.Close()
	store := NewStore(client)

	// Analytics rows are standalone; the repository does not have to exist.
	err := store.LogSearchQuery(ctx, models.SearchQueryLog{
		RepoID:       "ghost-repo",
		Query:        "calculate",
		QueryType:    "code",
		ResultsCount: 0,
	})
	require.NoError(t, err)

	_, err = client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, `MATCH (q:SearchQuery {repoId: $repoId}) DETACH DELETE q`,
			map[string]any{"repoId": "ghost-repo"})
		return nil, err
	})
	require.NoError(t, err)
}

func TestRepositoryExists(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	client := setupTestNeo4j(t)
	defer client.Close()
	store := NewStore(client)

	repoID := setupTestRepository(t, ctx, client)
	defer cleanupTestRepository(t, ctx, client, repoID)

	exists, err := store.RepositoryExists(ctx, repoID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.RepositoryExists(ctx, "no-such-repo")
	require.NoError(t, err)
	assert.False(t, exists)
}

// Helper functions for test setup

func setupTestRepository(t *testing.T, ctx context.Context, client *Neo4jClient) string {
	t.Helper()

	repoID := "test-repo-" + t.Name()

	_, err := client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			CREATE (r:Repository {id: $repoId, url: $url, name: $name, status: 'ready', filesCount: 2, functionsCount: 0})
			CREATE (f1:File {id: $file1Id, repoId: $repoId, path: 'main.ts', content: 'import { add } from "./utils"', language: 'typescript', size: 29})
			CREATE (f2:File {id: $file2Id, repoId: $repoId, path: 'utils.ts', content: 'export function add(a, b) { return a + b }', language: 'typescript', size: 42})
			CREATE (r)-[:CONTAINS]->(f1)
			CREATE (r)-[:CONTAINS]->(f2)
		`
		_, err := tx.Run(ctx, query, map[string]any{
			"repoId":  repoID,
			"url":     "https://example.com/test/repo.git",
			"name":    "repo",
			"file1Id": "file1-" + t.Name(),
			"file2Id": "file2-" + t.Name(),
		})
		return nil, err
	})
	require.NoError(t, err)

	return repoID
}

func cleanupTestRepository(t *testing.T, ctx context.Context, client *Neo4jClient, repoID string) {
	t.Helper()

	_, _ = client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (r:Repository {id: $repoId})
			OPTIONAL MATCH (r)-[:CONTAINS]->(f:File)
			OPTIONAL MATCH (f)-[:DECLARES]->(fn:Function)
			OPTIONAL MATCH (f)-[:HAS_ISSUE]->(i:Issue)
			OPTIONAL MATCH (r)-[:TRACKS]->(d:Dependency)
			DETACH DELETE r, f, fn, i, d
		`
		_, err := tx.Run(ctx, query, map[string]any{"repoId": repoID})
		return nil, err
	})
}
