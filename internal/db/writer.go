package db

import (
	"context"
	"fmt"

	"github.com/codescope/codescope/internal/models"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Writer persists the outcome of an ingestion run.
type Writer struct {
	store *Store
}

func NewWriter(store *Store) *Writer {
	return &Writer{store: store}
}

// WriteIndexResult writes files, their extracted functions and the scanned
// dependency edges, then marks the repository ready.
func (w *Writer) WriteIndexResult(ctx context.Context, result *models.IndexResult) error {
	for _, file := range result.Files {
		stored, err := w.store.CreateFile(ctx, file)
		if err != nil {
			return fmt.Errorf("failed to write file %s: %w", file.Path, err)
		}

		patch := models.FileAnalysisPatch{
			AISummary:       file.AISummary,
			ComplexityScore: file.ComplexityScore,
			LastUpdated:     file.LastUpdated,
		}
		if _, err := w.store.UpdateFileAnalysis(ctx, stored.ID, patch); err != nil {
			return fmt.Errorf("failed to write analysis for %s: %w", file.Path, err)
		}

		if err := w.store.InsertFunctions(ctx, stored.ID, result.Functions[file.Path]); err != nil {
			return fmt.Errorf("failed to write functions for %s: %w", file.Path, err)
		}
	}

	if err := w.store.InsertDependencies(ctx, result.RepoID, result.Dependencies); err != nil {
		return fmt.Errorf("failed to write dependencies: %w", err)
	}

	return w.UpdateRepositoryStats(ctx, result.RepoID, len(result.Files), result.FunctionsFound)
}

func (w *Writer) UpdateRepositoryStats(ctx context.Context, repoID string, filesCount, functionsCount int) error {
	_, err := w.store.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (r:Repository {id: $id})
			SET r.filesCount = $filesCount,
			    r.functionsCount = $functionsCount,
			    r.status = 'ready'
		`
		_, err := tx.Run(ctx, query, map[string]any{
			"id":             repoID,
			"filesCount":     filesCount,
			"functionsCount": functionsCount,
		})
		return nil, err
	})

	return err
}

// ClearRepository removes all indexed data for a repository, keeping the
// repository node itself.
func (w *Writer) ClearRepository(ctx context.Context, repoID string) error {
	_, err := w.store.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (r:Repository {id: $id})
			OPTIONAL MATCH (r)-[:CONTAINS]->(f:File)
			OPTIONAL MATCH (f)-[:DECLARES|HAS_ISSUE]->(e)
			OPTIONAL MATCH (r)-[:TRACKS]->(d:Dependency)
			DETACH DELETE e, d, f
		`
		_, err := tx.Run(ctx, query, map[string]any{"id": repoID})
		return nil, err
	})

	return err
}
