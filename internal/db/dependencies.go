package db

import (
	"context"
	"fmt"
	"time"

	"github.com/codescope/codescope/internal/models"
	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// InsertDependencies records a batch of dependency edges for a repository.
// Edges are path-keyed strings; no attempt is made to resolve them against
// stored file records, and duplicate edges are collapsed.
func (s *Store) InsertDependencies(ctx context.Context, repoID string, deps []models.Dependency) error {
	if len(deps) == 0 {
		return nil
	}

	now := time.Now().UTC()

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (r:Repository {id: $repoId})
			MERGE (d:Dependency {
				repoId: $repoId,
				fromFile: $fromFile,
				toFile: $toFile,
				dependencyType: $dependencyType
			})
			ON CREATE SET d.id = $id, d.createdAt = $createdAt, d.seq = $seq
			MERGE (r)-[:TRACKS]->(d)
		`
		for i, dep := range deps {
			_, err := tx.Run(ctx, query, map[string]any{
				"id":             uuid.New().String(),
				"repoId":         repoID,
				"fromFile":       dep.FromFile,
				"toFile":         dep.ToFile,
				"dependencyType": string(dep.DependencyType),
				"createdAt":      now,
				"seq":            i,
			})
			if err != nil {
				return nil, err
			}
		}
		return nil, nil
	})

	if err != nil {
		return fmt.Errorf("failed to insert dependencies: %w", err)
	}
	return nil
}

// ListDependencies returns every dependency edge of the repository in
// insertion order.
func (s *Store) ListDependencies(ctx context.Context, repoID string) ([]models.Dependency, error) {
	result, err := s.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (r:Repository {id: $repoId})-[:TRACKS]->(d:Dependency)
			RETURN d.repoId AS repoId, d.fromFile AS fromFile,
			       d.toFile AS toFile, d.dependencyType AS dependencyType
			ORDER BY d.createdAt, d.seq
		`
		records, err := tx.Run(ctx, query, map[string]any{"repoId": repoID})
		if err != nil {
			return nil, err
		}

		var deps []models.Dependency
		for records.Next(ctx) {
			deps = append(deps, recordToDependency(records.Record()))
		}
		return deps, records.Err()
	})

	if err != nil {
		return nil, err
	}
	return result.([]models.Dependency), nil
}

func recordToDependency(record *neo4j.Record) models.Dependency {
	dep := models.Dependency{}

	if repoID, ok := record.Get("repoId"); ok && repoID != nil {
		dep.RepoID = repoID.(string)
	}
	if fromFile, ok := record.Get("fromFile"); ok && fromFile != nil {
		dep.FromFile = fromFile.(string)
	}
	if toFile, ok := record.Get("toFile"); ok && toFile != nil {
		dep.ToFile = toFile.(string)
	}
	if depType, ok := record.Get("dependencyType"); ok && depType != nil {
		dep.DependencyType = models.DependencyType(depType.(string))
	}

	return dep
}
