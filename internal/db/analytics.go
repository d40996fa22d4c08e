package db

import (
	"context"
	"fmt"
	"time"

	"github.com/codescope/codescope/internal/models"
	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// LogSearchQuery records one analytics row per search call. The node is
// standalone on purpose: the row is written even when the repository id
// does not reference an existing repository.
func (s *Store) LogSearchQuery(ctx context.Context, entry models.SearchQueryLog) error {
	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			CREATE (q:SearchQuery {
				id: $id,
				repoId: $repoId,
				query: $query,
				queryType: $queryType,
				resultsCount: $resultsCount,
				createdAt: $createdAt
			})
		`
		_, err := tx.Run(ctx, query, map[string]any{
			"id":           uuid.New().String(),
			"repoId":       entry.RepoID,
			"query":        entry.Query,
			"queryType":    entry.QueryType,
			"resultsCount": entry.ResultsCount,
			"createdAt":    time.Now().UTC(),
		})
		return nil, err
	})

	if err != nil {
		return fmt.Errorf("failed to log search query: %w", err)
	}
	return nil
}
