package db

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Store is the concrete record store backing the analysis, search, question
// answering and graph packages. Each engine declares the narrow interface
// it needs; *Store satisfies all of them.
type Store struct {
	client *Neo4jClient
}

func NewStore(client *Neo4jClient) *Store {
	return &Store{client: client}
}

func (s *Store) RepositoryExists(ctx context.Context, id string) (bool, error) {
	result, err := s.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `MATCH (r:Repository {id: $id}) RETURN count(r) AS n`
		records, err := tx.Run(ctx, query, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		if records.Next(ctx) {
			n, _ := records.Record().Get("n")
			return n.(int64) > 0, nil
		}
		return false, records.Err()
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}
