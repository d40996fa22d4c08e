package db

import (
	"context"
	"fmt"

	"github.com/codescope/codescope/internal/models"
	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const functionReturnClause = `
	RETURN fn.id AS id, fn.fileId AS fileId, fn.name AS name,
	       fn.signature AS signature, fn.lineStart AS lineStart,
	       fn.lineEnd AS lineEnd, fn.aiExplanation AS aiExplanation,
	       fn.complexityScore AS complexityScore
`

// InsertFunctions appends a batch of extracted functions to a file. Batches
// accumulate across re-analysis runs; callers wanting replace-on-reanalyze
// semantics would clear existing functions here first.
func (s *Store) InsertFunctions(ctx context.Context, fileID string, functions []models.Function) error {
	if len(functions) == 0 {
		return nil
	}

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (f:File {id: $fileId})
			CREATE (fn:Function {
				id: $id,
				fileId: $fileId,
				name: $name,
				signature: $signature,
				lineStart: $lineStart,
				lineEnd: $lineEnd
			})
			CREATE (f)-[:DECLARES]->(fn)
		`
		for _, fn := range functions {
			_, err := tx.Run(ctx, query, map[string]any{
				"id":        uuid.New().String(),
				"fileId":    fileID,
				"name":      fn.Name,
				"signature": fn.Signature,
				"lineStart": fn.LineStart,
				"lineEnd":   fn.LineEnd,
			})
			if err != nil {
				return nil, err
			}
		}
		return nil, nil
	})

	if err != nil {
		return fmt.Errorf("failed to insert functions: %w", err)
	}
	return nil
}

func (s *Store) ListFunctionsByFile(ctx context.Context, fileID string) ([]models.Function, error) {
	return s.ListFunctionsByFiles(ctx, []string{fileID}, 0)
}

// ListFunctionsByFiles returns functions declared by any of the files,
// ordered by file and start line. A limit <= 0 means no limit.
func (s *Store) ListFunctionsByFiles(ctx context.Context, fileIDs []string, limit int) ([]models.Function, error) {
	query := `
		MATCH (f:File)-[:DECLARES]->(fn:Function)
		WHERE f.id IN $fileIds
	` + functionReturnClause + `
		ORDER BY fn.fileId, fn.lineStart
	`
	params := map[string]any{"fileIds": fileIDs}
	if limit > 0 {
		query += "LIMIT $limit"
		params["limit"] = limit
	}

	result, err := s.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}

		var functions []models.Function
		for records.Next(ctx) {
			functions = append(functions, recordToFunction(records.Record()))
		}
		return functions, records.Err()
	})

	if err != nil {
		return nil, err
	}
	return result.([]models.Function), nil
}

func recordToFunction(record *neo4j.Record) models.Function {
	fn := models.Function{}

	if id, ok := record.Get("id"); ok && id != nil {
		fn.ID = id.(string)
	}
	if fileID, ok := record.Get("fileId"); ok && fileID != nil {
		fn.FileID = fileID.(string)
	}
	if name, ok := record.Get("name"); ok && name != nil {
		fn.Name = name.(string)
	}
	if signature, ok := record.Get("signature"); ok && signature != nil {
		fn.Signature = signature.(string)
	}
	if lineStart, ok := record.Get("lineStart"); ok && lineStart != nil {
		fn.LineStart = int(lineStart.(int64))
	}
	if lineEnd, ok := record.Get("lineEnd"); ok && lineEnd != nil {
		fn.LineEnd = int(lineEnd.(int64))
	}
	if explanation, ok := record.Get("aiExplanation"); ok && explanation != nil {
		fn.AIExplanation = explanation.(string)
	}
	if score, ok := record.Get("complexityScore"); ok && score != nil {
		fn.ComplexityScore = score.(float64)
	}

	return fn
}
