package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codescope/codescope/internal/models"
	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const fileReturnClause = `
	RETURN f.id AS id, f.repoId AS repoId, f.path AS path, f.content AS content,
	       f.language AS language, f.size AS size, f.aiSummary AS aiSummary,
	       f.complexityScore AS complexityScore, f.lastUpdated AS lastUpdated,
	       f.createdAt AS createdAt
`

// CreateFile upserts a file record keyed by (repoId, path). Re-ingesting an
// existing path replaces content but keeps the original id and createdAt.
func (s *Store) CreateFile(ctx context.Context, file *models.File) (*models.File, error) {
	now := time.Now().UTC()

	result, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (r:Repository {id: $repoId})
			MERGE (f:File {repoId: $repoId, path: $path})
			ON CREATE SET f.id = $id, f.createdAt = $now
			SET f.content = $content,
			    f.language = $language,
			    f.size = $size,
			    f.lastUpdated = $now
			MERGE (r)-[:CONTAINS]->(f)
		` + fileReturnClause
		records, err := tx.Run(ctx, query, map[string]any{
			"id":       uuid.New().String(),
			"repoId":   file.RepoID,
			"path":     file.Path,
			"content":  file.Content,
			"language": file.Language,
			"size":     file.Size,
			"now":      now,
		})
		if err != nil {
			return nil, err
		}
		if records.Next(ctx) {
			return recordToFile(records.Record()), nil
		}
		return nil, records.Err()
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	if result == nil {
		return nil, models.NewNotFound("repository", file.RepoID)
	}
	return result.(*models.File), nil
}

// GetFile returns (nil, nil) when no file with the id exists.
func (s *Store) GetFile(ctx context.Context, id string) (*models.File, error) {
	result, err := s.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `MATCH (f:File {id: $id})` + fileReturnClause
		records, err := tx.Run(ctx, query, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		if records.Next(ctx) {
			return recordToFile(records.Record()), nil
		}
		return nil, records.Err()
	})

	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.(*models.File), nil
}

// UpdateFileAnalysis applies the patch produced by file analysis and
// returns the updated record.
func (s *Store) UpdateFileAnalysis(ctx context.Context, id string, patch models.FileAnalysisPatch) (*models.File, error) {
	result, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (f:File {id: $id})
			SET f.aiSummary = $aiSummary,
			    f.complexityScore = $complexityScore,
			    f.lastUpdated = $lastUpdated
		` + fileReturnClause
		records, err := tx.Run(ctx, query, map[string]any{
			"id":              id,
			"aiSummary":       patch.AISummary,
			"complexityScore": patch.ComplexityScore,
			"lastUpdated":     patch.LastUpdated,
		})
		if err != nil {
			return nil, err
		}
		if records.Next(ctx) {
			return recordToFile(records.Record()), nil
		}
		return nil, records.Err()
	})

	if err != nil {
		return nil, fmt.Errorf("failed to update file analysis: %w", err)
	}
	if result == nil {
		return nil, models.NewNotFound("file", id)
	}
	return result.(*models.File), nil
}

// ListFilesByRepository returns files matching the filter, ordered by path.
// All filter matching is case-insensitive.
func (s *Store) ListFilesByRepository(ctx context.Context, repoID string, filter models.FileFilter) ([]*models.File, error) {
	query, params := buildFileQuery(repoID, filter)

	result, err := s.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}

		var files []*models.File
		for records.Next(ctx) {
			files = append(files, recordToFile(records.Record()))
		}
		return files, records.Err()
	})

	if err != nil {
		return nil, err
	}
	return result.([]*models.File), nil
}

func buildFileQuery(repoID string, filter models.FileFilter) (string, map[string]any) {
	params := map[string]any{"repoId": repoID}
	var conditions []string

	if len(filter.Languages) > 0 {
		lowered := make([]string, len(filter.Languages))
		for i, lang := range filter.Languages {
			lowered[i] = strings.ToLower(lang)
		}
		params["languages"] = lowered
		conditions = append(conditions, `toLower(coalesce(f.language, '')) IN $languages`)
	}
	if filter.ContainsQuery != "" {
		params["query"] = strings.ToLower(filter.ContainsQuery)
		conditions = append(conditions,
			`(toLower(f.path) CONTAINS $query OR toLower(f.content) CONTAINS $query)`)
	}
	if len(filter.AnyKeyword) > 0 {
		params["keywords"] = lowerAll(filter.AnyKeyword)
		conditions = append(conditions,
			`any(kw IN $keywords WHERE toLower(f.path) CONTAINS kw
				OR toLower(f.content) CONTAINS kw
				OR toLower(coalesce(f.aiSummary, '')) CONTAINS kw)`)
	}
	if len(filter.PathContainsAny) > 0 {
		params["paths"] = lowerAll(filter.PathContainsAny)
		conditions = append(conditions,
			`any(p IN $paths WHERE toLower(f.path) CONTAINS p)`)
	}

	query := `MATCH (r:Repository {id: $repoId})-[:CONTAINS]->(f:File)`
	if len(conditions) > 0 {
		query += "\nWHERE " + strings.Join(conditions, "\nAND ")
	}
	query += fileReturnClause
	query += "ORDER BY f.path"
	if filter.Limit > 0 {
		params["limit"] = filter.Limit
		query += "\nLIMIT $limit"
	}

	return query, params
}

func lowerAll(values []string) []string {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}
	return lowered
}

func recordToFile(record *neo4j.Record) *models.File {
	file := &models.File{}

	if id, ok := record.Get("id"); ok && id != nil {
		file.ID = id.(string)
	}
	if repoID, ok := record.Get("repoId"); ok && repoID != nil {
		file.RepoID = repoID.(string)
	}
	if path, ok := record.Get("path"); ok && path != nil {
		file.Path = path.(string)
	}
	if content, ok := record.Get("content"); ok && content != nil {
		file.Content = content.(string)
	}
	if language, ok := record.Get("language"); ok && language != nil {
		file.Language = language.(string)
	}
	if size, ok := record.Get("size"); ok && size != nil {
		file.Size = size.(int64)
	}
	if summary, ok := record.Get("aiSummary"); ok && summary != nil {
		file.AISummary = summary.(string)
	}
	if score, ok := record.Get("complexityScore"); ok && score != nil {
		file.ComplexityScore = score.(float64)
	}
	if lastUpdated, ok := record.Get("lastUpdated"); ok && lastUpdated != nil {
		if t, ok := lastUpdated.(time.Time); ok {
			file.LastUpdated = t
		}
	}
	if createdAt, ok := record.Get("createdAt"); ok && createdAt != nil {
		if t, ok := createdAt.(time.Time); ok {
			file.CreatedAt = t
		}
	}

	return file
}
