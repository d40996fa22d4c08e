package db

import (
	"context"
	"fmt"

	"github.com/codescope/codescope/internal/models"
	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// CreateIssue records an issue against a file.
func (s *Store) CreateIssue(ctx context.Context, issue *models.Issue) (*models.Issue, error) {
	issue.ID = uuid.New().String()

	result, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (f:File {id: $fileId})
			CREATE (i:Issue {
				id: $id,
				fileId: $fileId,
				issueType: $issueType,
				severity: $severity,
				description: $description,
				lineNumber: $lineNumber,
				suggestion: $suggestion
			})
			CREATE (f)-[:HAS_ISSUE]->(i)
			RETURN i.id AS id
		`
		records, err := tx.Run(ctx, query, map[string]any{
			"id":          issue.ID,
			"fileId":      issue.FileID,
			"issueType":   string(issue.IssueType),
			"severity":    string(issue.Severity),
			"description": issue.Description,
			"lineNumber":  issue.LineNumber,
			"suggestion":  issue.Suggestion,
		})
		if err != nil {
			return nil, err
		}
		if records.Next(ctx) {
			return issue, nil
		}
		return nil, records.Err()
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	if result == nil {
		return nil, models.NewNotFound("file", issue.FileID)
	}
	return result.(*models.Issue), nil
}

// ListIssuesByFiles returns issues recorded against any of the files. A
// limit <= 0 means no limit.
func (s *Store) ListIssuesByFiles(ctx context.Context, fileIDs []string, limit int) ([]models.Issue, error) {
	query := `
		MATCH (f:File)-[:HAS_ISSUE]->(i:Issue)
		WHERE f.id IN $fileIds
		RETURN i.id AS id, i.fileId AS fileId, i.issueType AS issueType,
		       i.severity AS severity, i.description AS description,
		       i.lineNumber AS lineNumber, i.suggestion AS suggestion
		ORDER BY i.fileId, i.lineNumber
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

		var issues []models.Issue
		for records.Next(ctx) {
			issues = append(issues, recordToIssue(records.Record()))
		}
		return issues, records.Err()
	})

	if err != nil {
		return nil, err
	}
	return result.([]models.Issue), nil
}

func recordToIssue(record *neo4j.Record) models.Issue {
	issue := models.Issue{}

	if id, ok := record.Get("id"); ok && id != nil {
		issue.ID = id.(string)
	}
	if fileID, ok := record.Get("fileId"); ok && fileID != nil {
		issue.FileID = fileID.(string)
	}
	if issueType, ok := record.Get("issueType"); ok && issueType != nil {
		issue.IssueType = models.IssueType(issueType.(string))
	}
	if severity, ok := record.Get("severity"); ok && severity != nil {
		issue.Severity = models.Severity(severity.(string))
	}
	if description, ok := record.Get("description"); ok && description != nil {
		issue.Description = description.(string)
	}
	if lineNumber, ok := record.Get("lineNumber"); ok && lineNumber != nil {
		issue.LineNumber = int(lineNumber.(int64))
	}
	if suggestion, ok := record.Get("suggestion"); ok && suggestion != nil {
		issue.Suggestion = suggestion.(string)
	}

	return issue
}
