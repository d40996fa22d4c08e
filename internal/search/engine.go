package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/codescope/codescope/internal/models"
)

const maxResults = 50

// Result is one line-level search hit.
type Result struct {
	FilePath       string  `json:"filePath"`
	LineNumber     int     `json:"lineNumber"`
	ContentSnippet string  `json:"contentSnippet"`
	RelevanceScore float64 `json:"relevanceScore"`
	AIContext      string  `json:"aiContext,omitempty"`
}

// Store is the record access the search engine needs.
type Store interface {
	ListFilesByRepository(ctx context.Context, repoID string, filter models.FileFilter) ([]*models.File, error)
	LogSearchQuery(ctx context.Context, entry models.SearchQueryLog) error
}

type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Search scans every candidate file's content line by line and returns
// ranked hits. Candidate filtering (language and path/content contains) is
// case-insensitive; line scoring additionally rewards exact case and prefix
// matches. The analytics row is written unconditionally, with the
// post-truncation result count, even when the repository does not exist.
func (e *Engine) Search(ctx context.Context, repoID, query string, fileTypes []string, includeAIAnalysis bool) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &models.ValidationError{Field: "query", Reason: "must not be empty"}
	}

	files, err := e.store.ListFilesByRepository(ctx, repoID, models.FileFilter{
		Languages:     fileTypes,
		ContainsQuery: query,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var results []Result
	for _, file := range files {
		results = append(results, scanFile(file, query, includeAIAnalysis)...)
	}

	// Stable keeps same-score hits in file/line order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	if err := e.store.LogSearchQuery(ctx, models.SearchQueryLog{
		RepoID:       repoID,
		Query:        query,
		QueryType:    "code",
		ResultsCount: len(results),
	}); err != nil {
		return nil, fmt.Errorf("failed to log search query: %w", err)
	}

	return results, nil
}

func scanFile(file *models.File, query string, includeAI bool) []Result {
	lines := strings.Split(file.Content, "\n")
	lowerQuery := strings.ToLower(query)

	var results []Result
	for i, line := range lines {
		lowerLine := strings.ToLower(line)
		if !strings.Contains(lowerLine, lowerQuery) {
			continue
		}

		score := 0.5
		if strings.Contains(line, query) {
			score += 0.3
		}
		if strings.HasPrefix(strings.TrimSpace(lowerLine), lowerQuery) {
			score += 0.2
		}
		if score > 1.0 {
			score = 1.0
		}

		result := Result{
			FilePath:       file.Path,
			LineNumber:     i + 1,
			ContentSnippet: snippet(lines, i),
			RelevanceScore: score,
		}
		if includeAI {
			result.AIContext = aiContext(file, i+1)
		}
		results = append(results, result)
	}
	return results
}

// snippet returns the matched line with one line of context on each side,
// clamped to file bounds.
func snippet(lines []string, index int) string {
	start := index - 1
	if start < 0 {
		start = 0
	}
	end := index + 2
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}

func aiContext(file *models.File, lineNumber int) string {
	if file.AISummary != "" {
		return "From file analysis: " + file.AISummary
	}
	language := file.Language
	if language == "" {
		language = "unknown"
	}
	return fmt.Sprintf("Match found in %s file at line %d", language, lineNumber)
}
