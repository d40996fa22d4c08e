package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/codescope/codescope/internal/models"
)

// Store is the record access the analysis service needs. GetFile returns
// (nil, nil) when the file does not exist.
type Store interface {
	GetFile(ctx context.Context, id string) (*models.File, error)
	UpdateFileAnalysis(ctx context.Context, id string, patch models.FileAnalysisPatch) (*models.File, error)
	InsertFunctions(ctx context.Context, fileID string, functions []models.Function) error
}

// Service orchestrates summary, complexity and function extraction for one
// file record and persists the outcome.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// AnalyzeFile loads the file, runs the heuristics over its content and
// persists the enriched record plus a fresh batch of extracted functions.
//
// Re-analysis is additive: every call inserts a new function batch and
// previously extracted functions are left untouched. Summary and complexity
// are deterministic for unchanged content.
func (s *Service) AnalyzeFile(ctx context.Context, fileID string) (*models.File, error) {
	file, err := s.store.GetFile(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load file: %w", err)
	}
	if file == nil {
		return nil, models.NewNotFound("file", fileID)
	}

	patch := models.FileAnalysisPatch{
		AISummary:       Summarize(file.Content, file.Language),
		ComplexityScore: ComplexityScore(file.Content),
		LastUpdated:     s.now().UTC(),
	}

	extracted := ExtractFunctions(file.Content, file.Language)
	functions := make([]models.Function, 0, len(extracted))
	for _, fn := range extracted {
		functions = append(functions, models.Function{
			FileID:    fileID,
			Name:      fn.Name,
			Signature: fn.Signature,
			LineStart: fn.LineStart,
			LineEnd:   fn.LineEnd,
		})
	}

	updated, err := s.store.UpdateFileAnalysis(ctx, fileID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update file: %w", err)
	}

	if err := s.store.InsertFunctions(ctx, fileID, functions); err != nil {
		return nil, fmt.Errorf("failed to insert functions: %w", err)
	}

	return updated, nil
}
