package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/codescope/codescope/internal/analysis"
	"github.com/codescope/codescope/internal/models"
)

// Pipeline walks a working tree and turns source files into analyzed file
// records, extracted functions and scanned dependency edges. It does not
// persist anything; the caller hands the result to a db.Writer.
type Pipeline struct {
	now func() time.Time
}

func NewPipeline() *Pipeline {
	return &Pipeline{now: time.Now}
}

func (p *Pipeline) IndexDirectory(ctx context.Context, dirPath, repoID string) (*models.IndexResult, error) {
	result := &models.IndexResult{
		RepoID:    repoID,
		Functions: make(map[string][]models.Function),
	}

	// Walk directory and find supported files
	var files []string
	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden directories and common non-code directories
		if info.IsDir() {
			name := info.Name()
			if name == ".git" || name == "node_modules" || name == "vendor" ||
				name == "__pycache__" || name == ".venv" || name == "dist" ||
				name == "build" || name == "target" {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(dirPath, path)
		if models.DetectLanguage(path) != "" {
			files = append(files, relPath)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	// Process files concurrently (limited concurrency)
	var wg sync.WaitGroup
	sem := make(chan struct{}, 4) // Max 4 concurrent
	var mu sync.Mutex

	for _, relPath := range files {
		wg.Add(1)
		go func(relPath string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			fullPath := filepath.Join(dirPath, relPath)
			file, functions, deps, err := p.processFile(fullPath, relPath, repoID)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", relPath, err))
				return
			}

			result.FilesProcessed++
			result.Files = append(result.Files, file)
			result.Functions[file.Path] = functions
			result.FunctionsFound += len(functions)
			result.Dependencies = append(result.Dependencies, deps...)
		}(relPath)
	}

	wg.Wait()

	return result, nil
}

func (p *Pipeline) processFile(fullPath, relPath, repoID string) (*models.File, []models.Function, []models.Dependency, error) {
	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	lang := models.DetectLanguage(relPath)
	text := string(content)
	now := p.now().UTC()

	file := &models.File{
		RepoID:          repoID,
		Path:            filepath.ToSlash(relPath),
		Content:         text,
		Language:        lang,
		Size:            int64(len(content)),
		AISummary:       analysis.Summarize(text, lang),
		ComplexityScore: analysis.ComplexityScore(text),
		LastUpdated:     now,
	}

	var functions []models.Function
	for _, fn := range analysis.ExtractFunctions(text, lang) {
		functions = append(functions, models.Function{
			Name:      fn.Name,
			Signature: fn.Signature,
			LineStart: fn.LineStart,
			LineEnd:   fn.LineEnd,
		})
	}

	deps := ScanDependencies(repoID, file.Path, text, lang)

	return file, functions, deps, nil
}
