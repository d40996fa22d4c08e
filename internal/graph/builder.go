package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/codescope/codescope/internal/models"
)

// Store is the record access the dependency graph builder needs.
type Store interface {
	ListDependencies(ctx context.Context, repoID string) ([]models.Dependency, error)
	ListFilesByRepository(ctx context.Context, repoID string, filter models.FileFilter) ([]*models.File, error)
}

type Builder struct {
	store Store
}

func NewBuilder(store Store) *Builder {
	return &Builder{store: store}
}

// Build assembles the dependency graph for a repository. The node set is
// exactly the distinct file paths touched by any edge; files with no edges
// are excluded even when a stored record exists. Edge paths are plain
// strings and may reference files that were never ingested.
func (b *Builder) Build(ctx context.Context, repoID string) (*models.DependencyGraph, error) {
	deps, err := b.store.ListDependencies(ctx, repoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dependencies: %w", err)
	}

	files, err := b.store.ListFilesByRepository(ctx, repoID, models.FileFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	languageByPath := make(map[string]string, len(files))
	for _, f := range files {
		languageByPath[f.Path] = f.Language
	}

	graph := &models.DependencyGraph{
		Nodes: []models.GraphNode{},
		Edges: []models.GraphEdge{},
	}

	seen := make(map[string]bool)
	addNode := func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		graph.Nodes = append(graph.Nodes, models.GraphNode{
			ID:    path,
			Label: basename(path),
			Type:  classifyFile(path, languageByPath),
		})
	}

	for _, dep := range deps {
		addNode(dep.FromFile)
		addNode(dep.ToFile)
		graph.Edges = append(graph.Edges, models.GraphEdge{
			From: dep.FromFile,
			To:   dep.ToFile,
			Type: string(dep.DependencyType),
		})
	}

	return graph, nil
}

// classifyFile assigns a coarse node type by evaluating rules in strict
// priority order: extension, basename markers, then stored language.
func classifyFile(path string, languageByPath map[string]string) string {
	name := strings.ToLower(basename(path))

	switch extension(name) {
	case "json", "yaml", "yml":
		return "config"
	case "md", "txt", "rst":
		return "documentation"
	}

	switch {
	case strings.Contains(name, "test") || strings.Contains(name, "spec"):
		return "test"
	case strings.Contains(name, "config") || strings.Contains(name, "setting"):
		return "config"
	case strings.Contains(name, "util") || strings.Contains(name, "helper") || strings.Contains(name, "lib"):
		return "utility"
	case strings.Contains(name, "main") || strings.Contains(name, "index") || strings.Contains(name, "app"):
		return "entry"
	}

	if language := languageByPath[path]; language != "" {
		return strings.ToLower(language)
	}
	return "file"
}

func basename(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func extension(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return ""
}
