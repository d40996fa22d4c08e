package indexer

import (
	"path"
	"regexp"
	"strings"

	"github.com/codescope/codescope/internal/models"
)

var (
	importRe  = regexp.MustCompile(`(?m)^\s*import\s+(?:[\w{}\s,*$]+\s+from\s+)?['"]([^'"]+)['"]`)
	requireRe = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
)

// ScanDependencies finds import/require statements in javascript and
// typescript sources and records one edge per relative specifier. Bare
// module names (external packages) are skipped; resolved paths are cleaned
// relative to the importing file and may or may not name an ingested file.
func ScanDependencies(repoID, filePath, content, language string) []models.Dependency {
	if language != "javascript" && language != "typescript" {
		return nil
	}

	var deps []models.Dependency
	add := func(specifier string, depType models.DependencyType) {
		if !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../") {
			return
		}
		deps = append(deps, models.Dependency{
			RepoID:         repoID,
			FromFile:       filePath,
			ToFile:         path.Clean(path.Join(path.Dir(filePath), specifier)),
			DependencyType: depType,
		})
	}

	for _, m := range importRe.FindAllStringSubmatch(content, -1) {
		add(m[1], models.DepImport)
	}
	for _, m := range requireRe.FindAllStringSubmatch(content, -1) {
		add(m[1], models.DepRequire)
	}

	return deps
}
