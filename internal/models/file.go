package models

import "time"

type File struct {
	ID              string    `json:"id"`
	RepoID          string    `json:"repoId"`
	Path            string    `json:"path"`
	Content         string    `json:"content,omitempty"`
	Language        string    `json:"language,omitempty"`
	Size            int64     `json:"size"`
	AISummary       string    `json:"aiSummary,omitempty"`
	ComplexityScore float64   `json:"complexityScore,omitempty"`
	LastUpdated     time.Time `json:"lastUpdated"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FileAnalysisPatch is the mutation produced by file analysis. The store
// applies it; analysis itself never mutates a File in place.
type FileAnalysisPatch struct {
	AISummary       string
	ComplexityScore float64
	LastUpdated     time.Time
}

// FileFilter narrows ListFilesByRepository. The zero value matches every
// file in the repository.
type FileFilter struct {
	// Languages matches case-insensitively against File.Language.
	Languages []string
	// ContainsQuery matches case-insensitively against path or content.
	ContainsQuery string
	// AnyKeyword matches case-insensitively against path, content or
	// aiSummary.
	AnyKeyword []string
	// PathContainsAny matches case-insensitively against path only.
	PathContainsAny []string
	Limit           int
}

// Language detection by extension
var LanguageByExtension = map[string]string{
	".go":   "go",
	".py":   "python",
	".ts":   "typescript",
	".tsx":  "typescript",
	".js":   "javascript",
	".jsx":  "javascript",
	".java": "java",
	".kt":   "kotlin",
	".kts":  "kotlin",
}

func DetectLanguage(path string) string {
	for ext, lang := range LanguageByExtension {
		if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return lang
		}
	}
	return ""
}
