package qa

import (
	"context"
	"fmt"
	"strings"

	"github.com/codescope/codescope/internal/models"
)

const (
	maxContextFiles = 10
	maxFunctions    = 10
	maxKeyFunctions = 5
	maxIssues       = 5
	maxSuggestions  = 5
	maxRelatedFiles = 5
)

// Answer is the structured response to a free-text question.
type Answer struct {
	Summary         string   `json:"summary"`
	KeyFunctions    []string `json:"keyFunctions"`
	PotentialIssues []string `json:"potentialIssues"`
	Suggestions     []string `json:"suggestions"`
	RelatedFiles    []string `json:"relatedFiles"`
}

// Store is the record access the question answering engine needs.
type Store interface {
	RepositoryExists(ctx context.Context, id string) (bool, error)
	ListFilesByRepository(ctx context.Context, repoID string, filter models.FileFilter) ([]*models.File, error)
	ListFunctionsByFiles(ctx context.Context, fileIDs []string, limit int) ([]models.Function, error)
	ListIssuesByFiles(ctx context.Context, fileIDs []string, limit int) ([]models.Issue, error)
}

type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Ask locates files, functions and recorded issues relevant to the question
// via keyword matching and synthesizes a templated answer. Context files,
// when given, override keyword-based file selection.
func (e *Engine) Ask(ctx context.Context, repoID, question string, contextFiles []string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, &models.ValidationError{Field: "question", Reason: "must not be empty"}
	}

	exists, err := e.store.RepositoryExists(ctx, repoID)
	if err != nil {
		return nil, fmt.Errorf("failed to check repository: %w", err)
	}
	if !exists {
		return nil, models.NewNotFound("repository", repoID)
	}

	keywords := extractKeywords(question)

	files, err := e.selectFiles(ctx, repoID, keywords, contextFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}

	if len(files) == 0 {
		return &Answer{
			Summary: fmt.Sprintf("No relevant code files found for the question: %q. "+
				"The repository may not contain code related to your query.", question),
			KeyFunctions:    []string{},
			PotentialIssues: []string{},
			Suggestions: []string{
				"Try asking about specific features, files, or functionality in the repository",
				"Provide context files to narrow down the scope of the question",
			},
			RelatedFiles: []string{},
		}, nil
	}

	fileIDs := make([]string, len(files))
	for i, f := range files {
		fileIDs[i] = f.ID
	}

	functions, err := e.store.ListFunctionsByFiles(ctx, fileIDs, maxFunctions)
	if err != nil {
		return nil, fmt.Errorf("failed to list functions: %w", err)
	}
	keyFunctions := selectKeyFunctions(functions, keywords)

	issues, err := e.store.ListIssuesByFiles(ctx, fileIDs, maxIssues)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	potentialIssues := make([]string, 0, len(issues))
	for _, issue := range issues {
		potentialIssues = append(potentialIssues, fmt.Sprintf("%s: %s", issue.IssueType, issue.Description))
	}

	related := make([]string, 0, maxRelatedFiles)
	for _, f := range files {
		if len(related) == maxRelatedFiles {
			break
		}
		related = append(related, f.Path)
	}

	return &Answer{
		Summary:         buildSummary(question, files, keyFunctions, potentialIssues),
		KeyFunctions:    keyFunctions,
		PotentialIssues: potentialIssues,
		Suggestions:     buildSuggestions(question, files, potentialIssues),
		RelatedFiles:    related,
	}, nil
}

// selectFiles applies the three-tier selection policy: explicit context
// files first, then keyword matching, then the first files of the
// repository with no filter.
func (e *Engine) selectFiles(ctx context.Context, repoID string, keywords, contextFiles []string) ([]*models.File, error) {
	filter := models.FileFilter{Limit: maxContextFiles}
	switch {
	case len(contextFiles) > 0:
		filter.PathContainsAny = contextFiles
	case len(keywords) > 0:
		filter.AnyKeyword = keywords
	}
	return e.store.ListFilesByRepository(ctx, repoID, filter)
}

// selectKeyFunctions orders keyword-matching functions first and returns up
// to five names.
func selectKeyFunctions(functions []models.Function, keywords []string) []string {
	var matching, rest []string
	for _, fn := range functions {
		haystack := strings.ToLower(fn.Name + " " + fn.Signature + " " + fn.AIExplanation)
		matched := false
		for _, kw := range keywords {
			if strings.Contains(haystack, kw) {
				matched = true
				break
			}
		}
		if matched {
			matching = append(matching, fn.Name)
		} else {
			rest = append(rest, fn.Name)
		}
	}

	names := append(matching, rest...)
	if len(names) > maxKeyFunctions {
		names = names[:maxKeyFunctions]
	}
	return names
}

func buildSummary(question string, files []*models.File, keyFunctions, issues []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your question %q, I analyzed %d relevant files in the repository.", question, len(files))

	if len(keyFunctions) > 0 {
		fmt.Fprintf(&b, " Found %d related functions that may be relevant.", len(keyFunctions))
	}
	if len(issues) > 0 {
		fmt.Fprintf(&b, " There are %d recorded issues in these files.", len(issues))
	}
	b.WriteString(" Review the key functions and related files for details.")

	var languages []string
	seen := make(map[string]bool)
	for _, f := range files {
		if f.Language != "" && !seen[f.Language] {
			seen[f.Language] = true
			languages = append(languages, f.Language)
		}
	}
	if len(languages) > 0 {
		fmt.Fprintf(&b, " The code involved is written in %s.", strings.Join(languages, ", "))
	}

	return b.String()
}

// suggestionFamilies map question keywords to fixed advice strings.
var suggestionFamilies = []struct {
	triggers    []string
	suggestions []string
}{
	{
		triggers: []string{"performance", "slow", "optimize"},
		suggestions: []string{
			"Profile the code to identify performance bottlenecks",
			"Consider caching results of expensive computations",
		},
	},
	{
		triggers: []string{"error", "bug", "issue"},
		suggestions: []string{
			"Add error handling around external calls and edge cases",
			"Write regression tests that reproduce the reported behavior",
		},
	},
	{
		triggers: []string{"security", "secure", "vulnerability"},
		suggestions: []string{
			"Validate and sanitize all user-supplied input",
			"Review authentication and authorization checks in the affected code paths",
		},
	},
}

func buildSuggestions(question string, files []*models.File, issues []string) []string {
	lowerQuestion := strings.ToLower(question)

	var suggestions []string
	for _, family := range suggestionFamilies {
		for _, trigger := range family.triggers {
			if strings.Contains(lowerQuestion, trigger) {
				suggestions = append(suggestions, family.suggestions...)
				break
			}
		}
	}

	if len(issues) > 0 {
		suggestions = append(suggestions,
			"Address the recorded issues in the related files",
			"Prioritize fixes by issue severity",
		)
	}

	for _, f := range files {
		if f.AISummary == "" {
			suggestions = append(suggestions, "Run file analysis to generate summaries for unanalyzed files")
			break
		}
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions,
			"Explore the related files to understand the overall structure",
			"Ask a more specific question about a particular file or function",
		)
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
