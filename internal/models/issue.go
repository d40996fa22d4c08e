package models

type IssueType string

const (
	IssueBug             IssueType = "bug"
	IssuePerformance     IssueType = "performance"
	IssueSecurity        IssueType = "security"
	IssueStyle           IssueType = "style"
	IssueMaintainability IssueType = "maintainability"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Issue is a recorded problem against a file. Issues are ingested through
// the API and read by question answering; detection is not done here.
type Issue struct {
	ID         string    `json:"id"`
	FileID     string    `json:"fileId"`
	IssueType  IssueType `json:"issueType"`
	Severity   Severity  `json:"severity"`
	Description string   `json:"description"`
	LineNumber int       `json:"lineNumber,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// SearchQueryLog is one analytics row recorded per search call.
type SearchQueryLog struct {
	RepoID       string `json:"repoId"`
	Query        string `json:"query"`
	QueryType    string `json:"queryType"`
	ResultsCount int    `json:"resultsCount"`
}
