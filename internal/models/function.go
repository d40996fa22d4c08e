package models

// Function is one extracted function definition. LineStart/LineEnd are
// 1-based and inclusive; LineEnd >= LineStart always.
type Function struct {
	ID              string  `json:"id"`
	FileID          string  `json:"fileId"`
	Name            string  `json:"name"`
	Signature       string  `json:"signature"`
	LineStart       int     `json:"lineStart"`
	LineEnd         int     `json:"lineEnd"`
	AIExplanation   string  `json:"aiExplanation,omitempty"`
	ComplexityScore float64 `json:"complexityScore,omitempty"`
}
