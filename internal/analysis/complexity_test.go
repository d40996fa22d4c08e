package analysis

import "testing"

func TestMaxBraceDepth(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{"empty", "", 0},
		{"no braces", "const x = 1;", 0},
		{"single pair", "function f() { return 1; }", 1},
		{"nested", "function f() { if (x) { while (y) { z(); } } }", 3},
		{"unbalanced open", "{ { {", 3},
		{"excess closers", "} } { }", 1},
		{"closers only", "} } }", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxBraceDepth(tt.content); got != tt.expected {
				t.Errorf("MaxBraceDepth(%q) = %d, want %d", tt.content, got, tt.expected)
			}
		})
	}
}

func TestComplexityScoreBaseline(t *testing.T) {
	if got := ComplexityScore("// Just a comment"); got != 1 {
		t.Errorf("Expected score 1 for a plain comment, got %v", got)
	}
	if got := ComplexityScore(""); got != 1 {
		t.Errorf("Expected score 1 for empty content, got %v", got)
	}
}

func TestComplexityScoreWeights(t *testing.T) {
	// 1 base + 1 control flow + 0.5*2 depth + 0.3*1 named function
	content := "function hello() {\n  if (x) {\n  }\n}"
	if got := ComplexityScore(content); got != 3.3 {
		t.Errorf("Expected 3.3, got %v", got)
	}
}

func TestComplexityScoreCountsPatternsAdditively(t *testing.T) {
	// Two patterns on one line contribute 2.
	content := "if (a) for (;;) x();"
	if got := ComplexityScore(content); got != 3 {
		t.Errorf("Expected 3, got %v", got)
	}
}

func TestComplexityScoreDeterministic(t *testing.T) {
	content := "function a() {\n  while (x) { catch (e) {} }\n}"
	first := ComplexityScore(content)
	for i := 0; i < 5; i++ {
		if got := ComplexityScore(content); got != first {
			t.Fatalf("Score changed between runs: %v vs %v", got, first)
		}
	}
}

func TestComplexityScoreNeverBelowOne(t *testing.T) {
	contents := []string{"", "}", "}}}}", "hello world", "\n\n\n"}
	for _, content := range contents {
		if got := ComplexityScore(content); got < 1 {
			t.Errorf("ComplexityScore(%q) = %v, want >= 1", content, got)
		}
	}
}
