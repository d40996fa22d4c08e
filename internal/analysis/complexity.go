package analysis

import (
	"math"
	"regexp"
	"strings"
)

// Control-flow patterns counted by the complexity heuristic. Literal
// substring matches, counted independently and additively.
var controlFlowPatterns = []string{"if (", "for (", "while (", "switch (", "catch ("}

var namedFunctionPattern = regexp.MustCompile(`function\s+\w+`)

// MaxBraceDepth walks content left to right and returns the maximum nesting
// depth of {/} pairs ever observed. Unbalanced braces are tolerated: excess
// closers may drive the counter negative and the scan simply continues.
func MaxBraceDepth(content string) int {
	depth := 0
	max := 0
	for _, ch := range content {
		switch ch {
		case '{':
			depth++
			if depth > max {
				max = depth
			}
		case '}':
			depth--
		}
	}
	return max
}

// ComplexityScore estimates cyclomatic-ish complexity from raw content.
// Always >= 1, rounded to 2 decimal places.
func ComplexityScore(content string) float64 {
	score := 1.0

	for _, pattern := range controlFlowPatterns {
		score += float64(strings.Count(content, pattern))
	}

	score += 0.5 * float64(MaxBraceDepth(content))
	score += 0.3 * float64(len(namedFunctionPattern.FindAllString(content, -1)))

	return math.Round(score*100) / 100
}
