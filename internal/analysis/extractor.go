package analysis

import (
	"regexp"
	"strings"
)

// ExtractedFunction is one discovered function definition with its 1-based,
// inclusive source span.
type ExtractedFunction struct {
	Name      string
	Signature string
	LineStart int
	LineEnd   int
}

var (
	namedFuncRe = regexp.MustCompile(`^(?:export\s+)?(?:async\s+)?function\s+(\w+)\s*\(([^)]*)\)`)
	arrowFuncRe = regexp.MustCompile(`^(?:export\s+)?(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?\(([^)]*)\)\s*=>`)
)

// ExtractFunctions scans content line by line for two definition shapes:
// named function declarations and arrow functions bound to a variable. It
// only understands javascript, typescript, or unspecified language; any
// other language yields no results. Results are in source order and not
// deduplicated, and a line matching both patterns produces two entries.
func ExtractFunctions(content, language string) []ExtractedFunction {
	if language != "" && language != "javascript" && language != "typescript" {
		return nil
	}

	lines := strings.Split(content, "\n")
	var functions []ExtractedFunction

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if m := namedFuncRe.FindStringSubmatch(trimmed); m != nil {
			functions = append(functions, ExtractedFunction{
				Name:      m[1],
				Signature: trimmed,
				LineStart: i + 1,
				LineEnd:   findFunctionEnd(lines, i),
			})
		}

		// Multi-line arrow bodies are not tracked; the span is the
		// declaration line itself.
		if m := arrowFuncRe.FindStringSubmatch(trimmed); m != nil {
			functions = append(functions, ExtractedFunction{
				Name:      m[1],
				Signature: trimmed,
				LineStart: i + 1,
				LineEnd:   i + 1,
			})
		}
	}

	return functions
}

// findFunctionEnd scans forward from start tracking brace balance and
// returns the 1-based line where the balance first returns to zero after
// opening. Falls back to the start line when no brace ever opens.
func findFunctionEnd(lines []string, start int) int {
	depth := 0
	opened := false

	for i := start; i < len(lines); i++ {
		for _, ch := range lines[i] {
			switch ch {
			case '{':
				depth++
				if depth > 0 {
					opened = true
				}
			case '}':
				depth--
			}
			if opened && depth == 0 {
				return i + 1
			}
		}
	}

	return start + 1
}
