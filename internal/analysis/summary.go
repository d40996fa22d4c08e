package analysis

import (
	"fmt"
	"strings"
)

// Summarize produces a short templated description of file content. Signal
// detection is purely substring based; false positives inside strings or
// comments are accepted.
func Summarize(content, language string) string {
	lines := strings.Split(content, "\n")

	kind := "code"
	if language != "" {
		kind = language
	}

	var b strings.Builder
	fmt.Fprintf(&b, "This %s file contains %d lines. ", kind, len(lines))

	if strings.Contains(content, "import") || strings.Contains(content, "require") {
		b.WriteString("It includes external dependencies. ")
	}
	if strings.Contains(content, "export") || strings.Contains(content, "module.exports") {
		b.WriteString("It exports functionality for use by other modules. ")
	}
	if strings.Contains(content, "class ") || strings.Contains(content, "interface ") {
		b.WriteString("It defines classes or interfaces. ")
	}
	if strings.Contains(content, "function ") || strings.Contains(content, "const ") || strings.Contains(content, "let ") {
		b.WriteString("It contains function definitions. ")
	}

	return strings.TrimSpace(b.String())
}
