package qa

import (
	"regexp"
	"strings"
)

const maxKeywords = 15

// stopWords are low-information tokens excluded from keyword extraction.
// Fixed configuration data, never mutated.
var stopWords = map[string]bool{
	"what": true, "when": true, "where": true, "which": true, "who": true,
	"why": true, "how": true, "the": true, "and": true, "are": true,
	"was": true, "were": true, "been": true, "being": true, "does": true,
	"did": true, "can": true, "could": true, "will": true, "would": true,
	"should": true, "may": true, "might": true, "must": true, "have": true,
	"has": true, "had": true, "this": true, "that": true, "these": true,
	"those": true, "you": true, "your": true, "they": true, "them": true,
	"their": true, "for": true, "with": true, "from": true, "into": true,
	"about": true, "over": true, "after": true, "but": true, "not": true,
	"there": true, "here": true,
}

// expansions augments extracted keywords with related domain terms.
var expansions = []struct {
	triggers []string
	terms    []string
}{
	{
		triggers: []string{"authentication", "authenticate"},
		terms:    []string{"auth", "login", "user", "validate", "credential"},
	},
	{
		triggers: []string{"security", "secure"},
		terms:    []string{"vulnerability", "validation", "sanitize", "xss", "injection"},
	},
	{
		triggers: []string{"performance", "optimize"},
		terms:    []string{"slow", "speed", "efficiency", "complexity"},
	},
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// extractKeywords lowercases the question, strips punctuation, drops short
// tokens and stop words, applies the fixed expansion rules and caps the
// result at 15 keywords in discovery order.
func extractKeywords(question string) []string {
	cleaned := nonWordRe.ReplaceAllString(strings.ToLower(question), "")

	seen := make(map[string]bool)
	var keywords []string
	add := func(token string) {
		if !seen[token] {
			seen[token] = true
			keywords = append(keywords, token)
		}
	}

	for _, token := range strings.Fields(cleaned) {
		if len(token) <= 2 || stopWords[token] {
			continue
		}
		add(token)
	}

	for _, rule := range expansions {
		for _, trigger := range rule.triggers {
			if seen[trigger] {
				for _, term := range rule.terms {
					add(term)
				}
				break
			}
		}
	}

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}
