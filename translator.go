package webtab

import (
	"context"
	"strings"
)

// DefaultSelector is the selector used whenever a translation fails.
const DefaultSelector = "body"

// SelectorSystemInstruction is the fixed system prompt sent to language
// models asked to translate an instruction into a selector.
const SelectorSystemInstruction = "You're a web scraping assistant. Convert the user prompt into a CSS selector or scraping rule that can be used to extract data from the given webpage."

// Translator maps a natural-language instruction to a CSS selector.
type Translator interface {
	// Translate returns a selector for instruction on the page at url.
	// The returned selector is always usable: on failure implementations
	// return DefaultSelector together with the error.
	Translate(ctx context.Context, instruction, url string) (string, error)
}

// SelectorPrompt builds the user message for a translation request.
func SelectorPrompt(url, instruction string) string {
	return "URL: " + url + "\nInstruction: " + instruction
}

// NormalizeSelector cleans a model answer into a bare selector. Code
// fences and surrounding quotes are removed and only the first non-empty
// line is kept. Blank answers yield DefaultSelector.
func NormalizeSelector(answer string) string {
	for _, line := range strings.Split(answer, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		line = strings.Trim(line, "`\"'")
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return DefaultSelector
}
