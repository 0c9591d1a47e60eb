package tui

import (
	"strings"
	"unicode/utf8"
)

// estimateTokens approximates the token count at four characters per token
func estimateTokens(text string) int {
	return (utf8.RuneCountInString(text) + 3) / 4
}

var contextLimits = []struct {
	match string
	limit int
}{
	{"claude", 200000},
	{"gemini", 1000000},
	{"gpt-4o", 128000},
	{"gpt-4-turbo", 128000},
	{"llama-3", 128000},
	{"llama3", 128000},
	{"qwen2.5", 32000},
	{"mixtral", 32000},
	{"mistral", 32000},
}

const defaultContextLimit = 8000

// getContextLimit returns the context window for a model name. Routed
// names such as "openai/gpt-4o" match on the part after the slash too.
func getContextLimit(model string) int {
	model = strings.ToLower(model)
	for _, c := range contextLimits {
		if strings.Contains(model, c.match) {
			return c.limit
		}
	}
	return defaultContextLimit
}
