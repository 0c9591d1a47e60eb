// Package enhance turns an informal request into a finished prompt, first
// with deterministic rules and then, when configured, with one AI rewrite.
package enhance

import (
	"github.com/sant0-9/prompto/internal/intent"
	"github.com/sant0-9/prompto/internal/workspace"
)

// PreviewLength is how many characters of the prompt a preview keeps
const PreviewLength = 200

// Flags select which parts of the context are rendered
type Flags struct {
	File      bool `json:"file"`
	Selection bool `json:"selection"`
	Project   bool `json:"project"`
	Git       bool `json:"git"`
	Related   bool `json:"related"`
}

// Request is a single enhancement call
type Request struct {
	Intent  intent.Intent
	Input   string
	Context workspace.PromptContext
	Flags   Flags
}

// Result is what callers display or copy
type Result struct {
	Prompt        string `json:"prompt"`
	Preview       string `json:"preview"`
	WasAIEnhanced bool   `json:"was_ai_enhanced"`
}

// NewResult fills in the preview for prompt
func NewResult(prompt string, aiEnhanced bool) Result {
	return Result{
		Prompt:        prompt,
		Preview:       Preview(prompt),
		WasAIEnhanced: aiEnhanced,
	}
}

// Preview returns the first PreviewLength characters of s, with "..." when
// anything was cut.
func Preview(s string) string {
	runes := []rune(s)
	if len(runes) <= PreviewLength {
		return s
	}
	return string(runes[:PreviewLength]) + "..."
}
