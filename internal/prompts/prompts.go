package prompts

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed enhance.md
var Enhance string

// EnhanceSystemPrompt is the framing instruction for every AI rewrite
func EnhanceSystemPrompt() string {
	return strings.TrimSpace(Enhance)
}

// BuildEnhanceUserPrompt wraps the raw request for the rewrite model
func BuildEnhanceUserPrompt(userInput string) string {
	return fmt.Sprintf("Rewrite this request:\n\n%s", strings.TrimSpace(userInput))
}
