package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnhanceSystemPrompt(t *testing.T) {
	p := EnhanceSystemPrompt()
	assert.NotEmpty(t, p)
	assert.Equal(t, strings.TrimSpace(p), p)
	assert.Contains(t, p, "Preserve the user's intent")
	assert.Contains(t, p, "Output ONLY the rewritten prompt")
}

func TestBuildEnhanceUserPrompt(t *testing.T) {
	assert.Equal(t, "Rewrite this request:\n\nbtn broken", BuildEnhanceUserPrompt("  btn broken\n"))
}
