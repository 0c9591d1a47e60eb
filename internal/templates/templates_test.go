package templates

import (
	"strings"
	"testing"

	"github.com/sant0-9/prompto/internal/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryIntentHasATemplate(t *testing.T) {
	for _, i := range intent.All() {
		assert.NotEmpty(t, ByIntent(i), "intent %s", i)
	}
}

func TestTemplatesDeclarePlaceholders(t *testing.T) {
	ids := map[string]bool{}
	for _, tmpl := range All() {
		assert.False(t, ids[tmpl.ID], "duplicate id %s", tmpl.ID)
		ids[tmpl.ID] = true

		assert.Contains(t, tmpl.Text, "{context}", tmpl.ID)
		assert.Contains(t, tmpl.Placeholders, ContextPlaceholder, tmpl.ID)
		for _, p := range tmpl.Placeholders {
			assert.True(t, strings.Contains(tmpl.Text, "{"+p+"}"), "%s missing {%s}", tmpl.ID, p)
		}
	}
}

func TestByIntentKeepsDeclarationOrder(t *testing.T) {
	got := ByIntent(intent.Fix)
	require.Len(t, got, 2)
	assert.Equal(t, "fix-bug", got[0].ID)
	assert.Equal(t, "fix-error", got[1].ID)
}

func TestByIntentUnknown(t *testing.T) {
	assert.Empty(t, ByIntent(intent.Intent("deploy")))
}

func TestByID(t *testing.T) {
	tmpl, ok := ByID("add-component")
	require.True(t, ok)
	assert.Equal(t, intent.Add, tmpl.Intent)
	assert.Equal(t, []string{"component"}, tmpl.ContentPlaceholders())

	_, ok = ByID("missing")
	assert.False(t, ok)
}
