package enhance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sant0-9/prompto/internal/intent"
	"github.com/sant0-9/prompto/internal/templates"
	"github.com/sant0-9/prompto/internal/workspace"
)

func TestRuleEnhanceFixExample(t *testing.T) {
	res := NewRuleEnhancer().Enhance(Request{
		Intent: intent.Fix,
		Input:  "button not work when click",
	})

	assert.False(t, res.WasAIEnhanced)
	assert.Contains(t, res.Prompt, "Fix")
	assert.Contains(t, res.Prompt, "Button is not working correctly when clicked.")
	assert.True(t, strings.HasPrefix(res.Prompt, "Fix the following issue: Button is not working correctly when clicked.\n\nPlease:"))
	assert.NotContains(t, res.Prompt, "\n\n\n")
	assert.NotContains(t, res.Prompt, "{")
	assert.Equal(t, 1, strings.Count(res.Prompt, "onClick event"))
	assert.True(t, strings.HasSuffix(res.Prompt, "*"))
	assert.Contains(t, res.Prompt, "\n\n*Related concepts: onClick event, event handler, user interaction")
}

func TestRuleEnhanceFillsEveryTemplate(t *testing.T) {
	r := NewRuleEnhancer()
	for _, i := range intent.All() {
		t.Run(i.String(), func(t *testing.T) {
			res := r.Enhance(Request{Intent: i, Input: "the cache layer"})
			assert.NotContains(t, res.Prompt, "{")
			assert.NotContains(t, res.Prompt, "}")
			assert.Contains(t, res.Prompt, "The cache layer.")
		})
	}
}

func TestRuleEnhanceUsesFirstTemplate(t *testing.T) {
	res := NewRuleEnhancer().Enhance(Request{Intent: intent.Add, Input: "dark mode"})
	first := templates.ByIntent(intent.Add)[0]
	head := strings.SplitN(first.Text, "{", 2)[0]
	assert.True(t, strings.HasPrefix(res.Prompt, head))
}

func fullContext() workspace.PromptContext {
	return workspace.PromptContext{
		FileName:         "app.ts",
		FilePath:         "/src/app.ts",
		Language:         "typescript",
		Selection:        "button.onclick = null",
		ProjectStructure: "src/app.ts\nsrc/index.ts",
		GitStatus:        "On branch main\n M src/app.ts",
		RelatedFiles:     []string{"src/index.ts"},
	}
}

func TestRenderContextOrder(t *testing.T) {
	block := RenderContext(fullContext(), Flags{File: true, Selection: true, Project: true, Git: true, Related: true})

	file := strings.Index(block, "File: app.ts (typescript)")
	sel := strings.Index(block, "Selected code:\n```typescript\nbutton.onclick = null\n```")
	proj := strings.Index(block, "Project structure:")
	git := strings.Index(block, "Git status:")
	rel := strings.Index(block, "Related files:\n- src/index.ts")

	for _, idx := range []int{file, sel, proj, git, rel} {
		assert.GreaterOrEqual(t, idx, 0)
	}
	assert.Less(t, file, sel)
	assert.Less(t, sel, proj)
	assert.Less(t, proj, git)
	assert.Less(t, git, rel)
}

func TestRenderContextSkipsMissingAndUnselected(t *testing.T) {
	assert.Empty(t, RenderContext(workspace.PromptContext{}, Flags{File: true, Selection: true, Project: true, Git: true, Related: true}))
	assert.Empty(t, RenderContext(fullContext(), Flags{}))

	block := RenderContext(fullContext(), Flags{Git: true})
	assert.True(t, strings.HasPrefix(block, "Git status:"))
	assert.NotContains(t, block, "File:")
}

func TestRuleEnhanceWithContext(t *testing.T) {
	res := NewRuleEnhancer().Enhance(Request{
		Intent:  intent.Fix,
		Input:   "btn not work",
		Context: fullContext(),
		Flags:   Flags{File: true, Selection: true},
	})

	assert.Contains(t, res.Prompt, "Button is not working correctly.\n\nFile: app.ts (typescript)\n\nSelected code:")
	assert.NotContains(t, res.Prompt, "Git status:")
}

func TestRuleEnhanceUserTemplate(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"without context slot", "Fix: {issue}"},
		{"mixed case placeholder", "Fix: {Issue2}\n\n{context}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := templates.Parse([]byte("---\nid: user-fix\nintent: fix\n---\n"+tt.text+"\n"), "user-fix")
			assert.NoError(t, err)

			res := NewCatalogRuleEnhancer(templates.NewCatalog([]templates.Template{tmpl})).Enhance(Request{
				Intent:  intent.Fix,
				Input:   "btn not work",
				Context: fullContext(),
				Flags:   Flags{File: true},
			})

			assert.True(t, strings.HasPrefix(res.Prompt, "Fix: Button is not working correctly."), res.Prompt)
			assert.Contains(t, res.Prompt, "File: app.ts (typescript)")
			assert.NotContains(t, res.Prompt, "{")
		})
	}
}

func TestRuleEnhanceWithoutTemplate(t *testing.T) {
	r := &RuleEnhancer{lookup: func(intent.Intent) []templates.Template { return nil }}

	res := r.Enhance(Request{Intent: intent.Fix, Input: "explain the sorting code"})
	assert.Equal(t, "Explain the sorting code.", res.Prompt)

	res = r.Enhance(Request{
		Intent:  intent.Fix,
		Input:   "explain the sorting code",
		Context: fullContext(),
		Flags:   Flags{File: true},
	})
	assert.Equal(t, "Explain the sorting code.\n\nFile: app.ts (typescript)", res.Prompt)
}

func TestPreview(t *testing.T) {
	short := "Fix the button."
	assert.Equal(t, short, Preview(short))

	exact := strings.Repeat("a", PreviewLength)
	assert.Equal(t, exact, Preview(exact))

	long := strings.Repeat("b", 250)
	p := Preview(long)
	assert.Len(t, p, 203)
	assert.True(t, strings.HasSuffix(p, "..."))
	assert.True(t, strings.HasPrefix(long, strings.TrimSuffix(p, "...")))
}

func TestRuleEnhancePreview(t *testing.T) {
	res := NewRuleEnhancer().Enhance(Request{Intent: intent.Fix, Input: "button not work when click"})
	assert.Greater(t, len(res.Prompt), PreviewLength)
	assert.Len(t, res.Preview, 203)
	assert.True(t, strings.HasPrefix(res.Prompt, strings.TrimSuffix(res.Preview, "...")))
}

func TestCleanLocalOutput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Fix the button.", want: "Fix the button."},
		{in: "  Enhanced prompt: Fix the button.  ", want: "Fix the button."},
		{in: "Here's the enhanced prompt:\n\"Fix the button.\"", want: "Fix the button."},
		{in: "Here is the improved prompt: 'Add dark mode.'", want: "Add dark mode."},
		{in: "Output: `Write tests.`", want: "Write tests."},
		{in: "Prompt: “Explain the cache.”", want: "Explain the cache."},
		{in: "Rewritten prompt: Review auth.", want: "Review auth."},
		{in: `""Nested""`, want: `"Nested"`},
		{in: `"unbalanced`, want: `"unbalanced`},
		{in: "Output:", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanLocalOutput(tt.in))
		})
	}
}
