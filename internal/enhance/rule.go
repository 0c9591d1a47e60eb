package enhance

import (
	"regexp"
	"strings"

	"github.com/sant0-9/prompto/internal/hints"
	"github.com/sant0-9/prompto/internal/intent"
	"github.com/sant0-9/prompto/internal/normalize"
	"github.com/sant0-9/prompto/internal/templates"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// RuleEnhancer is the offline path. It never blocks and never fails.
type RuleEnhancer struct {
	// lookup returns the templates for an intent in catalog order
	lookup func(intent.Intent) []templates.Template
}

func NewRuleEnhancer() *RuleEnhancer {
	return &RuleEnhancer{lookup: templates.ByIntent}
}

// NewCatalogRuleEnhancer uses c, which may hold user templates
func NewCatalogRuleEnhancer(c *templates.Catalog) *RuleEnhancer {
	return &RuleEnhancer{lookup: c.ByIntent}
}

func (r *RuleEnhancer) Enhance(req Request) Result {
	description := normalize.Normalize(req.Input)
	related := hints.Annotate(req.Input)
	block := RenderContext(req.Context, req.Flags)

	var text string
	if tmpls := r.lookup(req.Intent); len(tmpls) > 0 {
		text = fill(tmpls[0], description, block)
	} else {
		text = description + "\n\n" + block
	}

	text = strings.TrimSpace(blankLines.ReplaceAllString(text, "\n\n"))
	if len(related) > 0 {
		text += "\n\n*Related concepts: " + strings.Join(related, ", ") + "*"
	}

	return NewResult(text, false)
}

// fill substitutes every content placeholder with description and
// {context} with block in a single pass.
func fill(t templates.Template, description, block string) string {
	var pairs []string
	for _, p := range t.ContentPlaceholders() {
		pairs = append(pairs, "{"+p+"}", description)
	}
	pairs = append(pairs, "{"+templates.ContextPlaceholder+"}", block)
	return strings.NewReplacer(pairs...).Replace(t.Text)
}
