// Package templates holds the prompt skeletons used for each intent.
package templates

import (
	"github.com/sant0-9/prompto/internal/intent"
)

// ContextPlaceholder is the slot every template reserves for attached context
const ContextPlaceholder = "context"

// Template is a prompt skeleton with named {placeholders}
type Template struct {
	ID           string
	Intent       intent.Intent
	Name         string
	Description  string
	Text         string
	Placeholders []string
}

// ContentPlaceholders returns every placeholder except {context}
func (t Template) ContentPlaceholders() []string {
	var out []string
	for _, p := range t.Placeholders {
		if p != ContextPlaceholder {
			out = append(out, p)
		}
	}
	return out
}

// catalog order matters: ByIntent returns templates in declaration order and
// the first one is the default for its intent.
var catalog = []Template{
	{
		ID:          "fix-bug",
		Intent:      intent.Fix,
		Name:        "Fix Bug",
		Description: "Diagnose and fix a defect",
		Text: `Fix the following issue: {issue}

{context}

Please:
1. Identify the root cause of the problem
2. Implement a fix that resolves it
3. Explain what was wrong and how the fix addresses it`,
		Placeholders: []string{"issue", "context"},
	},
	{
		ID:          "fix-error",
		Intent:      intent.Fix,
		Name:        "Fix Error",
		Description: "Resolve an error message or exception",
		Text: `Fix this error: {error}

{context}

Please explain what causes the error, fix it, and suggest how to prevent it in the future.`,
		Placeholders: []string{"error", "context"},
	},
	{
		ID:          "add-feature",
		Intent:      intent.Add,
		Name:        "Add Feature",
		Description: "Implement new functionality",
		Text: `Add the following feature: {feature}

{context}

Requirements:
- Follow the existing code style and patterns
- Handle edge cases and errors
- Keep the implementation focused and minimal`,
		Placeholders: []string{"feature", "context"},
	},
	{
		ID:          "add-component",
		Intent:      intent.Add,
		Name:        "Add Component",
		Description: "Create a new UI component",
		Text: `Create a new component: {component}

{context}

The component should be reusable, accessible, and consistent with the existing components.`,
		Placeholders: []string{"component", "context"},
	},
	{
		ID:          "change-code",
		Intent:      intent.Change,
		Name:        "Change Code",
		Description: "Modify existing behavior",
		Text: `Change the code as follows: {change}

{context}

Keep unrelated behavior intact and update any affected call sites.`,
		Placeholders: []string{"change", "context"},
	},
	{
		ID:          "explain-code",
		Intent:      intent.Explain,
		Name:        "Explain Code",
		Description: "Explain how code works",
		Text: `Explain the following: {topic}

{context}

Walk through how it works step by step, including the purpose of the key parts and any non-obvious behavior.`,
		Placeholders: []string{"topic", "context"},
	},
	{
		ID:          "test-write",
		Intent:      intent.Test,
		Name:        "Write Tests",
		Description: "Write tests for code",
		Text: `Write tests for: {target}

{context}

Cover:
- The main success paths
- Edge cases and invalid input
- Error handling`,
		Placeholders: []string{"target", "context"},
	},
	{
		ID:          "review-code",
		Intent:      intent.Review,
		Name:        "Review Code",
		Description: "Review code for problems",
		Text: `Review the following: {target}

{context}

Look for bugs, security issues, performance problems, and readability concerns. Suggest concrete improvements.`,
		Placeholders: []string{"target", "context"},
	},
	{
		ID:          "improve-code",
		Intent:      intent.Improve,
		Name:        "Improve Code",
		Description: "Refactor or optimize code",
		Text: `Improve the following: {improvement}

{context}

Focus on readability, performance, and maintainability without changing external behavior.`,
		Placeholders: []string{"improvement", "context"},
	},
	{
		ID:          "document-code",
		Intent:      intent.Document,
		Name:        "Document Code",
		Description: "Write documentation",
		Text: `Write documentation for: {target}

{context}

Include a short summary, parameter and return value descriptions, and a usage example where helpful.`,
		Placeholders: []string{"target", "context"},
	},
}

// All returns the whole catalog in declaration order
func All() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// ByIntent returns the templates for i in declaration order
func ByIntent(i intent.Intent) []Template {
	var out []Template
	for _, t := range catalog {
		if t.Intent == i {
			out = append(out, t)
		}
	}
	return out
}

// ByID looks up a single template
func ByID(id string) (Template, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
