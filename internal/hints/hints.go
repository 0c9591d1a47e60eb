// Package hints maps everyday words in a request to the technical terms an
// assistant would use for the same thing.
package hints

import "strings"

// Cluster ties trigger words to the terms they suggest
type Cluster struct {
	Triggers []string
	Terms    []string
}

var clusters = []Cluster{
	{
		Triggers: []string{"button", "click", "press", "tap"},
		Terms:    []string{"onClick event", "event handler", "user interaction"},
	},
	{
		Triggers: []string{"form", "input", "submit", "validation"},
		Terms:    []string{"form handling", "input validation", "form submission"},
	},
	{
		Triggers: []string{"api", "fetch", "endpoint", "http", "request"},
		Terms:    []string{"API integration", "HTTP request", "async/await", "error handling"},
	},
	{
		Triggers: []string{"login", "auth", "password", "sign in", "token"},
		Terms:    []string{"authentication", "session management", "security"},
	},
	{
		Triggers: []string{"database", "db", "query", "sql"},
		Terms:    []string{"database query", "data persistence", "ORM"},
	},
	{
		Triggers: []string{"slow", "performance", "fast", "speed", "lag"},
		Terms:    []string{"performance optimization", "profiling", "caching"},
	},
	{
		Triggers: []string{"style", "css", "layout", "color", "design"},
		Terms:    []string{"CSS styling", "responsive design", "layout"},
	},
	{
		Triggers: []string{"state", "redux", "store", "usestate"},
		Terms:    []string{"state management", "React hooks", "reactivity"},
	},
	{
		Triggers: []string{"crash", "exception", "undefined", "null", "error"},
		Terms:    []string{"error handling", "exception handling", "null safety"},
	},
	{
		Triggers: []string{"async", "promise", "await", "callback"},
		Terms:    []string{"async/await", "Promise handling", "concurrency"},
	},
	{
		Triggers: []string{"render", "component", "display", "show"},
		Terms:    []string{"component rendering", "UI update", "virtual DOM"},
	},
	{
		Triggers: []string{"test", "mock", "coverage"},
		Terms:    []string{"unit testing", "test coverage", "mocking"},
	},
}

// Clusters returns the built-in trigger clusters in match order
func Clusters() []Cluster {
	out := make([]Cluster, len(clusters))
	copy(out, clusters)
	return out
}

// Annotate returns the technical terms suggested by text, first-seen order,
// without duplicates. Triggers match as case-insensitive substrings.
func Annotate(text string) []string {
	lower := strings.ToLower(text)

	terms := []string{}
	seen := make(map[string]bool)
	for _, c := range clusters {
		if !matchesAny(lower, c.Triggers) {
			continue
		}
		for _, term := range c.Terms {
			if seen[term] {
				continue
			}
			seen[term] = true
			terms = append(terms, term)
		}
	}
	return terms
}

func matchesAny(lower string, triggers []string) bool {
	for _, t := range triggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}
