// Package normalize rewrites informal developer shorthand into fuller
// sentences before a prompt template is filled in.
package normalize

import (
	"regexp"
	"sort"
)

type expansion struct {
	key   string
	value string
}

var abbreviations = []expansion{
	{"btn", "button"},
	{"func", "function"},
	{"fn", "function"},
	{"var", "variable"},
	{"vars", "variables"},
	{"param", "parameter"},
	{"params", "parameters"},
	{"arg", "argument"},
	{"args", "arguments"},
	{"db", "database"},
	{"repo", "repository"},
	{"config", "configuration"},
	{"auth", "authentication"},
	{"msg", "message"},
	{"err", "error"},
	{"req", "request"},
	{"res", "response"},
	{"impl", "implementation"},
	{"env", "environment"},
	{"dir", "directory"},
	{"util", "utility"},
	{"utils", "utilities"},
	{"pls", "please"},
	{"plz", "please"},
	{"u", "you"},
	{"ur", "your"},
	{"bc", "because"},
	{"thx", "thanks"},
	{"idk", "I don't know"},
	{"dont", "don't"},
	{"doesnt", "doesn't"},
	{"cant", "can't"},
	{"wont", "won't"},
	{"isnt", "isn't"},
	{"ui", "user interface"},
	{"ux", "user experience"},
	{"api", "API"},
	{"js", "JavaScript"},
	{"ts", "TypeScript"},
	{"fast", "optimized for better performance"},
	{"pic", "image"},
	{"img", "image"},
	{"nav", "navigation"},
	{"async", "asynchronous"},
}

type compiledExpansion struct {
	re    *regexp.Regexp
	value string
}

// expansions is sorted longest key first so "params" is tried before "param".
var expansions = compileExpansions(abbreviations)

func compileExpansions(entries []expansion) []compiledExpansion {
	sorted := make([]expansion, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if len(sorted[i].key) != len(sorted[j].key) {
			return len(sorted[i].key) > len(sorted[j].key)
		}
		return sorted[i].key < sorted[j].key
	})

	out := make([]compiledExpansion, len(sorted))
	for i, e := range sorted {
		out[i] = compiledExpansion{
			re:    regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(e.key) + `\b`),
			value: e.value,
		}
	}
	return out
}

// Expand replaces whole-word, case-insensitive abbreviations with their
// fuller phrases. Entries are applied one after another on the accumulated
// text; an expansion whose output happens to be another key is not guarded
// against.
func Expand(text string) string {
	for _, e := range expansions {
		text = e.re.ReplaceAllLiteralString(text, e.value)
	}
	return text
}
