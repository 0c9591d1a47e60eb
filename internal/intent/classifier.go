package intent

import "strings"

// keywords are matched as plain substrings of the lower-cased input, so
// "testing" counts toward "test" and "show" counts toward "how".
var keywords = map[Intent][]string{
	Fix: {
		"fix", "bug", "error", "broken", "not work", "doesn't work", "does not work",
		"crash", "issue", "fail", "wrong", "problem", "exception",
	},
	Add: {
		"add", "create", "new", "implement", "build", "make", "insert", "include", "want",
	},
	Change: {
		"change", "modify", "update", "replace", "rename", "move", "convert", "switch",
	},
	Explain: {
		"explain", "what", "how", "why", "understand", "describe", "mean",
	},
	Test: {
		"test", "spec", "coverage", "unit", "mock", "assert",
	},
	Review: {
		"review", "check", "audit", "feedback", "look at", "evaluate",
	},
	Improve: {
		"improve", "optimize", "faster", "refactor", "clean", "better", "performance",
		"simplify", "speed up",
	},
	Document: {
		"document", "comment", "docs", "readme", "jsdoc", "docstring", "annotate",
	},
}

// Classify returns the intent whose keywords best cover text. Each matching
// keyword scores its length, so longer phrases outweigh short generic ones.
func Classify(text string) Intent {
	lower := strings.ToLower(text)

	best := Default
	bestScore := 0
	for _, i := range all {
		score := Score(lower, i)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}

// Score sums the lengths of i's keywords contained in the lower-cased text
func Score(lower string, i Intent) int {
	score := 0
	for _, kw := range keywords[i] {
		if strings.Contains(lower, kw) {
			score += len(kw)
		}
	}
	return score
}
