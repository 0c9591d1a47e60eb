package enhance

import (
	"regexp"
	"strings"
)

// boilerplate small local models like to put in front of the answer
var boilerplate = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^here(?:'|’)?s\s+(?:the|your)\s+(?:enhanced|improved|rewritten)\s+prompt\s*:\s*`),
	regexp.MustCompile(`(?i)^here\s+is\s+(?:the|your)\s+(?:enhanced|improved|rewritten)\s+prompt\s*:\s*`),
	regexp.MustCompile(`(?i)^(?:enhanced|improved|rewritten)\s+prompt\s*:\s*`),
	regexp.MustCompile(`(?i)^output\s*:\s*`),
	regexp.MustCompile(`(?i)^prompt\s*:\s*`),
}

var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"`", "`"},
	{"“", "”"},
	{"‘", "’"},
}

// CleanLocalOutput strips leading boilerplate and one layer of enclosing
// quotes from a local model's answer.
func CleanLocalOutput(s string) string {
	s = strings.TrimSpace(s)
	for _, re := range boilerplate {
		s = strings.TrimSpace(re.ReplaceAllString(s, ""))
	}

	for _, q := range quotePairs {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			s = s[len(q[0]) : len(s)-len(q[1])]
			break
		}
	}
	return strings.TrimSpace(s)
}
