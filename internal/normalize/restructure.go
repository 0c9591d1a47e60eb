package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

// rules run in order, each on the previous rule's output.
var rules = []rule{
	{regexp.MustCompile(`\s+`), " "},
	{regexp.MustCompile(`(?i)\b(\w+)\s+(?:does\s+)?not\s+work\b`), "$1 is not working correctly"},
	{regexp.MustCompile(`(?i)^make\s+(.+)`), "Implement $1"},
	{regexp.MustCompile(`(?i)^want\s+(.+)`), "I need $1"},
	{regexp.MustCompile(`(?i)^how\s+(\w+)\??$`), "How does $1 work"},
	{regexp.MustCompile(`(?i)\bwhen\s+click\b`), "when clicked"},
}

// Restructure applies the fixed rewrite rules and then makes sure the
// result reads as a sentence: capital first letter, terminal punctuation.
func Restructure(text string) string {
	for _, r := range rules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}

	first, size := utf8.DecodeRuneInString(text)
	text = string(unicode.ToUpper(first)) + text[size:]

	last, _ := utf8.DecodeLastRuneInString(text)
	if unicode.IsLetter(last) {
		text += "."
	}
	return text
}

// Normalize expands abbreviations and restructures the result.
func Normalize(text string) string {
	return Restructure(Expand(text))
}
