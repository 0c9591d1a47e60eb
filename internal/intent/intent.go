package intent

import (
	"fmt"
	"strings"
)

// Intent is the coarse category of a developer request
type Intent string

const (
	Fix      Intent = "fix"
	Add      Intent = "add"
	Change   Intent = "change"
	Explain  Intent = "explain"
	Test     Intent = "test"
	Review   Intent = "review"
	Improve  Intent = "improve"
	Document Intent = "document"
)

// Default is used when no keyword matches
const Default = Fix

// all is the enumeration order; classification ties resolve to the earlier entry.
var all = []Intent{Fix, Add, Change, Explain, Test, Review, Improve, Document}

// All returns every intent in enumeration order
func All() []Intent {
	out := make([]Intent, len(all))
	copy(out, all)
	return out
}

// Parse converts a user-supplied name into an Intent
func Parse(s string) (Intent, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, i := range all {
		if string(i) == s {
			return i, nil
		}
	}
	return "", fmt.Errorf("unknown intent %q (want one of %s)", s, joined())
}

func (i Intent) String() string {
	return string(i)
}

// Label returns a capitalized display name
func (i Intent) Label() string {
	if i == "" {
		return ""
	}
	return strings.ToUpper(string(i[:1])) + string(i[1:])
}

func joined() string {
	names := make([]string, len(all))
	for n, i := range all {
		names[n] = string(i)
	}
	return strings.Join(names, ", ")
}
