// Package slug derives URL-safe secondary keys from article titles.
package slug

import (
	"strings"
	"unicode"
)

const separator = '-'

// Make derives a slug from a title. It is a pure function: the same title
// always yields the same slug. Lower-cases, collapses runs of whitespace and
// punctuation into a single separator, and strips leading and trailing
// separators. An empty title yields an empty slug; callers validate title
// presence before reaching this point.
//
// Uniqueness is NOT enforced here or anywhere else: two articles with the
// same title collide on the slug. That matches the behavior of the system
// this one replaces; see DESIGN.md before changing it.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingSep := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteRune(separator)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	return b.String()
}
