// Package text holds small text utilities shared by the query engine:
// whitespace correction before answer bucketing, markup stripping for
// scraped headings, and voice-answer casing helpers.
package text

import (
	"strings"
	"unicode"
)

// CorrectSpaces collapses redundant whitespace in free text and removes
// stray spaces before punctuation, e.g. "forstjóri  Samherja ." becomes
// "forstjóri Samherja.". Candidate answers are normalized with this
// before they are used as bucket keys.
func CorrectSpaces(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for i, f := range fields {
		if i > 0 && !closesWord(f) {
			b.WriteByte(' ')
		}
		b.WriteString(f)
	}
	return b.String()
}

// closesWord reports whether the field is punctuation that attaches to
// the preceding word without an intervening space.
func closesWord(f string) bool {
	if len(f) == 0 {
		return false
	}
	r := []rune(f)[0]
	switch r {
	case '.', ',', ':', ';', '!', '?', ')', ']', '}', '%':
		return true
	}
	return false
}

// UpperFirst upper-cases the first rune of s, leaving the rest untouched.
// Used when phrasing voice answers such as "Seðlabankastjóri er ...".
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
