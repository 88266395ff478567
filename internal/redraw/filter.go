package redraw

import "strings"

// Matches reports whether candidate passes the filter for text. Text of one
// byte or less matches everything; longer text must appear as a substring.
func Matches(candidate, text string) bool {
	if len(text) <= 1 {
		return true
	}
	return strings.Contains(candidate, text)
}

// Filter returns the candidates matching text, in their original order
func Filter(candidates []string, text string) []string {
	var matches []string
	for _, c := range candidates {
		if Matches(c, text) {
			matches = append(matches, c)
		}
	}
	return matches
}
