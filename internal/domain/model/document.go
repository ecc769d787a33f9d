package model

import "regexp"

var wordToken = regexp.MustCompile(`\w+`)

// CountWords counts word tokens the way quoting expects: maximal runs of
// letters, digits and underscores.
func CountWords(text string) int {
	return len(wordToken.FindAllStringIndex(text, -1))
}
