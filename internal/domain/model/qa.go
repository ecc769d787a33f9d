package model

import (
	"regexp"
	"sort"
)

// numericToken matches integers and decimals with a locale-invariant "."
// separator; "25" is extracted from "25%".
var numericToken = regexp.MustCompile(`\d+(?:\.\d+)?`)

// NumericCheck is the advisory result of comparing numeric tokens between a
// source and a delivered text. A mismatch never blocks delivery.
type NumericCheck struct {
	Match   bool     `json:"match"`
	Missing []string `json:"missing,omitempty"` // in source, absent from delivered
	Extra   []string `json:"extra,omitempty"`   // in delivered, absent from source
}

// ExtractNumericTokens returns every numeric token of the text in order of
// appearance.
func ExtractNumericTokens(text string) []string {
	return numericToken.FindAllString(text, -1)
}

// CompareNumbers compares the multisets of numeric tokens of both texts.
func CompareNumbers(source, delivered string) NumericCheck {
	src := tokenCounts(ExtractNumericTokens(source))
	dst := tokenCounts(ExtractNumericTokens(delivered))

	check := NumericCheck{Match: true}
	for tok, n := range src {
		for i := dst[tok]; i < n; i++ {
			check.Missing = append(check.Missing, tok)
		}
	}
	for tok, n := range dst {
		for i := src[tok]; i < n; i++ {
			check.Extra = append(check.Extra, tok)
		}
	}
	sort.Strings(check.Missing)
	sort.Strings(check.Extra)
	check.Match = len(check.Missing) == 0 && len(check.Extra) == 0
	return check
}

func tokenCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}
