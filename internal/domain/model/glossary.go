package model

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
)

// GlossaryTerm is one client-scoped term preference: whenever Source shows
// up in a delivered text it should have been rendered as Target.
type GlossaryTerm struct {
	ID        string // UUID
	ClientID  string
	Source    string
	Target    string
	Notes     string
	CreatedAt time.Time
}

func NewGlossaryTerm(id, clientID, source, target, notes string) (*GlossaryTerm, error) {
	if id == "" || clientID == "" || strings.TrimSpace(source) == "" || strings.TrimSpace(target) == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &GlossaryTerm{
		ID:        id,
		ClientID:  clientID,
		Source:    strings.TrimSpace(source),
		Target:    strings.TrimSpace(target),
		Notes:     notes,
		CreatedAt: time.Now(),
	}, nil
}

// TermSpan marks one glossary hit inside a text. Offsets are rune indexes
// into the scanned text.
type TermSpan struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Match  string `json:"match"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// HighlightTerms scans text for glossary occurrences, case-insensitively and
// longest-match-first so a hit never partially overlaps a longer term. It
// returns the spans plus the text with every hit annotated as
// [[match->target]].
func HighlightTerms(text string, terms []*GlossaryTerm) ([]TermSpan, string) {
	if len(terms) == 0 || text == "" {
		return nil, text
	}
	// Longest source first; ties resolved alphabetically for determinism.
	sorted := make([]*GlossaryTerm, len(terms))
	copy(sorted, terms)
	sort.Slice(sorted, func(i, j int) bool {
		li, lj := len([]rune(sorted[i].Source)), len([]rune(sorted[j].Source))
		if li != lj {
			return li > lj
		}
		return sorted[i].Source < sorted[j].Source
	})

	runes := []rune(text)
	lowered := lowerRunes(runes)
	loweredTerms := make([][]rune, len(sorted))
	for i, t := range sorted {
		loweredTerms[i] = lowerRunes([]rune(t.Source))
	}

	var spans []TermSpan
	var annotated strings.Builder
	for i := 0; i < len(runes); {
		matched := false
		for ti, lt := range loweredTerms {
			if len(lt) == 0 || i+len(lt) > len(runes) {
				continue
			}
			if !runesEqual(lowered[i:i+len(lt)], lt) {
				continue
			}
			if !wordBoundary(lowered, i, i+len(lt)) {
				continue
			}
			match := string(runes[i : i+len(lt)])
			spans = append(spans, TermSpan{
				Start:  i,
				End:    i + len(lt),
				Match:  match,
				Source: sorted[ti].Source,
				Target: sorted[ti].Target,
			})
			annotated.WriteString("[[" + match + "->" + sorted[ti].Target + "]]")
			i += len(lt)
			matched = true
			break
		}
		if !matched {
			annotated.WriteRune(runes[i])
			i++
		}
	}
	return spans, annotated.String()
}

func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// wordBoundary rejects matches glued to surrounding letters or digits, so
// the term "port" does not light up inside "export".
func wordBoundary(rs []rune, start, end int) bool {
	if start > 0 && isWordRune(rs[start-1]) && isWordRune(rs[start]) {
		return false
	}
	if end < len(rs) && isWordRune(rs[end]) && isWordRune(rs[end-1]) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
