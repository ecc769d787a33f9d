package model

import (
	"strings"
	"time"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
)

const DefaultCurrency = "EUR"

// Rate is the per-word price for one language pair. Prices are stored in
// micro-units of the currency (1 EUR = 1_000_000 micros) so quote totals
// stay exact under integer arithmetic.
type Rate struct {
	ID             string // UUID
	SourceLanguage string
	TargetLanguage string
	PerWordMicros  int64
	Currency       string
	CreatedAt      time.Time
}

func NewRate(id, sourceLang, targetLang string, perWordMicros int64, currency string) (*Rate, error) {
	if id == "" || sourceLang == "" || targetLang == "" || perWordMicros <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Rate{
		ID:             id,
		SourceLanguage: normalizeLanguage(sourceLang),
		TargetLanguage: normalizeLanguage(targetLang),
		PerWordMicros:  perWordMicros,
		Currency:       currency,
		CreatedAt:      time.Now(),
	}, nil
}

// Pair returns the canonical key for the rate's language pair.
func (r *Rate) Pair() string {
	return LanguagePair(r.SourceLanguage, r.TargetLanguage)
}

func LanguagePair(source, target string) string {
	return normalizeLanguage(source) + "->" + normalizeLanguage(target)
}

func normalizeLanguage(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}
