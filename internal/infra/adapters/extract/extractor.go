package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/adapter"
)

var _ adapter.TextExtractor = (*Extractor)(nil)

// Extractor sniffs the uploaded document's media type and pulls plain text
// out of it. Supported inputs are plain text, markdown, HTML and CSV;
// anything else fails with domain.ErrUnsupportedFormat.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

var (
	htmlTag    = regexp.MustCompile(`(?s)<[^>]*>`)
	htmlScript = regexp.MustCompile(`(?is)<(script|style)\b.*?</(script|style)>`)
)

func (e *Extractor) Extract(ctx context.Context, data []byte, filename string) (string, int, error) {
	mtype := mimetype.Detect(data)

	var text string
	switch {
	case mtype.Is("text/html"):
		stripped := htmlScript.ReplaceAllString(string(data), " ")
		text = htmlTag.ReplaceAllString(stripped, " ")
	case mtype.Is("text/plain"), mtype.Is("text/markdown"), mtype.Is("text/csv"),
		strings.HasPrefix(mtype.String(), "text/"):
		text = string(data)
	default:
		return "", 0, fmt.Errorf("cannot extract %s (%s): %w", filename, mtype.String(), domain.ErrUnsupportedFormat)
	}

	text = strings.TrimSpace(text)
	return text, model.CountWords(text), nil
}
