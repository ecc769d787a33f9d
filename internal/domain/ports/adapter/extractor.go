package adapter

import "context"

// TextExtractor turns an uploaded document into plain text plus a word
// count. Unknown formats fail with domain.ErrUnsupportedFormat carrying the
// detected media type.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, filename string) (text string, wordCount int, err error)
}
