package model

import (
	"time"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
)

// Invoice is the final billing artifact for an accepted job. It is bound to
// the approved quote and immutable once issued; a job is invoiced at most once.
type Invoice struct {
	ID          string // UUID
	Number      int64  // sequential invoice number
	JobID       string
	QuoteID     string
	ClientID    string
	AmountCents int64
	Currency    string
	IssuedAt    time.Time
	PDFHandle   string // set after rendering; empty if rendering failed
}

func NewInvoice(id string, number int64, job *Job, quote *Quote) (*Invoice, error) {
	if id == "" || number <= 0 || job == nil || quote == nil {
		return nil, domain.ErrInvalidArgument
	}
	return &Invoice{
		ID:          id,
		Number:      number,
		JobID:       job.ID,
		QuoteID:     quote.ID,
		ClientID:    job.ClientID,
		AmountCents: quote.TotalCents,
		Currency:    quote.Currency,
		IssuedAt:    time.Now(),
	}, nil
}
