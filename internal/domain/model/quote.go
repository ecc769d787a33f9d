package model

import (
	"fmt"
	"time"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
)

// Quote is a priced estimate for a job. At most one non-superseded quote
// exists per job; regenerating keeps the old quote for audit and flags it
// superseded instead of deleting it.
type Quote struct {
	ID            string // UUID
	JobID         string
	WordCount     int
	PerWordMicros int64
	Currency      string
	TotalCents    int64
	Superseded    bool
	Approved      bool
	ApprovedAt    *time.Time
	CreatedAt     time.Time
}

func NewQuote(id string, job *Job, rate *Rate) (*Quote, error) {
	if id == "" || job == nil || rate == nil {
		return nil, domain.ErrInvalidArgument
	}
	return &Quote{
		ID:            id,
		JobID:         job.ID,
		WordCount:     job.WordCount,
		PerWordMicros: rate.PerWordMicros,
		Currency:      rate.Currency,
		TotalCents:    ComputePriceCents(job.WordCount, rate.PerWordMicros),
		CreatedAt:     time.Now(),
	}, nil
}

// ComputePriceCents returns word_count * per-word price rounded to whole
// cents, half up. One cent is 10_000 micros, so the computation never
// touches floating point and is deterministic for a given input.
func ComputePriceCents(wordCount int, perWordMicros int64) int64 {
	micros := int64(wordCount) * perWordMicros
	return (micros + 5_000) / 10_000
}

// Approve marks the quote approved. Approving an already approved quote is
// a no-op returning the original approval timestamp; approving a superseded
// quote fails with ErrStaleQuote.
func (q *Quote) Approve() (time.Time, error) {
	if q.Superseded {
		return time.Time{}, domain.ErrStaleQuote
	}
	if q.Approved && q.ApprovedAt != nil {
		return *q.ApprovedAt, nil
	}
	now := time.Now()
	q.Approved = true
	q.ApprovedAt = &now
	return now, nil
}

// FormatCents renders a cent amount as a decimal string, e.g. 10000 -> "100.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
