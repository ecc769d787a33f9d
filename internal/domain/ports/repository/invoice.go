package repository

import (
	"context"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
)

type InvoiceRepository interface {
	// Save inserts the invoice; a second insert for the same job fails with
	// domain.ErrAlreadyInvoiced.
	Save(ctx context.Context, tx Tx, inv *model.Invoice) error
	FindByJob(ctx context.Context, tx Tx, jobID string) (*model.Invoice, error)
	ListByClient(ctx context.Context, tx Tx, clientID string) ([]*model.Invoice, error)
	// NextNumber reserves the next sequential invoice number.
	NextNumber(ctx context.Context, tx Tx) (int64, error)
	SetPDFHandle(ctx context.Context, tx Tx, id, handle string) error
	// SumByPeriod totals issued amounts since the start of the current
	// period ("week", "month" or "year"), in cents.
	SumByPeriod(ctx context.Context, tx Tx, period string) (int64, error)
}
