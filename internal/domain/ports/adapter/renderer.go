package adapter

import (
	"context"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
)

// InvoiceRenderer renders an issued invoice into a printable document.
type InvoiceRenderer interface {
	Render(ctx context.Context, inv *model.Invoice, job *model.Job, client *model.User) ([]byte, error)
}
