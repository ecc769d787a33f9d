package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

var _ repository.InvoiceRepository = (*invoiceRepo)(nil)

type invoiceRepo struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepo(pool *pgxpool.Pool) *invoiceRepo {
	return &invoiceRepo{pool: pool}
}

const invoiceColumns = `id, number, job_id, quote_id, client_id, amount_cents, currency, issued_at, pdf_handle`

func scanInvoice(row pgx.Row) (*model.Invoice, error) {
	var inv model.Invoice
	err := row.Scan(&inv.ID, &inv.Number, &inv.JobID, &inv.QuoteID, &inv.ClientID, &inv.AmountCents, &inv.Currency, &inv.IssuedAt, &inv.PDFHandle)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &inv, nil
}

func (r *invoiceRepo) Save(ctx context.Context, tx repository.Tx, inv *model.Invoice) error {
	const q = `
INSERT INTO invoices (id, number, job_id, quote_id, client_id, amount_cents, currency, issued_at, pdf_handle)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9);`
	_, err := execSQL(ctx, r.pool, tx, q,
		inv.ID, inv.Number, inv.JobID, inv.QuoteID, inv.ClientID, inv.AmountCents, inv.Currency, inv.IssuedAt, inv.PDFHandle)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: the job already carries an invoice.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyInvoiced
		}
		return err
	}
	return nil
}

func (r *invoiceRepo) FindByJob(ctx context.Context, tx repository.Tx, jobID string) (*model.Invoice, error) {
	const q = `SELECT ` + invoiceColumns + ` FROM invoices WHERE job_id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, jobID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	return scanInvoice(row)
}

func (r *invoiceRepo) ListByClient(ctx context.Context, tx repository.Tx, clientID string) ([]*model.Invoice, error) {
	const q = `SELECT ` + invoiceColumns + ` FROM invoices WHERE client_id=$1 ORDER BY number ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q, clientID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	if rows.Err() != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

// NextNumber hands out sequential invoice numbers. Issue runs it inside a
// transaction while holding the per-job lock; the unique index on number
// backstops two different jobs invoicing in the same instant.
func (r *invoiceRepo) NextNumber(ctx context.Context, tx repository.Tx) (int64, error) {
	const q = `SELECT COALESCE(MAX(number), 0) + 1 FROM invoices;`
	row, err := pickRow(ctx, r.pool, tx, q)
	if err != nil {
		return 0, domain.ErrOperationFailed
	}
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}

func (r *invoiceRepo) SetPDFHandle(ctx context.Context, tx repository.Tx, id, handle string) error {
	const q = `UPDATE invoices SET pdf_handle=$2 WHERE id=$1;`
	tag, err := execSQL(ctx, r.pool, tx, q, id, handle)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) SumByPeriod(ctx context.Context, tx repository.Tx, period string) (int64, error) {
	const q = `
SELECT COALESCE(SUM(amount_cents), 0)
  FROM invoices
 WHERE issued_at >= date_trunc($1, NOW());`
	switch period {
	case "week", "month", "year":
	default:
		return 0, domain.ErrInvalidArgument
	}
	row, err := pickRow(ctx, r.pool, tx, q, period)
	if err != nil {
		return 0, domain.ErrOperationFailed
	}
	var sum int64
	if err := row.Scan(&sum); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return sum, nil
}
