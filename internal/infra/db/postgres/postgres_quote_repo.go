package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

var _ repository.QuoteRepository = (*quoteRepo)(nil)

type quoteRepo struct {
	pool *pgxpool.Pool
}

func NewQuoteRepo(pool *pgxpool.Pool) *quoteRepo {
	return &quoteRepo{pool: pool}
}

const quoteColumns = `
id, job_id, word_count, per_word_micros, currency, total_cents,
superseded, approved, approved_at, created_at`

func scanQuote(row pgx.Row) (*model.Quote, error) {
	var q model.Quote
	err := row.Scan(&q.ID, &q.JobID, &q.WordCount, &q.PerWordMicros, &q.Currency, &q.TotalCents,
		&q.Superseded, &q.Approved, &q.ApprovedAt, &q.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &q, nil
}

func (r *quoteRepo) Save(ctx context.Context, tx repository.Tx, quote *model.Quote) error {
	const q = `
INSERT INTO quotes (
  id, job_id, word_count, per_word_micros, currency, total_cents,
  superseded, approved, approved_at, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10
) ON CONFLICT (id) DO UPDATE SET
  superseded=$7, approved=$8, approved_at=$9;`
	_, err := execSQL(ctx, r.pool, tx, q,
		quote.ID, quote.JobID, quote.WordCount, quote.PerWordMicros, quote.Currency, quote.TotalCents,
		quote.Superseded, quote.Approved, quote.ApprovedAt, quote.CreatedAt)
	return err
}

func (r *quoteRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Quote, error) {
	q := `SELECT ` + quoteColumns + ` FROM quotes WHERE id=$1`
	if inTx(tx) {
		q += ` FOR UPDATE`
	}
	row, err := pickRow(ctx, r.pool, tx, q+`;`, id)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	return scanQuote(row)
}

func (r *quoteRepo) FindActiveByJob(ctx context.Context, tx repository.Tx, jobID string) (*model.Quote, error) {
	q := `SELECT ` + quoteColumns + ` FROM quotes WHERE job_id=$1 AND superseded=FALSE`
	if inTx(tx) {
		q += ` FOR UPDATE`
	}
	row, err := pickRow(ctx, r.pool, tx, q+`;`, jobID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	return scanQuote(row)
}

func (r *quoteRepo) ListByJob(ctx context.Context, tx repository.Tx, jobID string) ([]*model.Quote, error) {
	q := `SELECT ` + quoteColumns + ` FROM quotes WHERE job_id=$1 ORDER BY created_at ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q, jobID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, quote)
	}
	if rows.Err() != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *quoteRepo) SupersedeActive(ctx context.Context, tx repository.Tx, jobID string) error {
	const q = `UPDATE quotes SET superseded=TRUE WHERE job_id=$1 AND superseded=FALSE;`
	_, err := execSQL(ctx, r.pool, tx, q, jobID)
	return err
}
