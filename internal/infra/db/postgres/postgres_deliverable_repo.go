package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

var _ repository.DeliverableRepository = (*deliverableRepo)(nil)

type deliverableRepo struct {
	pool *pgxpool.Pool
}

func NewDeliverableRepo(pool *pgxpool.Pool) *deliverableRepo {
	return &deliverableRepo{pool: pool}
}

const deliverableColumns = `id, job_id, file_handle, original_name, translated_text, uploaded_by, uploaded_at`

func scanDeliverable(row pgx.Row) (*model.Deliverable, error) {
	var d model.Deliverable
	err := row.Scan(&d.ID, &d.JobID, &d.FileHandle, &d.OriginalName, &d.TranslatedText, &d.UploadedBy, &d.UploadedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &d, nil
}

func (r *deliverableRepo) Save(ctx context.Context, tx repository.Tx, d *model.Deliverable) error {
	const q = `
INSERT INTO deliverables (id, job_id, file_handle, original_name, translated_text, uploaded_by, uploaded_at)
VALUES ($1,$2,$3,$4,$5,$6,$7);`
	_, err := execSQL(ctx, r.pool, tx, q,
		d.ID, d.JobID, d.FileHandle, d.OriginalName, d.TranslatedText, d.UploadedBy, d.UploadedAt)
	return err
}

func (r *deliverableRepo) FindLatestByJob(ctx context.Context, tx repository.Tx, jobID string) (*model.Deliverable, error) {
	const q = `SELECT ` + deliverableColumns + ` FROM deliverables WHERE job_id=$1 ORDER BY uploaded_at DESC LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, jobID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	return scanDeliverable(row)
}

func (r *deliverableRepo) ListByJob(ctx context.Context, tx repository.Tx, jobID string) ([]*model.Deliverable, error) {
	const q = `SELECT ` + deliverableColumns + ` FROM deliverables WHERE job_id=$1 ORDER BY uploaded_at ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q, jobID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Deliverable
	for rows.Next() {
		d, err := scanDeliverable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if rows.Err() != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}
