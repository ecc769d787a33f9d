package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

var _ repository.JobRepository = (*jobRepo)(nil)

type jobRepo struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *jobRepo {
	return &jobRepo{pool: pool}
}

const jobColumns = `
id, client_id, source_language, target_language, state, word_count,
source_text, source_file, original_name, translator_id, due_date,
notes, manager_comment, delivered_at, created_at, updated_at`

func scanJob(row pgx.Row) (*model.Job, error) {
	var j model.Job
	err := row.Scan(&j.ID, &j.ClientID, &j.SourceLanguage, &j.TargetLanguage, &j.State, &j.WordCount,
		&j.SourceText, &j.SourceFile, &j.OriginalName, &j.TranslatorID, &j.DueDate,
		&j.Notes, &j.ManagerComment, &j.DeliveredAt, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &j, nil
}

func (r *jobRepo) Save(ctx context.Context, tx repository.Tx, job *model.Job) error {
	const q = `
INSERT INTO jobs (
  id, client_id, source_language, target_language, state, word_count,
  source_text, source_file, original_name, translator_id, due_date,
  notes, manager_comment, delivered_at, created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16
) ON CONFLICT (id) DO UPDATE SET
  state=$5, word_count=$6, source_text=$7, source_file=$8, original_name=$9,
  translator_id=$10, due_date=$11, notes=$12, manager_comment=$13,
  delivered_at=$14, updated_at=$16;`
	_, err := execSQL(ctx, r.pool, tx, q,
		job.ID, job.ClientID, job.SourceLanguage, job.TargetLanguage, job.State, job.WordCount,
		job.SourceText, job.SourceFile, job.OriginalName, job.TranslatorID, job.DueDate,
		job.Notes, job.ManagerComment, job.DeliveredAt, job.CreatedAt, job.UpdatedAt)
	return err
}

func (r *jobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE id=$1`
	if inTx(tx) {
		// Transitions read inside a transaction; lock the row so concurrent
		// edges on the same job serialize.
		q += ` FOR UPDATE`
	}
	row, err := pickRow(ctx, r.pool, tx, q+`;`, id)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	return scanJob(row)
}

func (r *jobRepo) listWhere(ctx context.Context, tx repository.Tx, where string, args ...interface{}) ([]*model.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs ` + where + ` ORDER BY created_at ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if rows.Err() != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *jobRepo) ListByClient(ctx context.Context, tx repository.Tx, clientID string) ([]*model.Job, error) {
	return r.listWhere(ctx, tx, `WHERE client_id=$1`, clientID)
}

func (r *jobRepo) ListByTranslator(ctx context.Context, tx repository.Tx, translatorID string) ([]*model.Job, error) {
	return r.listWhere(ctx, tx, `WHERE translator_id=$1`, translatorID)
}

func (r *jobRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Job, error) {
	return r.listWhere(ctx, tx, ``)
}

func (r *jobRepo) ListByState(ctx context.Context, tx repository.Tx, state model.JobState) ([]*model.Job, error) {
	return r.listWhere(ctx, tx, `WHERE state=$1`, state)
}

func (r *jobRepo) ListDueWithin(ctx context.Context, tx repository.Tx, hours int) ([]*model.Job, error) {
	return r.listWhere(ctx, tx,
		`WHERE due_date IS NOT NULL
   AND due_date < NOW() + ($1 * INTERVAL '1 hour')
   AND state NOT IN ('rejected','invoiced')`, hours)
}

func (r *jobRepo) CountByState(ctx context.Context, tx repository.Tx) (map[model.JobState]int, error) {
	const q = `SELECT state, COUNT(*) FROM jobs GROUP BY state;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	out := make(map[model.JobState]int)
	for rows.Next() {
		var state model.JobState
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out[state] = n
	}
	if rows.Err() != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}
