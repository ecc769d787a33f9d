package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

var _ repository.NotificationLogRepository = (*notificationLogRepo)(nil)

type notificationLogRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationLogRepo(pool *pgxpool.Pool) *notificationLogRepo {
	return &notificationLogRepo{pool: pool}
}

const notificationLogColumns = `id, job_id, state, actor_id, recipient, template, status, error, created_at`

func scanNotificationLog(row pgx.Row) (*model.NotificationLog, error) {
	var e model.NotificationLog
	err := row.Scan(&e.ID, &e.JobID, &e.State, &e.ActorID, &e.Recipient, &e.Template, &e.Status, &e.Error, &e.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &e, nil
}

func (r *notificationLogRepo) Save(ctx context.Context, tx repository.Tx, e *model.NotificationLog) error {
	const q = `
INSERT INTO notification_logs (id, job_id, state, actor_id, recipient, template, status, error, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9);`
	_, err := execSQL(ctx, r.pool, tx, q,
		e.ID, e.JobID, e.State, e.ActorID, e.Recipient, e.Template, e.Status, e.Error, e.CreatedAt)
	return err
}

func (r *notificationLogRepo) ListByJob(ctx context.Context, tx repository.Tx, jobID string) ([]*model.NotificationLog, error) {
	const q = `SELECT ` + notificationLogColumns + ` FROM notification_logs WHERE job_id=$1 ORDER BY created_at ASC;`
	return r.queryList(ctx, tx, q, jobID)
}

// ListFailed returns failed dispatches that have no later successful send
// for the same recipient and job, oldest first.
func (r *notificationLogRepo) ListFailed(ctx context.Context, tx repository.Tx, limit int) ([]*model.NotificationLog, error) {
	const q = `
SELECT ` + notificationLogColumns + `
  FROM notification_logs f
 WHERE f.status='failed'
   AND NOT EXISTS (
     SELECT 1 FROM notification_logs s
      WHERE s.status='sent' AND s.job_id=f.job_id
        AND s.recipient=f.recipient AND s.template=f.template
        AND s.created_at > f.created_at
   )
 ORDER BY f.created_at ASC
 LIMIT $1;`
	return r.queryList(ctx, tx, q, limit)
}

func (r *notificationLogRepo) queryList(ctx context.Context, tx repository.Tx, q string, args ...interface{}) ([]*model.NotificationLog, error) {
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.NotificationLog
	for rows.Next() {
		e, err := scanNotificationLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if rows.Err() != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}
