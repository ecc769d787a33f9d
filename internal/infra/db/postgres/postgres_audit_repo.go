package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

var _ repository.AuditLogRepository = (*auditLogRepo)(nil)

type auditLogRepo struct {
	pool *pgxpool.Pool
}

func NewAuditLogRepo(pool *pgxpool.Pool) *auditLogRepo {
	return &auditLogRepo{pool: pool}
}

func (r *auditLogRepo) Save(ctx context.Context, tx repository.Tx, e *model.AuditLog) error {
	const q = `
INSERT INTO audit_logs (id, actor_id, action, object_type, object_id, created_at)
VALUES ($1,$2,$3,$4,$5,$6);`
	_, err := execSQL(ctx, r.pool, tx, q, e.ID, e.ActorID, e.Action, e.ObjectType, e.ObjectID, e.CreatedAt)
	return err
}

func (r *auditLogRepo) ListByObject(ctx context.Context, tx repository.Tx, objectType, objectID string) ([]*model.AuditLog, error) {
	const q = `
SELECT id, actor_id, action, object_type, object_id, created_at
  FROM audit_logs WHERE object_type=$1 AND object_id=$2 ORDER BY created_at ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q, objectType, objectID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.AuditLog
	for rows.Next() {
		var e model.AuditLog
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.ObjectType, &e.ObjectID, &e.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &e)
	}
	if rows.Err() != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}
