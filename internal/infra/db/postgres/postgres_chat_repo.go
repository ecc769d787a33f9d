package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

var _ repository.ChatMessageRepository = (*chatMessageRepo)(nil)

type chatMessageRepo struct {
	pool *pgxpool.Pool
}

func NewChatMessageRepo(pool *pgxpool.Pool) *chatMessageRepo {
	return &chatMessageRepo{pool: pool}
}

func (r *chatMessageRepo) Append(ctx context.Context, tx repository.Tx, msg *model.ChatMessage) error {
	// Seq comes from the current maximum inside the same statement; the
	// caller serializes appends per job so two inserts never race here.
	const q = `
INSERT INTO chat_messages (id, job_id, sender_id, sender_name, sender_role, body, seq, created_at)
SELECT $1, $2, $3, $4, $5, $6, COALESCE(MAX(seq), 0) + 1, $7
  FROM chat_messages WHERE job_id = $2
RETURNING seq;`
	row, err := pickRow(ctx, r.pool, tx, q,
		msg.ID, msg.JobID, msg.SenderID, msg.SenderName, msg.SenderRole, msg.Body, msg.CreatedAt)
	if err != nil {
		return domain.ErrOperationFailed
	}
	if err := row.Scan(&msg.Seq); err != nil {
		return domain.ErrReadDatabaseRow
	}
	return nil
}

func (r *chatMessageRepo) ListByJob(ctx context.Context, tx repository.Tx, jobID string, afterSeq int64) ([]*model.ChatMessage, error) {
	const q = `
SELECT id, job_id, sender_id, sender_name, sender_role, body, seq, created_at
  FROM chat_messages
 WHERE job_id=$1 AND seq > $2
 ORDER BY seq ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q, jobID, afterSeq)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.JobID, &m.SenderID, &m.SenderName, &m.SenderRole, &m.Body, &m.Seq, &m.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &m)
	}
	if rows.Err() != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *chatMessageRepo) LastSeq(ctx context.Context, tx repository.Tx, jobID string) (int64, error) {
	const q = `SELECT COALESCE(MAX(seq), 0) FROM chat_messages WHERE job_id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, jobID)
	if err != nil {
		return 0, domain.ErrOperationFailed
	}
	var seq int64
	if err := row.Scan(&seq); err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, domain.ErrReadDatabaseRow
	}
	return seq, nil
}
