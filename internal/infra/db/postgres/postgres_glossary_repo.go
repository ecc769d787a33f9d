package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

var _ repository.GlossaryRepository = (*glossaryRepo)(nil)

type glossaryRepo struct {
	pool *pgxpool.Pool
}

func NewGlossaryRepo(pool *pgxpool.Pool) *glossaryRepo {
	return &glossaryRepo{pool: pool}
}

func (r *glossaryRepo) Save(ctx context.Context, tx repository.Tx, t *model.GlossaryTerm) error {
	const q = `
INSERT INTO glossary_terms (id, client_id, source, target, notes, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE SET source=$3, target=$4, notes=$5;`
	_, err := execSQL(ctx, r.pool, tx, q, t.ID, t.ClientID, t.Source, t.Target, t.Notes, t.CreatedAt)
	return err
}

func (r *glossaryRepo) ListByClient(ctx context.Context, tx repository.Tx, clientID string) ([]*model.GlossaryTerm, error) {
	const q = `
SELECT id, client_id, source, target, notes, created_at
  FROM glossary_terms WHERE client_id=$1 ORDER BY source ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q, clientID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.GlossaryTerm
	for rows.Next() {
		var t model.GlossaryTerm
		if err := rows.Scan(&t.ID, &t.ClientID, &t.Source, &t.Target, &t.Notes, &t.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &t)
	}
	if rows.Err() != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *glossaryRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `DELETE FROM glossary_terms WHERE id=$1;`
	tag, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
