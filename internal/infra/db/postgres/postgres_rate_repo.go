package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

var _ repository.RateRepository = (*rateRepo)(nil)

type rateRepo struct {
	pool *pgxpool.Pool
}

func NewRateRepo(pool *pgxpool.Pool) *rateRepo {
	return &rateRepo{pool: pool}
}

const rateColumns = `id, source_language, target_language, per_word_micros, currency, created_at`

func scanRate(row pgx.Row) (*model.Rate, error) {
	var rate model.Rate
	err := row.Scan(&rate.ID, &rate.SourceLanguage, &rate.TargetLanguage, &rate.PerWordMicros, &rate.Currency, &rate.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrRateNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &rate, nil
}

func (r *rateRepo) Save(ctx context.Context, tx repository.Tx, rate *model.Rate) error {
	const q = `
INSERT INTO rates (id, source_language, target_language, per_word_micros, currency, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (source_language, target_language) DO UPDATE SET
  per_word_micros=$4, currency=$5;`
	_, err := execSQL(ctx, r.pool, tx, q,
		rate.ID, rate.SourceLanguage, rate.TargetLanguage, rate.PerWordMicros, rate.Currency, rate.CreatedAt)
	return err
}

func (r *rateRepo) FindByPair(ctx context.Context, tx repository.Tx, src, dst string) (*model.Rate, error) {
	const q = `SELECT ` + rateColumns + ` FROM rates WHERE source_language=lower($1) AND target_language=lower($2);`
	row, err := pickRow(ctx, r.pool, tx, q, src, dst)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	return scanRate(row)
}

func (r *rateRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Rate, error) {
	const q = `SELECT ` + rateColumns + ` FROM rates ORDER BY source_language, target_language;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Rate
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rate)
	}
	if rows.Err() != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *rateRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `DELETE FROM rates WHERE id=$1;`
	tag, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
