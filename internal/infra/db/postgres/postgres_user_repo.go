package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *userRepo {
	return &userRepo{pool: pool}
}

const userColumns = `id, username, email, password_hash, role, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &u, nil
}

func (r *userRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	const q = `
INSERT INTO users (id, username, email, password_hash, role, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE SET
  username=$2, email=$3, password_hash=$4, role=$5;`
	_, err := execSQL(ctx, r.pool, tx, q, u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.CreatedAt)
	return err
}

func (r *userRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	return scanUser(row)
}

func (r *userRepo) FindByUsername(ctx context.Context, tx repository.Tx, username string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE username=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, username)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	return scanUser(row)
}

func (r *userRepo) ListByRole(ctx context.Context, tx repository.Tx, role model.Role) ([]*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE role=$1 ORDER BY username ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q, role)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if rows.Err() != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *userRepo) CountAll(ctx context.Context, tx repository.Tx) (int, error) {
	const q = `SELECT COUNT(*) FROM users;`
	row, err := pickRow(ctx, r.pool, tx, q)
	if err != nil {
		return 0, domain.ErrOperationFailed
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}
