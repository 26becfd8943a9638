package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/finance-tracker/internal/user"
)

// Repository reads and writes profiles with plain SQL. Queries are written
// with ? placeholders and rebound for the driver in use.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

var _ user.Repository = (*Repository)(nil)

func (r *Repository) Get(ctx context.Context, id int64) (*user.Profile, error) {
	var p user.Profile
	query := r.db.Rebind(`SELECT id, email, username, created_at FROM users WHERE id = ?`)
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func (r *Repository) UpdateUsername(ctx context.Context, id int64, username string) error {
	query := r.db.Rebind(`UPDATE users SET username = ?, updated_at = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, username, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update username: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update username: %w", err)
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}
