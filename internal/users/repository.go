package users

import (
	"context"
	"errors"

	"github.com/PabloPavan/varejao_api/internal/db"
	"github.com/jackc/pgx/v5"
)

type Repository struct {
	base *db.Base
}

func NewRepository(base *db.Base) *Repository {
	return &Repository{base: base}
}

const (
	// Uniqueness is decided by the users_email_key constraint in a single
	// statement; no row back means the email was already taken.
	sqlUserInsert = `INSERT INTO users (id, name, email, password)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
		RETURNING created_at`

	sqlUserGetByEmail = `SELECT id, name, email, password, created_at
		FROM users
		WHERE email = $1`
)

func (r *Repository) Create(ctx context.Context, u *User) error {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	row := r.base.Q().QueryRow(ctx, sqlUserInsert, u.ID, u.Name, u.Email, u.PasswordHash)
	if err := row.Scan(&u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	var u User
	err := r.base.Q().QueryRow(ctx, sqlUserGetByEmail, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if IsNotFound(err) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
