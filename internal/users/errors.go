package users

import (
	"errors"

	"github.com/PabloPavan/varejao_api/internal/db"
	"github.com/jackc/pgx/v5"
)

const emailConstraint = "users_email_key"

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, ErrNotFound)
}

func IsEmailTaken(err error) bool {
	return errors.Is(err, ErrEmailTaken) || db.IsUniqueViolation(err, emailConstraint)
}
