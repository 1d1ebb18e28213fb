package products

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("product not found")

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, ErrNotFound)
}
