package orders

import (
	"context"

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
	orderColumns = `id, user_email, total_price, items, status, created_at`

	sqlOrderInsert = `INSERT INTO orders (id, user_email, total_price, items, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + orderColumns

	sqlOrderList = `SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC, id DESC`

	sqlOrderListByUser = `SELECT ` + orderColumns + `
		FROM orders
		WHERE user_email = $1
		ORDER BY created_at DESC, id DESC`

	sqlOrderUpdateStatus = `UPDATE orders
		SET status = $2
		WHERE id = $1
		RETURNING ` + orderColumns
)

func scanOrder(row pgx.Row, o *Order) error {
	return row.Scan(&o.ID, &o.UserEmail, &o.TotalPrice, &o.Items, &o.Status, &o.CreatedAt)
}

func (r *Repository) Create(ctx context.Context, o *Order) error {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	return scanOrder(r.base.Q().QueryRow(ctx, sqlOrderInsert,
		o.ID, o.UserEmail, o.TotalPrice, o.Items, o.Status,
	), o)
}

func (r *Repository) List(ctx context.Context) ([]*Order, error) {
	return r.list(ctx, sqlOrderList)
}

func (r *Repository) ListByUser(ctx context.Context, email string) ([]*Order, error) {
	return r.list(ctx, sqlOrderListByUser, email)
}

func (r *Repository) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	var o Order
	err := scanOrder(r.base.Q().QueryRow(ctx, sqlOrderUpdateStatus, id, status), &o)
	if IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]*Order, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	rows, err := r.base.Q().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*Order, 0)
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
