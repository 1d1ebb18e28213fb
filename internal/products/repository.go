package products

import (
	"context"
	"strconv"
	"strings"

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
	productColumns = `id, name, price, quantity, image_url, created_at`

	sqlProductInsert = `INSERT INTO products (id, name, price, quantity, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + productColumns

	sqlProductList = `SELECT ` + productColumns + `
		FROM products
		ORDER BY name ASC, id ASC`

	sqlProductGetByID = `SELECT ` + productColumns + `
		FROM products
		WHERE id = $1`

	sqlProductUpdateBase = `UPDATE products
		SET %s
		WHERE id = $1
		RETURNING ` + productColumns

	sqlProductDelete = `DELETE FROM products
		WHERE id = $1`
)

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.ImageURL, &p.CreatedAt)
}

func (r *Repository) Create(ctx context.Context, p *Product) error {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	return scanProduct(r.base.Q().QueryRow(ctx, sqlProductInsert,
		p.ID, p.Name, p.Price, p.Quantity, p.ImageURL,
	), p)
}

func (r *Repository) List(ctx context.Context) ([]*Product, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	rows, err := r.base.Q().Query(ctx, sqlProductList)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*Product, 0)
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	var p Product
	err := scanProduct(r.base.Q().QueryRow(ctx, sqlProductGetByID, id), &p)
	if IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update writes only the fields set in in and returns the stored row.
func (r *Repository) Update(ctx context.Context, id string, in UpdateInput) (*Product, error) {
	if in.Empty() {
		return r.GetByID(ctx, id)
	}

	set := make([]string, 0, 4)
	args := make([]any, 0, 5)

	args = append(args, id)
	argPos := 2

	if in.Name != nil {
		set = append(set, "name = $"+strconv.Itoa(argPos))
		args = append(args, *in.Name)
		argPos++
	}
	if in.Price != nil {
		set = append(set, "price = $"+strconv.Itoa(argPos))
		args = append(args, *in.Price)
		argPos++
	}
	if in.Quantity != nil {
		set = append(set, "quantity = $"+strconv.Itoa(argPos))
		args = append(args, *in.Quantity)
		argPos++
	}
	if in.ImageURL != nil {
		// blank clears the image
		set = append(set, "image_url = NULLIF($"+strconv.Itoa(argPos)+", '')")
		args = append(args, *in.ImageURL)
	}

	query := strings.Replace(sqlProductUpdateBase, "%s", strings.Join(set, ", "), 1)

	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	var p Product
	err := scanProduct(r.base.Q().QueryRow(ctx, query, args...), &p)
	if IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the row if present. Deleting a missing id is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	_, err := r.base.Q().Exec(ctx, sqlProductDelete, id)
	return err
}
