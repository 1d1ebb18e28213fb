package products

import (
	"context"
	"time"
)

type Cache interface {
	GetByID(ctx context.Context, id string) (*Product, bool, error)
	SetByID(ctx context.Context, p *Product, ttl time.Duration) error
	DeleteByID(ctx context.Context, id string) error
	GetList(ctx context.Context) ([]*Product, bool, error)
	SetList(ctx context.Context, products []*Product, ttl time.Duration) error
	DeleteList(ctx context.Context) error
}
