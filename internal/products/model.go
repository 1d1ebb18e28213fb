package products

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  *string         `json:"image_url"`
	CreatedAt time.Time       `json:"created_at"`
}

type CreateInput struct {
	Name     string
	Price    *decimal.Decimal
	Quantity *int
	ImageURL *string
}

// UpdateInput holds the fields to change; nil means keep the stored value.
type UpdateInput struct {
	Name     *string
	Price    *decimal.Decimal
	Quantity *int
	ImageURL *string
}

func (in UpdateInput) Empty() bool {
	return in.Name == nil && in.Price == nil && in.Quantity == nil && in.ImageURL == nil
}
