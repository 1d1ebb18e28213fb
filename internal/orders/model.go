package orders

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending = "Pendente"
	StatusShipped = "Enviado 🚚"
)

// Order.Items is the snapshot captured at checkout, one raw JSON value per
// element exactly as the client sent it. It is not linked to the live
// products table.
type Order struct {
	ID         string            `json:"id"`
	UserEmail  string            `json:"user_email"`
	TotalPrice decimal.Decimal   `json:"total_price"`
	Items      []json.RawMessage `json:"items"`
	Status     string            `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Line is the part of an item the emails print.
type Line struct {
	Nome  string
	Preco decimal.Decimal
}

// Lines decodes nome and preco from each item. Items that are not objects,
// or carry values of another type, yield zero fields instead of an error.
func (o Order) Lines() []Line {
	lines := make([]Line, 0, len(o.Items))
	for _, raw := range o.Items {
		var fields struct {
			Nome  json.RawMessage `json:"nome"`
			Preco json.RawMessage `json:"preco"`
		}
		var l Line
		if json.Unmarshal(raw, &fields) == nil {
			if len(fields.Nome) > 0 {
				_ = json.Unmarshal(fields.Nome, &l.Nome)
			}
			if len(fields.Preco) > 0 {
				var p decimal.Decimal
				if p.UnmarshalJSON(fields.Preco) == nil {
					l.Preco = p
				}
			}
		}
		lines = append(lines, l)
	}
	return lines
}

type CheckoutInput struct {
	UserEmail  string
	TotalPrice *decimal.Decimal
	Items      []json.RawMessage
}
