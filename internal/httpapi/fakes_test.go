package httpapi

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/PabloPavan/varejao_api/internal/orders"
	"github.com/PabloPavan/varejao_api/internal/products"
	"github.com/PabloPavan/varejao_api/internal/users"
)

// memUsers mimics the conditional insert: the first writer of an email wins.
type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]users.User
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]users.User{}}
}

func (m *memUsers) Create(ctx context.Context, u *users.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return users.ErrEmailTaken
	}
	u.CreatedAt = time.Now()
	m.byEmail[u.Email] = *u
	return nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byEmail)
}

type memProducts struct {
	mu   sync.Mutex
	rows map[string]products.Product
	err  error
}

func newMemProducts() *memProducts {
	return &memProducts{rows: map[string]products.Product{}}
}

func (m *memProducts) Create(ctx context.Context, p *products.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	p.CreatedAt = time.Now()
	m.rows[p.ID] = *p
	return nil
}

func (m *memProducts) List(ctx context.Context) ([]*products.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*products.Product, 0, len(m.rows))
	for _, p := range m.rows {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memProducts) GetByID(ctx context.Context, id string) (*products.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, products.ErrNotFound
	}
	return &p, nil
}

func (m *memProducts) Update(ctx context.Context, id string, in products.UpdateInput) (*products.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, products.ErrNotFound
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.ImageURL != nil {
		if *in.ImageURL == "" {
			p.ImageURL = nil
		} else {
			url := *in.ImageURL
			p.ImageURL = &url
		}
	}
	m.rows[id] = p
	return &p, nil
}

func (m *memProducts) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memProducts) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// memOrders returns rows in insertion order; sorting is the service's job.
type memOrders struct {
	mu   sync.Mutex
	rows []orders.Order
}

func (m *memOrders) Create(ctx context.Context, o *orders.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	m.rows = append(m.rows, *o)
	return nil
}

func (m *memOrders) List(ctx context.Context) ([]*orders.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*orders.Order, 0, len(m.rows))
	for i := range m.rows {
		o := m.rows[i]
		out = append(out, &o)
	}
	return out, nil
}

func (m *memOrders) ListByUser(ctx context.Context, email string) ([]*orders.Order, error) {
	all, _ := m.List(ctx)
	out := make([]*orders.Order, 0, len(all))
	for _, o := range all {
		if o.UserEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOrders) UpdateStatus(ctx context.Context, id, status string) (*orders.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Status = status
			o := m.rows[i]
			return &o, nil
		}
	}
	return nil, orders.ErrNotFound
}

func (m *memOrders) snapshot() []orders.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]orders.Order, len(m.rows))
	copy(out, m.rows)
	return out
}

type pingerStub struct {
	err error
}

func (p pingerStub) Ping(ctx context.Context) error {
	return p.err
}

var errStoreDown = errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
