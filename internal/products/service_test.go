package products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PabloPavan/varejao_api/internal/apperrors"
	"github.com/shopspring/decimal"
)

type storeStub struct {
	createFn func(ctx context.Context, p *Product) error
	listFn   func(ctx context.Context) ([]*Product, error)
	getFn    func(ctx context.Context, id string) (*Product, error)
	updateFn func(ctx context.Context, id string, in UpdateInput) (*Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *storeStub) Create(ctx context.Context, p *Product) error {
	if s.createFn != nil {
		return s.createFn(ctx, p)
	}
	return nil
}

func (s *storeStub) List(ctx context.Context) ([]*Product, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *storeStub) GetByID(ctx context.Context, id string) (*Product, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, ErrNotFound
}

func (s *storeStub) Update(ctx context.Context, id string, in UpdateInput) (*Product, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, in)
	}
	return nil, ErrNotFound
}

func (s *storeStub) Delete(ctx context.Context, id string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type cacheStub struct {
	byID        map[string]*Product
	list        []*Product
	listCached  bool
	deletedIDs  []string
	listDeletes int
}

func newCacheStub() *cacheStub {
	return &cacheStub{byID: map[string]*Product{}}
}

func (c *cacheStub) GetByID(ctx context.Context, id string) (*Product, bool, error) {
	p, ok := c.byID[id]
	return p, ok, nil
}

func (c *cacheStub) SetByID(ctx context.Context, p *Product, ttl time.Duration) error {
	c.byID[p.ID] = p
	return nil
}

func (c *cacheStub) DeleteByID(ctx context.Context, id string) error {
	delete(c.byID, id)
	c.deletedIDs = append(c.deletedIDs, id)
	return nil
}

func (c *cacheStub) GetList(ctx context.Context) ([]*Product, bool, error) {
	return c.list, c.listCached, nil
}

func (c *cacheStub) SetList(ctx context.Context, products []*Product, ttl time.Duration) error {
	c.list = products
	c.listCached = true
	return nil
}

func (c *cacheStub) DeleteList(ctx context.Context) error {
	c.list = nil
	c.listCached = false
	c.listDeletes++
	return nil
}

const (
	prdID     = "0b9c5a3e-5d0f-4b8e-9a51-7f2f7f1d2c01"
	missingID = "3f6b1c2d-8e4a-4f7b-b0c9-1a2b3c4d5e6f"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestServiceCreateDefaults(t *testing.T) {
	var stored *Product
	store := &storeStub{createFn: func(ctx context.Context, p *Product) error {
		stored = p
		return nil
	}}
	cache := newCacheStub()
	svc := &Service{Store: store, Cache: cache, IDGenerator: func() string { return prdID }}

	blank := "  "
	p, err := svc.Create(context.Background(), CreateInput{Name: " Maçã ", Price: price("9.95"), ImageURL: &blank})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if p.ID != prdID || p.Name != "Maçã" {
		t.Fatalf("unexpected product: %+v", p)
	}
	if stored.Quantity != 0 {
		t.Fatalf("quantity should default to 0, got %d", stored.Quantity)
	}
	if stored.ImageURL != nil {
		t.Fatalf("blank image_url should be stored as null")
	}
	if !stored.Price.Equal(decimal.RequireFromString("9.95")) {
		t.Fatalf("unexpected price: %s", stored.Price)
	}
	if cache.listDeletes != 1 {
		t.Fatalf("list cache should be invalidated")
	}
}

func TestServiceCreateRequiresNameAndPrice(t *testing.T) {
	called := false
	store := &storeStub{createFn: func(ctx context.Context, p *Product) error {
		called = true
		return nil
	}}
	svc := &Service{Store: store}

	inputs := map[string]CreateInput{
		"missing price": {Name: "Maçã"},
		"zero price":    {Name: "Maçã", Price: price("0")},
		"blank name":    {Name: " ", Price: price("1.50")},
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), in)
			assertKind(t, err, apperrors.KindInvalidInput)
		})
	}
	if called {
		t.Fatalf("no row must be persisted for invalid input")
	}
}

func TestServiceCreateRejectsNegativeValues(t *testing.T) {
	svc := &Service{Store: &storeStub{}}
	qty := -1

	_, err := svc.Create(context.Background(), CreateInput{Name: "Maçã", Price: price("-2")})
	assertKind(t, err, apperrors.KindInvalidInput)

	_, err = svc.Create(context.Background(), CreateInput{Name: "Maçã", Price: price("2"), Quantity: &qty})
	assertKind(t, err, apperrors.KindInvalidInput)
}

func TestServiceListUsesCache(t *testing.T) {
	calls := 0
	store := &storeStub{listFn: func(ctx context.Context) ([]*Product, error) {
		calls++
		return []*Product{{ID: prdID, Name: "Arroz"}}, nil
	}}
	cache := newCacheStub()
	svc := &Service{Store: store, Cache: cache, ListCacheTTL: time.Minute}

	for i := 0; i < 2; i++ {
		list, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("list error: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("unexpected list: %+v", list)
		}
	}
	if calls != 1 {
		t.Fatalf("store should be hit once, got %d", calls)
	}
}

func TestServiceListNeverNil(t *testing.T) {
	svc := &Service{Store: &storeStub{}}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if list == nil {
		t.Fatalf("empty list must not be nil")
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	svc := &Service{Store: &storeStub{}}

	_, err := svc.GetByID(context.Background(), missingID)
	assertKind(t, err, apperrors.KindNotFound)
}

func TestServiceMalformedIDIsNotFound(t *testing.T) {
	called := false
	svc := &Service{Store: &storeStub{getFn: func(ctx context.Context, id string) (*Product, error) {
		called = true
		return nil, errors.New("invalid input syntax for type uuid")
	}}}

	_, err := svc.GetByID(context.Background(), "abc")
	assertKind(t, err, apperrors.KindNotFound)
	if called {
		t.Fatalf("store must not be queried for a malformed id")
	}
	if err := svc.Delete(context.Background(), "abc"); err != nil {
		t.Fatalf("delete of malformed id should succeed: %v", err)
	}
}

func TestServiceGetByIDStoreFailure(t *testing.T) {
	svc := &Service{Store: &storeStub{getFn: func(ctx context.Context, id string) (*Product, error) {
		return nil, errors.New("timeout")
	}}}

	_, err := svc.GetByID(context.Background(), prdID)
	assertKind(t, err, apperrors.KindInternal)
}

func TestServiceUpdate(t *testing.T) {
	var gotIn UpdateInput
	store := &storeStub{updateFn: func(ctx context.Context, id string, in UpdateInput) (*Product, error) {
		gotIn = in
		return &Product{ID: id, Name: *in.Name, Price: *in.Price}, nil
	}}
	cache := newCacheStub()
	cache.byID[prdID] = &Product{ID: prdID, Name: "old"}
	svc := &Service{Store: store, Cache: cache}

	name := " Feijão "
	p, err := svc.Update(context.Background(), prdID, UpdateInput{Name: &name, Price: price("7.40")})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if p.Name != "Feijão" || *gotIn.Name != "Feijão" {
		t.Fatalf("name should be trimmed: %+v", p)
	}
	if gotIn.Quantity != nil || gotIn.ImageURL != nil {
		t.Fatalf("unset fields must stay nil: %+v", gotIn)
	}
	if _, ok := cache.byID[prdID]; ok {
		t.Fatalf("cached product should be invalidated")
	}
	if cache.listDeletes != 1 {
		t.Fatalf("list cache should be invalidated")
	}
}

func TestServiceUpdateNotFound(t *testing.T) {
	svc := &Service{Store: &storeStub{}}
	name := "Feijão"

	_, err := svc.Update(context.Background(), missingID, UpdateInput{Name: &name})
	assertKind(t, err, apperrors.KindNotFound)
}

func TestServiceDeleteMissingIsOK(t *testing.T) {
	cache := newCacheStub()
	svc := &Service{Store: &storeStub{}, Cache: cache}

	if err := svc.Delete(context.Background(), missingID); err != nil {
		t.Fatalf("delete of missing id should succeed: %v", err)
	}
	if len(cache.deletedIDs) != 1 || cache.deletedIDs[0] != missingID {
		t.Fatalf("unexpected cache deletes: %v", cache.deletedIDs)
	}
}

func TestServiceDeleteStoreFailure(t *testing.T) {
	svc := &Service{Store: &storeStub{deleteFn: func(ctx context.Context, id string) error {
		return errors.New("boom")
	}}}

	err := svc.Delete(context.Background(), prdID)
	assertKind(t, err, apperrors.KindInternal)
}

func assertKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error kind %s", kind)
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected app error, got: %v", err)
	}
	if appErr.Kind != kind {
		t.Fatalf("unexpected kind: %s", appErr.Kind)
	}
}
