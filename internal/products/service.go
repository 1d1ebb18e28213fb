package products

import (
	"context"
	"strings"
	"time"

	"github.com/PabloPavan/varejao_api/internal/apperrors"
	"github.com/PabloPavan/varejao_api/internal/telemetry"
	"github.com/google/uuid"
)

const (
	msgNameAndPriceRequired = "Nome e preço são obrigatórios"
	msgNegativeValues       = "Preço e quantidade não podem ser negativos"
	msgNotFound             = "Produto não encontrado"
)

type Store interface {
	Create(ctx context.Context, p *Product) error
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	Store        Store
	Cache        Cache
	CacheTTL     time.Duration
	ListCacheTTL time.Duration
	IDGenerator  func() string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Product, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "products store not configured")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price == nil || in.Price.IsZero() {
		return nil, apperrors.New(apperrors.KindInvalidInput, msgNameAndPriceRequired)
	}

	quantity := 0
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if in.Price.IsNegative() || quantity < 0 {
		return nil, apperrors.New(apperrors.KindInvalidInput, msgNegativeValues)
	}

	idGen := s.IDGenerator
	if idGen == nil {
		idGen = uuid.NewString
	}

	p := &Product{
		ID:       idGen(),
		Name:     name,
		Price:    *in.Price,
		Quantity: quantity,
		ImageURL: normalizeImageURL(in.ImageURL),
	}

	if err := s.Store.Create(ctx, p); err != nil {
		return nil, apperrors.Internal("failed to create product", err)
	}

	s.invalidateList(ctx)
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]*Product, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "products store not configured")
	}

	if s.Cache != nil {
		if cached, ok, err := s.Cache.GetList(ctx); err == nil && ok {
			return cached, nil
		}
	}

	list, err := s.Store.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list products", err)
	}
	if list == nil {
		list = []*Product{}
	}

	if s.Cache != nil && s.ListCacheTTL > 0 {
		_ = s.Cache.SetList(ctx, list, s.ListCacheTTL)
	}

	return list, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Product, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "products store not configured")
	}
	id = strings.TrimSpace(id)
	if uuid.Validate(id) != nil {
		return nil, apperrors.New(apperrors.KindNotFound, msgNotFound)
	}

	if s.Cache != nil {
		if cached, ok, err := s.Cache.GetByID(ctx, id); err == nil && ok {
			return cached, nil
		}
	}

	p, err := s.Store.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, apperrors.New(apperrors.KindNotFound, msgNotFound)
		}
		return nil, apperrors.Internal("failed to load product", err)
	}

	if s.Cache != nil && s.CacheTTL > 0 {
		_ = s.Cache.SetByID(ctx, p, s.CacheTTL)
	}

	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Product, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "products store not configured")
	}
	id = strings.TrimSpace(id)
	if uuid.Validate(id) != nil {
		return nil, apperrors.New(apperrors.KindNotFound, msgNotFound)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperrors.New(apperrors.KindInvalidInput, msgNameAndPriceRequired)
		}
		in.Name = &name
	}
	if (in.Price != nil && in.Price.IsNegative()) || (in.Quantity != nil && *in.Quantity < 0) {
		return nil, apperrors.New(apperrors.KindInvalidInput, msgNegativeValues)
	}
	if in.ImageURL != nil {
		trimmed := strings.TrimSpace(*in.ImageURL)
		in.ImageURL = &trimmed
	}

	p, err := s.Store.Update(ctx, id, in)
	if err != nil {
		if IsNotFound(err) {
			return nil, apperrors.New(apperrors.KindNotFound, msgNotFound)
		}
		return nil, apperrors.Internal("failed to update product", err)
	}

	s.invalidate(ctx, id)
	return p, nil
}

// Delete always succeeds unless the store fails; a missing id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Store == nil {
		return apperrors.New(apperrors.KindInternal, "products store not configured")
	}
	id = strings.TrimSpace(id)
	if uuid.Validate(id) != nil {
		return nil
	}

	if err := s.Store.Delete(ctx, id); err != nil {
		return apperrors.Internal("failed to delete product", err)
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.DeleteByID(ctx, id); err != nil {
		telemetry.LogWarn(ctx, "product cache invalidation failed",
			telemetry.LogString("product.id", id),
			telemetry.LogErr(err),
		)
	}
	s.invalidateList(ctx)
}

func (s *Service) invalidateList(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.DeleteList(ctx); err != nil {
		telemetry.LogWarn(ctx, "product list cache invalidation failed", telemetry.LogErr(err))
	}
}

func normalizeImageURL(u *string) *string {
	if u == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*u)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
