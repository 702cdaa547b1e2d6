package catalog

import (
	"context"
	"strings"

	"github.com/tillbook/tillbook/internal/shared"
)

// Service is the catalog manager: the single authority over product
// identity, pricing and stock outside of a checkout commit.
type Service struct {
	repo Repository
}

// NewService builds a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddProduct creates a product. Name must be non-empty, price and stock
// non-negative.
func (s *Service) AddProduct(ctx context.Context, name string, priceCents, stock int64) (Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Product{}, shared.Validationf("name", "must not be empty")
	}
	if priceCents < 0 {
		return Product{}, shared.Validationf("price", "must not be negative")
	}
	if stock < 0 {
		return Product{}, shared.Validationf("stock", "must not be negative")
	}
	return s.repo.Create(ctx, Product{
		Name:       name,
		PriceCents: priceCents,
		Stock:      stock,
		Active:     true,
	})
}

// UpdateProduct applies the provided fields to an existing product.
func (s *Service) UpdateProduct(ctx context.Context, id int64, fields UpdateFields) (Product, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}

	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		if name == "" {
			return Product{}, shared.Validationf("name", "must not be empty")
		}
		current.Name = name
	}
	if fields.PriceCents != nil {
		if *fields.PriceCents < 0 {
			return Product{}, shared.Validationf("price", "must not be negative")
		}
		current.PriceCents = *fields.PriceCents
	}
	if fields.Stock != nil {
		if *fields.Stock < 0 {
			return Product{}, shared.Validationf("stock", "must not be negative")
		}
		current.Stock = *fields.Stock
	}

	if err := s.repo.Update(ctx, id, current); err != nil {
		return Product{}, err
	}
	return s.repo.Get(ctx, id)
}

// AdjustStock applies a signed stock delta (restock or correction).
// A delta that would drive stock negative fails with InsufficientStockError.
func (s *Service) AdjustStock(ctx context.Context, id, delta int64) (Product, error) {
	if delta == 0 {
		return s.repo.Get(ctx, id)
	}
	return s.repo.AdjustStock(ctx, id, delta)
}

// Deactivate marks a product unavailable for new bills. Historical bill
// lines keep their snapshots and are unaffected.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.SetActive(ctx, id, false)
}

// Reactivate makes a deactivated product available again.
func (s *Service) Reactivate(ctx context.Context, id int64) error {
	return s.repo.SetActive(ctx, id, true)
}

// List returns a point-in-time snapshot of the catalog.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	return s.repo.List(ctx, filter)
}

// Get fetches one product by id.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// CurrentPrice is the one price-lookup authority: carts recompute totals
// through it so display totals never diverge from the catalog.
func (s *Service) CurrentPrice(ctx context.Context, id int64) (int64, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.PriceCents, nil
}
