// Package catalog implements product catalog management: CRUD, stock
// adjustments and the soft-delete lifecycle that keeps historical bill
// lines valid.
package catalog

import "time"

// Product is a catalog entry. Prices are integer cents; stock is a whole
// unit count and never goes negative.
type Product struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Stock      int64     `json:"stock"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListFilter narrows List results.
type ListFilter struct {
	Search     string
	ActiveOnly bool
}

// UpdateFields carries the mutable product attributes; nil means unchanged.
type UpdateFields struct {
	Name       *string
	PriceCents *int64
	Stock      *int64
}
