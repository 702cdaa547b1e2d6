package catalog

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tillbook/tillbook/internal/shared"
)

// Repository persists the product catalog.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) error
	AdjustStock(ctx context.Context, id, delta int64) (Product, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, price_cents, stock, active, created_at, updated_at`

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filter.Search != "" {
		argCount++
		query += ` AND name ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.ActiveOnly {
		query += ` AND active`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, shared.Storagef("catalog list", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, shared.Storagef("catalog list scan", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.Storagef("catalog list", err)
	}
	return products, nil
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.PriceCents, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, shared.ErrNotFound
		}
		return Product{}, shared.Storagef("catalog get", err)
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO products (name, price_cents, stock, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5) RETURNING id`,
		product.Name, product.PriceCents, product.Stock, product.Active, now).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, shared.Validationf("name", "product %q already exists", product.Name)
		}
		return Product{}, shared.Storagef("catalog create", err)
	}
	product.CreatedAt = now
	product.UpdatedAt = now
	return product, nil
}

func (r *repository) Update(ctx context.Context, id int64, product Product) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET name = $1, price_cents = $2, stock = $3, updated_at = $4 WHERE id = $5`,
		product.Name, product.PriceCents, product.Stock, time.Now(), id)
	if err != nil {
		if isUniqueViolation(err) {
			return shared.Validationf("name", "product %q already exists", product.Name)
		}
		return shared.Storagef("catalog update", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AdjustStock applies a signed delta with a conditional UPDATE so the
// non-negative invariant holds even when adjustments interleave.
func (r *repository) AdjustStock(ctx context.Context, id, delta int64) (Product, error) {
	var p Product
	err := r.db.QueryRow(ctx,
		`UPDATE products SET stock = stock + $1, updated_at = NOW()
		 WHERE id = $2 AND stock + $1 >= 0
		 RETURNING `+productColumns, delta, id).
		Scan(&p.ID, &p.Name, &p.PriceCents, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Product{}, shared.Storagef("catalog adjust stock", err)
	}

	// The guard rejected the update: either the product is missing or the
	// delta would go negative.
	current, getErr := r.Get(ctx, id)
	if getErr != nil {
		return Product{}, getErr
	}
	return Product{}, &shared.InsufficientStockError{Shortages: []shared.Shortage{{
		ProductID: current.ID,
		Name:      current.Name,
		Requested: -delta,
		Available: current.Stock,
	}}}
}

func (r *repository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return shared.Storagef("catalog set active", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
