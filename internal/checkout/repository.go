package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tillbook/tillbook/internal/catalog"
	"github.com/tillbook/tillbook/internal/shared"
)

// Repository opens the atomic unit of work a checkout commits in.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the writes available inside a checkout transaction.
// The row locks taken by GetProductForUpdate cover exactly the products a
// cart touches and are released when the transaction ends.
type TxRepository interface {
	GetProductForUpdate(ctx context.Context, id int64) (catalog.Product, error)
	DecrementStock(ctx context.Context, id, qty int64) error
	InsertBill(ctx context.Context, bill Bill) (int64, time.Time, error)
	InsertBillLines(ctx context.Context, invoiceNo int64, lines []BillLine) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

type txRepository struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction. All
// writes commit together or roll back together.
func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return shared.Storagef("begin checkout tx", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(ctx, &txRepository{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return shared.Storagef("commit checkout tx", err)
	}
	return nil
}

func (r *txRepository) GetProductForUpdate(ctx context.Context, id int64) (catalog.Product, error) {
	var p catalog.Product
	err := r.tx.QueryRow(ctx,
		`SELECT id, name, price_cents, stock, active, created_at, updated_at
		 FROM products WHERE id = $1 FOR UPDATE`, id).
		Scan(&p.ID, &p.Name, &p.PriceCents, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Product{}, shared.ErrNotFound
		}
		return catalog.Product{}, shared.Storagef("lock product row", err)
	}
	return p, nil
}

func (r *txRepository) DecrementStock(ctx context.Context, id, qty int64) error {
	tag, err := r.tx.Exec(ctx,
		`UPDATE products SET stock = stock - $1, updated_at = NOW()
		 WHERE id = $2 AND stock >= $1`, qty, id)
	if err != nil {
		return shared.Storagef("decrement stock", err)
	}
	// The service validated qty against the locked row, so a miss here
	// means the invariant machinery itself is broken.
	if tag.RowsAffected() == 0 {
		return shared.Storagef("decrement stock", errors.New("stock underflow rejected by guard"))
	}
	return nil
}

// InsertBill writes the bill header. The invoice number comes from the
// identity column, so it is allocated under this same transaction: rollback
// may leave a gap, but a number is never issued twice.
func (r *txRepository) InsertBill(ctx context.Context, bill Bill) (int64, time.Time, error) {
	var (
		invoiceNo int64
		createdAt time.Time
	)
	err := r.tx.QueryRow(ctx,
		`INSERT INTO bills (subtotal_cents, tax_cents, total_cents, payment_method)
		 VALUES ($1, $2, $3, $4) RETURNING invoice_no, created_at`,
		bill.SubtotalCents, bill.TaxCents, bill.TotalCents, bill.PaymentMethod).
		Scan(&invoiceNo, &createdAt)
	if err != nil {
		return 0, time.Time{}, shared.Storagef("insert bill", err)
	}
	return invoiceNo, createdAt, nil
}

func (r *txRepository) InsertBillLines(ctx context.Context, invoiceNo int64, lines []BillLine) error {
	for _, line := range lines {
		_, err := r.tx.Exec(ctx,
			`INSERT INTO bill_lines (invoice_no, product_id, name_snapshot, price_snapshot_cents, qty, line_total_cents)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			invoiceNo, line.ProductID, line.NameSnapshot, line.PriceSnapshotCents, line.Qty, line.LineTotalCents)
		if err != nil {
			return shared.Storagef("insert bill line", err)
		}
	}
	return nil
}
