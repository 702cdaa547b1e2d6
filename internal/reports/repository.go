// Package reports provides read-only queries over the append-only bill
// ledger. Nothing here mutates state.
package reports

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tillbook/tillbook/internal/checkout"
	"github.com/tillbook/tillbook/internal/shared"
)

// Repository reads the bill ledger.
type Repository interface {
	GetBill(ctx context.Context, invoiceNo int64) (checkout.Bill, error)
	ListBillsBetween(ctx context.Context, start, end time.Time) ([]checkout.Bill, error)
	ListRecent(ctx context.Context, limit int) ([]checkout.Bill, error)
	DailyTotal(ctx context.Context, date time.Time) (int64, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const billColumns = `invoice_no, created_at, subtotal_cents, tax_cents, total_cents, payment_method`

func (r *repository) GetBill(ctx context.Context, invoiceNo int64) (checkout.Bill, error) {
	var bill checkout.Bill
	err := r.db.QueryRow(ctx,
		`SELECT `+billColumns+` FROM bills WHERE invoice_no = $1`, invoiceNo).
		Scan(&bill.InvoiceNo, &bill.CreatedAt, &bill.SubtotalCents, &bill.TaxCents, &bill.TotalCents, &bill.PaymentMethod)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return checkout.Bill{}, shared.ErrNotFound
		}
		return checkout.Bill{}, shared.Storagef("get bill", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT product_id, name_snapshot, price_snapshot_cents, qty, line_total_cents
		 FROM bill_lines WHERE invoice_no = $1 ORDER BY id ASC`, invoiceNo)
	if err != nil {
		return checkout.Bill{}, shared.Storagef("get bill lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line checkout.BillLine
		if err := rows.Scan(&line.ProductID, &line.NameSnapshot, &line.PriceSnapshotCents, &line.Qty, &line.LineTotalCents); err != nil {
			return checkout.Bill{}, shared.Storagef("scan bill line", err)
		}
		bill.Lines = append(bill.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return checkout.Bill{}, shared.Storagef("get bill lines", err)
	}
	return bill, nil
}

func (r *repository) ListBillsBetween(ctx context.Context, start, end time.Time) ([]checkout.Bill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+billColumns+` FROM bills
		 WHERE created_at >= $1 AND created_at < $2
		 ORDER BY invoice_no ASC`, start, end)
	if err != nil {
		return nil, shared.Storagef("list bills", err)
	}
	defer rows.Close()
	return scanBillHeaders(rows)
}

func (r *repository) ListRecent(ctx context.Context, limit int) ([]checkout.Bill, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+billColumns+` FROM bills ORDER BY invoice_no DESC LIMIT $1`, limit)
	if err != nil {
		return nil, shared.Storagef("list recent bills", err)
	}
	defer rows.Close()
	return scanBillHeaders(rows)
}

func (r *repository) DailyTotal(ctx context.Context, date time.Time) (int64, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_cents), 0) FROM bills WHERE created_at >= $1 AND created_at < $2`,
		dayStart, dayEnd).Scan(&total)
	if err != nil {
		return 0, shared.Storagef("daily total", err)
	}
	return total, nil
}

func scanBillHeaders(rows pgx.Rows) ([]checkout.Bill, error) {
	bills := []checkout.Bill{}
	for rows.Next() {
		var bill checkout.Bill
		if err := rows.Scan(&bill.InvoiceNo, &bill.CreatedAt, &bill.SubtotalCents, &bill.TaxCents, &bill.TotalCents, &bill.PaymentMethod); err != nil {
			return nil, shared.Storagef("scan bill", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.Storagef("scan bills", err)
	}
	return bills, nil
}
