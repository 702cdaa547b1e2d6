package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/tillbook/tillbook/internal/cart"
	"github.com/tillbook/tillbook/internal/money"
	"github.com/tillbook/tillbook/internal/shared"
)

// CartPort is the slice of cart behaviour checkout consumes.
type CartPort interface {
	Lines() []cart.Line
	Clear()
}

// BillSink receives committed bills at the reader/printer boundary, e.g.
// the invoice document writer. Sink failures do not undo the sale.
type BillSink interface {
	BillCommitted(ctx context.Context, bill Bill) error
}

// ServiceConfig groups checkout settings.
type ServiceConfig struct {
	// TaxRateBPS is the flat tax rate in basis points applied to the
	// subtotal. Zero disables tax.
	TaxRateBPS int64
}

// Service runs the checkout state machine.
type Service struct {
	repo       Repository
	logger     *slog.Logger
	sink       BillSink
	taxRateBPS int64
}

// NewService builds a Service. sink may be nil.
func NewService(repo Repository, logger *slog.Logger, sink BillSink, cfg ServiceConfig) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, sink: sink, taxRateBPS: cfg.TaxRateBPS}
}

// Checkout validates the cart against live stock and atomically commits the
// sale: stock decremented, invoice number allocated, bill and line
// snapshots written, all in one transaction. On success the cart is
// cleared. On Rejected or RolledBack the cart and all persisted state are
// exactly as before the attempt.
func (s *Service) Checkout(ctx context.Context, crt CartPort, paymentMethod string) (Result, error) {
	result := Result{State: StateValidating}

	lines := crt.Lines()
	if len(lines) == 0 {
		result.State = StateRejected
		return result, shared.Validationf("cart", "cart is empty")
	}
	for _, line := range lines {
		if line.Qty <= 0 {
			result.State = StateRejected
			return result, shared.Validationf("qty", "must be a positive integer")
		}
	}
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	// Cancellation is honoured up to this point only; once the commit
	// transaction starts it runs to commit or rollback.
	if err := ctx.Err(); err != nil {
		result.State = StateRejected
		return result, err
	}

	var bill Bill
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		// Re-read every product under lock, in id order, and collect
		// every shortage before touching anything. The cart's earlier
		// snapshot is not trusted: stock may have moved since.
		ordered := make([]cart.Line, len(lines))
		copy(ordered, lines)
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].ProductID < ordered[j].ProductID })

		locked := make(map[int64]lockedProduct, len(ordered))
		var shortages []shared.Shortage
		for _, line := range ordered {
			product, err := tx.GetProductForUpdate(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.Validationf("product", "product %d no longer exists", line.ProductID)
				}
				return err
			}
			if !product.Active {
				return shared.Validationf("product", "%q is no longer available", product.Name)
			}
			if line.Qty > product.Stock {
				shortages = append(shortages, shared.Shortage{
					ProductID: product.ID,
					Name:      product.Name,
					Requested: line.Qty,
					Available: product.Stock,
				})
				continue
			}
			locked[product.ID] = lockedProduct{name: product.Name, priceCents: product.PriceCents}
		}
		if len(shortages) > 0 {
			return &shared.InsufficientStockError{Shortages: shortages}
		}

		result.State = StateCommitting

		var subtotal int64
		billLines := make([]BillLine, 0, len(lines))
		for _, line := range lines {
			p := locked[line.ProductID]
			if err := tx.DecrementStock(ctx, line.ProductID, line.Qty); err != nil {
				return err
			}
			lineTotal := p.priceCents * line.Qty
			subtotal += lineTotal
			billLines = append(billLines, BillLine{
				ProductID:          line.ProductID,
				NameSnapshot:       p.name,
				PriceSnapshotCents: p.priceCents,
				Qty:                line.Qty,
				LineTotalCents:     lineTotal,
			})
		}

		tax := money.ApplyRateBPS(subtotal, s.taxRateBPS)
		bill = Bill{
			SubtotalCents: subtotal,
			TaxCents:      tax,
			TotalCents:    subtotal + tax,
			PaymentMethod: paymentMethod,
			Lines:         billLines,
		}

		invoiceNo, createdAt, err := tx.InsertBill(ctx, bill)
		if err != nil {
			return err
		}
		bill.InvoiceNo = invoiceNo
		bill.CreatedAt = createdAt
		return tx.InsertBillLines(ctx, invoiceNo, billLines)
	})
	if err != nil {
		// Business rejections leave the attempt in Rejected; storage
		// failures mean the transaction was torn down after work began.
		if shared.IsStorageFault(err) {
			result.State = StateRolledBack
			s.logger.Error("checkout rolled back", "error", err)
		} else {
			result.State = StateRejected
			s.logger.Warn("checkout rejected", "error", err)
		}
		return result, err
	}

	result.State = StateCommitted
	result.Bill = &bill
	crt.Clear()
	s.logger.Info("checkout committed",
		"invoice_no", bill.InvoiceNo,
		"total", money.Format(bill.TotalCents),
		"lines", len(bill.Lines))

	if s.sink != nil {
		if err := s.sink.BillCommitted(ctx, bill); err != nil {
			s.logger.Warn("bill sink failed", "error", err, "invoice_no", bill.InvoiceNo)
		}
	}
	return result, nil
}

type lockedProduct struct {
	name       string
	priceCents int64
}
