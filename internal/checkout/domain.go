// Package checkout converts a cart into a committed bill. It is the sole
// writer of the sales ledger and the only component allowed to decrement
// stock as part of a sale.
package checkout

import "time"

// State names a step of the checkout state machine.
type State string

const (
	// StateIdle is the initial state before a checkout begins.
	StateIdle State = "IDLE"
	// StateValidating covers structural checks and the commit-time
	// re-read of live stock.
	StateValidating State = "VALIDATING"
	// StateCommitting covers the atomic unit of work.
	StateCommitting State = "COMMITTING"
	// StateCommitted is the terminal success state.
	StateCommitted State = "COMMITTED"
	// StateRejected is terminal failure before any mutation.
	StateRejected State = "REJECTED"
	// StateRolledBack is terminal failure after the commit began; all
	// writes have been undone.
	StateRolledBack State = "ROLLED_BACK"
)

// Bill is one completed sale. Immutable once committed; the ledger is
// append-only.
type Bill struct {
	InvoiceNo     int64      `json:"invoice_no"`
	CreatedAt     time.Time  `json:"created_at"`
	SubtotalCents int64      `json:"subtotal_cents"`
	TaxCents      int64      `json:"tax_cents"`
	TotalCents    int64      `json:"total_cents"`
	PaymentMethod string     `json:"payment_method"`
	Lines         []BillLine `json:"lines"`
}

// BillLine freezes the product name and unit price at sale time. Later
// catalog edits never reach back into committed lines.
type BillLine struct {
	ProductID          int64  `json:"product_id"`
	NameSnapshot       string `json:"name_snapshot"`
	PriceSnapshotCents int64  `json:"price_snapshot_cents"`
	Qty                int64  `json:"qty"`
	LineTotalCents     int64  `json:"line_total_cents"`
}

// Result reports the terminal state a checkout reached, with the bill on
// success.
type Result struct {
	State State
	Bill  *Bill
}
