package checkout

import (
	"time"

	"github.com/tillbook/tillbook/internal/money"
)

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=cash card upi other"`
}

type BillLineResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Qty       int64  `json:"qty"`
	LineTotal string `json:"line_total"`
}

type BillResponse struct {
	InvoiceNo     int64              `json:"invoice_no"`
	CreatedAt     time.Time          `json:"created_at"`
	PaymentMethod string             `json:"payment_method"`
	Subtotal      string             `json:"subtotal"`
	Tax           string             `json:"tax"`
	Total         string             `json:"total"`
	Lines         []BillLineResponse `json:"lines"`
}

type CheckoutResponse struct {
	State State        `json:"state"`
	Bill  BillResponse `json:"bill"`
}

// ToBillResponse maps a Bill to its wire representation.
func ToBillResponse(b Bill) BillResponse {
	lines := make([]BillLineResponse, 0, len(b.Lines))
	for _, line := range b.Lines {
		lines = append(lines, BillLineResponse{
			ProductID: line.ProductID,
			Name:      line.NameSnapshot,
			UnitPrice: money.Format(line.PriceSnapshotCents),
			Qty:       line.Qty,
			LineTotal: money.Format(line.LineTotalCents),
		})
	}
	return BillResponse{
		InvoiceNo:     b.InvoiceNo,
		CreatedAt:     b.CreatedAt,
		PaymentMethod: b.PaymentMethod,
		Subtotal:      money.Format(b.SubtotalCents),
		Tax:           money.Format(b.TaxCents),
		Total:         money.Format(b.TotalCents),
		Lines:         lines,
	}
}
