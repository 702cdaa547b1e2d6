package invoice

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tillbook/tillbook/internal/checkout"
	"github.com/tillbook/tillbook/internal/settings"
)

func testBill() checkout.Bill {
	return checkout.Bill{
		InvoiceNo:     42,
		CreatedAt:     time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC),
		SubtotalCents: 3400,
		TaxCents:      170,
		TotalCents:    3570,
		PaymentMethod: "cash",
		Lines: []checkout.BillLine{
			{ProductID: 1, NameSnapshot: "Milk", PriceSnapshotCents: 1250, Qty: 2, LineTotalCents: 2500},
			{ProductID: 2, NameSnapshot: "Bread", PriceSnapshotCents: 900, Qty: 1, LineTotalCents: 900},
		},
	}
}

func TestRender(t *testing.T) {
	doc := Render(testBill(), settings.Profile{
		CompanyName:    "Corner Store",
		CompanyAddress: "12 Main St",
		CompanyPhone:   "555-0101",
	})

	require.Contains(t, doc, "Corner Store")
	require.Contains(t, doc, "12 Main St")
	require.Contains(t, doc, "Phone: 555-0101")
	require.Contains(t, doc, "Invoice No: 42")
	require.Contains(t, doc, "2024-03-01 14:30:00")
	require.Contains(t, doc, "Milk")
	require.Contains(t, doc, "12.50")
	require.Contains(t, doc, "25.00")
	require.Contains(t, doc, "34.00")
	require.Contains(t, doc, "1.70")
	require.Contains(t, doc, "35.70")
	require.Contains(t, doc, "cash")
}

func TestRenderWithoutProfile(t *testing.T) {
	doc := Render(testBill(), settings.Profile{})
	require.NotContains(t, doc, "Phone:")
	require.Contains(t, doc, "Invoice No: 42")
}

type staticProfile struct {
	profile settings.Profile
	err     error
}

func (s staticProfile) Profile(ctx context.Context) (settings.Profile, error) {
	return s.profile, s.err
}

func TestWriterSavesDocument(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(slog.Default(), staticProfile{profile: settings.Profile{CompanyName: "Corner Store"}}, dir)

	bill := testBill()
	require.NoError(t, w.BillCommitted(context.Background(), bill))

	data, err := os.ReadFile(w.Path(bill.InvoiceNo))
	require.NoError(t, err)
	require.Contains(t, string(data), "Corner Store")
	require.Contains(t, string(data), "Invoice No: 42")
}

func TestWriterSurvivesProfileFailure(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(slog.Default(), staticProfile{err: errors.New("db down")}, dir)

	bill := testBill()
	require.NoError(t, w.BillCommitted(context.Background(), bill))

	data, err := os.ReadFile(w.Path(bill.InvoiceNo))
	require.NoError(t, err)
	require.Contains(t, string(data), "Invoice No: 42")
}
