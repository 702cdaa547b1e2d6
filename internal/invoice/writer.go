package invoice

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tillbook/tillbook/internal/checkout"
	"github.com/tillbook/tillbook/internal/settings"
	"github.com/tillbook/tillbook/internal/shared"
)

// CompanySource supplies the profile printed on each document.
type CompanySource interface {
	Profile(ctx context.Context) (settings.Profile, error)
}

// Writer saves one text document per committed bill. It plugs into the
// checkout flow as its bill sink.
type Writer struct {
	logger  *slog.Logger
	company CompanySource
	dir     string
}

// NewWriter constructs a Writer that saves documents under dir.
func NewWriter(logger *slog.Logger, company CompanySource, dir string) *Writer {
	return &Writer{logger: logger, company: company, dir: dir}
}

// Path returns the document location for an invoice number.
func (w *Writer) Path(invoiceNo int64) string {
	return filepath.Join(w.dir, fmt.Sprintf("invoice-%d.txt", invoiceNo))
}

// BillCommitted renders and saves the document for a committed bill. A
// profile lookup failure still produces a document, just without the
// company header.
func (w *Writer) BillCommitted(ctx context.Context, bill checkout.Bill) error {
	profile, err := w.company.Profile(ctx)
	if err != nil {
		w.logger.Warn("company profile unavailable, writing bare invoice", "error", err)
		profile = settings.Profile{}
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return shared.Storagef("create invoice dir", err)
	}
	path := w.Path(bill.InvoiceNo)
	if err := os.WriteFile(path, []byte(Render(bill, profile)), 0o644); err != nil {
		return shared.Storagef("write invoice document", err)
	}
	w.logger.Info("invoice document written", "invoice_no", bill.InvoiceNo, "path", path)
	return nil
}
