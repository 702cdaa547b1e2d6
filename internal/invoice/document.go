// Package invoice renders committed bills into printable text documents.
package invoice

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tillbook/tillbook/internal/checkout"
	"github.com/tillbook/tillbook/internal/money"
	"github.com/tillbook/tillbook/internal/settings"
)

const lineWidth = 48

// Render produces the plain-text document for a committed bill.
func Render(bill checkout.Bill, profile settings.Profile) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	if profile.CompanyName != "" {
		b.WriteString(center(profile.CompanyName) + "\n")
	}
	if profile.CompanyAddress != "" {
		b.WriteString(center(profile.CompanyAddress) + "\n")
	}
	if profile.CompanyPhone != "" {
		b.WriteString(center("Phone: "+profile.CompanyPhone) + "\n")
	}
	b.WriteString(rule + "\n")
	b.WriteString(p.Sprintf("Invoice No: %d\n", bill.InvoiceNo))
	b.WriteString("Date:       " + bill.CreatedAt.Format("2006-01-02 15:04:05") + "\n")
	b.WriteString(thin + "\n")

	for _, line := range bill.Lines {
		b.WriteString(p.Sprintf("%-24s %4d x %8s %9s\n",
			clip(line.NameSnapshot, 24),
			line.Qty,
			money.Format(line.PriceSnapshotCents),
			money.Format(line.LineTotalCents)))
	}

	b.WriteString(thin + "\n")
	b.WriteString(p.Sprintf("%-38s %9s\n", "Subtotal:", money.Format(bill.SubtotalCents)))
	b.WriteString(p.Sprintf("%-38s %9s\n", "Tax:", money.Format(bill.TaxCents)))
	b.WriteString(p.Sprintf("%-38s %9s\n", "TOTAL:", money.Format(bill.TotalCents)))
	b.WriteString(p.Sprintf("%-38s %9s\n", "Payment:", bill.PaymentMethod))
	b.WriteString(rule + "\n")
	b.WriteString(center("Thank you for your business!") + "\n")

	return b.String()
}

func center(s string) string {
	if len(s) >= lineWidth {
		return s
	}
	pad := (lineWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "~"
}
