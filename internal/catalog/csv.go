package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/tillbook/tillbook/internal/money"
	"github.com/tillbook/tillbook/internal/shared"
)

// csvRow is the interchange row for catalog backup and restore.
// Prices travel as decimal strings so spreadsheets round-trip them.
type csvRow struct {
	Name  string `csv:"name"`
	Price string `csv:"price"`
	Stock int64  `csv:"stock"`
}

// ExportCSV writes the current catalog snapshot as CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	products, err := s.List(ctx, ListFilter{})
	if err != nil {
		return err
	}
	rows := make([]csvRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, csvRow{
			Name:  p.Name,
			Price: money.Format(p.PriceCents),
			Stock: p.Stock,
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("catalog: export csv: %w", err)
	}
	return nil
}

// ImportCSV reads catalog rows and adds each through AddProduct, so imports
// are validated exactly like interactive adds. Rows whose name already
// exists are skipped. Returns the number of products inserted.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	var rows []csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return 0, shared.Validationf("csv", "malformed input: %v", err)
	}

	// Invalid rows (bad price, empty name, duplicate name) are skipped;
	// storage failures abort.
	inserted := 0
	for _, row := range rows {
		priceCents, err := money.Parse(row.Price)
		if err != nil {
			continue
		}
		if _, err := s.AddProduct(ctx, row.Name, priceCents, row.Stock); err != nil {
			if shared.IsValidation(err) {
				continue
			}
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
