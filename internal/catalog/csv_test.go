package catalog

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, "Milk", 1250, 10)
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, "Bread", 900, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &buf))

	out := buf.String()
	require.Contains(t, out, "name,price,stock")
	require.Contains(t, out, "Milk,12.50,10")
	require.Contains(t, out, "Bread,9.00,3")
}

func TestImportCSV(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	in := strings.NewReader("name,price,stock\nMilk,12.50,10\nBread,9.00,3\n")
	inserted, err := svc.ImportCSV(ctx, in)
	require.NoError(t, err)
	require.Equal(t, 2, inserted)

	products, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, int64(1250), products[1].PriceCents)
}

func TestImportCSVSkipsInvalidRows(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, "Milk", 1250, 10)
	require.NoError(t, err)

	in := strings.NewReader(strings.Join([]string{
		"name,price,stock",
		"Milk,13.00,5",    // duplicate name
		"Eggs,not-a-price,2", // bad price
		",1.00,2",            // empty name
		"Bread,9.00,3",
	}, "\n"))
	inserted, err := svc.ImportCSV(ctx, in)
	require.NoError(t, err)
	require.Equal(t, 1, inserted)

	// The duplicate row did not overwrite the existing product.
	products, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, int64(1250), products[1].PriceCents)
}

func TestImportExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := NewService(newMemoryRepo())
	_, err := src.AddProduct(ctx, "Milk", 1250, 10)
	require.NoError(t, err)
	_, err = src.AddProduct(ctx, "Bread", 905, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.ExportCSV(ctx, &buf))

	dst := NewService(newMemoryRepo())
	inserted, err := dst.ImportCSV(ctx, &buf)
	require.NoError(t, err)
	require.Equal(t, 2, inserted)

	products, err := dst.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Equal(t, "Bread", products[0].Name)
	require.Equal(t, int64(905), products[0].PriceCents)
	require.Equal(t, int64(3), products[0].Stock)
}
