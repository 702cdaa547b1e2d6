package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tillbook/tillbook/internal/catalog"
	"github.com/tillbook/tillbook/internal/shared"
)

type fakeCatalog struct {
	products map[int64]catalog.Product
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[int64]catalog.Product{
		1: {ID: 1, Name: "Milk", PriceCents: 1250, Stock: 10, Active: true},
		2: {ID: 2, Name: "Bread", PriceCents: 900, Stock: 3, Active: true},
		3: {ID: 3, Name: "Legacy Soda", PriceCents: 200, Stock: 5, Active: false},
	}}
}

func (f *fakeCatalog) Get(ctx context.Context, id int64) (catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return catalog.Product{}, shared.ErrNotFound
	}
	return p, nil
}

func (f *fakeCatalog) CurrentPrice(ctx context.Context, id int64) (int64, error) {
	p, err := f.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.PriceCents, nil
}

func TestAddLineMergesSameProduct(t *testing.T) {
	cat := newFakeCatalog()
	crt := New("c1", cat)
	ctx := context.Background()

	require.NoError(t, crt.AddLine(ctx, 1, 2))
	require.NoError(t, crt.AddLine(ctx, 1, 3))
	require.NoError(t, crt.AddLine(ctx, 2, 1))

	lines := crt.Lines()
	require.Len(t, lines, 2)
	require.Equal(t, Line{ProductID: 1, Qty: 5}, lines[0])
	require.Equal(t, Line{ProductID: 2, Qty: 1}, lines[1])
}

func TestAddLineRejections(t *testing.T) {
	crt := New("c1", newFakeCatalog())
	ctx := context.Background()

	err := crt.AddLine(ctx, 1, 0)
	require.True(t, shared.IsValidation(err))
	err = crt.AddLine(ctx, 1, -2)
	require.True(t, shared.IsValidation(err))
	err = crt.AddLine(ctx, 99, 1)
	require.ErrorIs(t, err, shared.ErrNotFound)
	err = crt.AddLine(ctx, 3, 1)
	require.True(t, shared.IsValidation(err))
	require.Empty(t, crt.Lines())
}

func TestRemoveAndSetQty(t *testing.T) {
	crt := New("c1", newFakeCatalog())
	ctx := context.Background()

	require.NoError(t, crt.AddLine(ctx, 1, 2))
	require.NoError(t, crt.SetQty(1, 7))
	require.Equal(t, int64(7), crt.Lines()[0].Qty)

	err := crt.SetQty(1, 0)
	require.True(t, shared.IsValidation(err))
	require.ErrorIs(t, crt.SetQty(2, 1), shared.ErrNotFound)

	require.NoError(t, crt.RemoveLine(1))
	require.Empty(t, crt.Lines())
	require.ErrorIs(t, crt.RemoveLine(1), shared.ErrNotFound)
}

func TestTotalTracksPriceChanges(t *testing.T) {
	cat := newFakeCatalog()
	crt := New("c1", cat)
	ctx := context.Background()

	require.NoError(t, crt.AddLine(ctx, 1, 2))
	total, err := crt.Total(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2500), total)

	// A price change after the line was added shows up on the next read.
	p := cat.products[1]
	p.PriceCents = 1300
	cat.products[1] = p

	total, err = crt.Total(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2600), total)
}

func TestPricedLines(t *testing.T) {
	crt := New("c1", newFakeCatalog())
	ctx := context.Background()

	require.NoError(t, crt.AddLine(ctx, 1, 2))
	require.NoError(t, crt.AddLine(ctx, 2, 1))

	priced, err := crt.PricedLines(ctx)
	require.NoError(t, err)
	require.Len(t, priced, 2)
	require.Equal(t, PricedLine{ProductID: 1, Name: "Milk", Qty: 2, UnitPriceCents: 1250, LineTotalCents: 2500}, priced[0])
	require.Equal(t, PricedLine{ProductID: 2, Name: "Bread", Qty: 1, UnitPriceCents: 900, LineTotalCents: 900}, priced[1])
}

func TestStoreLifecycle(t *testing.T) {
	store := NewStore(newFakeCatalog())

	crt := store.Create()
	require.NotEmpty(t, crt.ID())

	got, ok := store.Get(crt.ID())
	require.True(t, ok)
	require.Same(t, crt, got)

	store.Discard(crt.ID())
	_, ok = store.Get(crt.ID())
	require.False(t, ok)
}
