package reports

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/tillbook/tillbook/internal/checkout"
	"github.com/tillbook/tillbook/internal/shared"
)

type mockRepo struct {
	bills      map[int64]checkout.Bill
	totalCalls int
}

func newMockRepo(bills ...checkout.Bill) *mockRepo {
	r := &mockRepo{bills: make(map[int64]checkout.Bill)}
	for _, b := range bills {
		r.bills[b.InvoiceNo] = b
	}
	return r
}

func (r *mockRepo) GetBill(ctx context.Context, invoiceNo int64) (checkout.Bill, error) {
	b, ok := r.bills[invoiceNo]
	if !ok {
		return checkout.Bill{}, shared.ErrNotFound
	}
	return b, nil
}

func (r *mockRepo) ListBillsBetween(ctx context.Context, start, end time.Time) ([]checkout.Bill, error) {
	out := []checkout.Bill{}
	for no := int64(1); no <= int64(len(r.bills))+10; no++ {
		b, ok := r.bills[no]
		if !ok {
			continue
		}
		if !b.CreatedAt.Before(start) && b.CreatedAt.Before(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *mockRepo) ListRecent(ctx context.Context, limit int) ([]checkout.Bill, error) {
	if limit <= 0 {
		limit = 50
	}
	out := []checkout.Bill{}
	for no := int64(len(r.bills)) + 10; no >= 1 && len(out) < limit; no-- {
		if b, ok := r.bills[no]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *mockRepo) DailyTotal(ctx context.Context, date time.Time) (int64, error) {
	r.totalCalls++
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	var total int64
	for _, b := range r.bills {
		if !b.CreatedAt.Before(dayStart) && b.CreatedAt.Before(dayEnd) {
			total += b.TotalCents
		}
	}
	return total, nil
}

func newTestService(t *testing.T, repo Repository) (*Service, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute)
	svc := NewService(repo, cache)
	return svc, func() {
		_ = client.Close()
		mr.Close()
	}
}

func billOn(invoiceNo int64, day time.Time, totalCents int64) checkout.Bill {
	return checkout.Bill{
		InvoiceNo:     invoiceNo,
		CreatedAt:     day,
		SubtotalCents: totalCents,
		TotalCents:    totalCents,
		PaymentMethod: "cash",
	}
}

func TestGetBill(t *testing.T) {
	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := newMockRepo(billOn(1, day, 2500))
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	bill, err := svc.GetBill(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(2500), bill.TotalCents)

	_, err = svc.GetBill(context.Background(), 2)
	require.ErrorIs(t, err, shared.ErrNotFound)
	_, err = svc.GetBill(context.Background(), 0)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListBillsBetweenValidatesRange(t *testing.T) {
	svc, cleanup := newTestService(t, newMockRepo())
	defer cleanup()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.ListBillsBetween(context.Background(), day, day)
	require.True(t, shared.IsValidation(err))
	_, err = svc.ListBillsBetween(context.Background(), day, day.AddDate(0, 0, -1))
	require.True(t, shared.IsValidation(err))
}

func TestListBillsBetween(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	repo := newMockRepo(
		billOn(1, day1, 1000),
		billOn(2, day2, 2000),
	)
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	bills, err := svc.ListBillsBetween(context.Background(),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, bills, 1)
	require.Equal(t, int64(1), bills[0].InvoiceNo)
}

func TestDailyTotalCaches(t *testing.T) {
	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := newMockRepo(
		billOn(1, day, 1000),
		billOn(2, day.Add(2*time.Hour), 2500),
	)
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	total, err := svc.DailyTotal(context.Background(), day)
	require.NoError(t, err)
	require.Equal(t, int64(3500), total)
	require.Equal(t, 1, repo.totalCalls)

	// Second read is served from the cache.
	total, err = svc.DailyTotal(context.Background(), day)
	require.NoError(t, err)
	require.Equal(t, int64(3500), total)
	require.Equal(t, 1, repo.totalCalls)
}

func TestDailyTotalWithoutCache(t *testing.T) {
	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := newMockRepo(billOn(1, day, 1000))
	svc := NewService(repo, nil)

	total, err := svc.DailyTotal(context.Background(), day)
	require.NoError(t, err)
	require.Equal(t, int64(1000), total)

	total, err = svc.DailyTotal(context.Background(), day)
	require.NoError(t, err)
	require.Equal(t, int64(1000), total)
	require.Equal(t, 2, repo.totalCalls)
}

func TestWarmDailyTotalPrimesCache(t *testing.T) {
	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := newMockRepo(billOn(1, day, 1000))
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	require.NoError(t, svc.WarmDailyTotal(context.Background(), day))
	require.Equal(t, 1, repo.totalCalls)

	total, err := svc.DailyTotal(context.Background(), day)
	require.NoError(t, err)
	require.Equal(t, int64(1000), total)
	require.Equal(t, 1, repo.totalCalls)
}
