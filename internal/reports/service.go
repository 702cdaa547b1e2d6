package reports

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tillbook/tillbook/internal/checkout"
	"github.com/tillbook/tillbook/internal/shared"
)

// Service answers read-only questions about sales history.
type Service struct {
	repo  Repository
	cache *Cache
	group singleflight.Group
}

// NewService builds a Service. cache may be nil.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// GetBill loads one bill with its line snapshots.
func (s *Service) GetBill(ctx context.Context, invoiceNo int64) (checkout.Bill, error) {
	if invoiceNo <= 0 {
		return checkout.Bill{}, shared.ErrNotFound
	}
	return s.repo.GetBill(ctx, invoiceNo)
}

// ListBillsBetween returns bill headers in [start, end), ordered by
// invoice number.
func (s *Service) ListBillsBetween(ctx context.Context, start, end time.Time) ([]checkout.Bill, error) {
	if !end.After(start) {
		return nil, shared.Validationf("range", "end must be after start")
	}
	return s.repo.ListBillsBetween(ctx, start, end)
}

// ListRecent returns the most recent bill headers, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]checkout.Bill, error) {
	return s.repo.ListRecent(ctx, limit)
}

// DailyTotal sums bill totals for one calendar day. Results are cached and
// concurrent recomputations of the same day are collapsed.
func (s *Service) DailyTotal(ctx context.Context, date time.Time) (int64, error) {
	key := "reports:daily:" + date.Format("2006-01-02")
	if total, ok := s.cache.GetTotal(ctx, key); ok {
		return total, nil
	}

	value, err, _ := s.group.Do(key, func() (interface{}, error) {
		total, err := s.repo.DailyTotal(ctx, date)
		if err != nil {
			return int64(0), err
		}
		s.cache.SetTotal(ctx, key, total)
		return total, nil
	})
	if err != nil {
		return 0, err
	}
	return value.(int64), nil
}

// WarmDailyTotal forces a recomputation of a day's total into the cache.
// Used by the background warmup job.
func (s *Service) WarmDailyTotal(ctx context.Context, date time.Time) error {
	total, err := s.repo.DailyTotal(ctx, date)
	if err != nil {
		return err
	}
	s.cache.SetTotal(ctx, "reports:daily:"+date.Format("2006-01-02"), total)
	return nil
}
